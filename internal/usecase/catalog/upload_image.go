package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/glamconnect/internal/audit"
	domain "github.com/BruksfildServices01/glamconnect/internal/domain/catalog"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/imaging"
)

// UploadServiceImage converts an uploaded picture to WebP, stores it and
// points the service's image_url at it.
type UploadServiceImage struct {
	repo  domain.Repository
	store domain.ImageStore
	audit *audit.Dispatcher
}

// NewUploadServiceImage accepts a nil store when image storage is not configured.
func NewUploadServiceImage(
	repo domain.Repository,
	store domain.ImageStore,
	audit *audit.Dispatcher,
) *UploadServiceImage {
	return &UploadServiceImage{repo: repo, store: store, audit: audit}
}

func (uc *UploadServiceImage) Execute(ctx context.Context, adminID, id uint, image string) (string, error) {
	if uc.store == nil {
		return "", httperr.Unavailable("Image storage not configured")
	}
	if id == 0 {
		return "", httperr.Validation("Service ID required")
	}

	raw, err := imaging.DecodeBase64(image)
	switch {
	case errors.Is(err, imaging.ErrEmpty):
		return "", httperr.Validation("Image required")
	case errors.Is(err, imaging.ErrTooLarge):
		return "", httperr.Validation("Image too large")
	case err != nil:
		return "", httperr.Validation("Unsupported image format")
	}

	exists, err := uc.repo.Exists(ctx, id)
	if err != nil {
		return "", httperr.Server("lookup service", err)
	}
	if !exists {
		return "", httperr.NotFound("Service not found")
	}

	encoded, err := imaging.ToWebP(raw)
	if errors.Is(err, imaging.ErrUnsupported) {
		return "", httperr.Validation("Unsupported image format")
	}
	if err != nil {
		return "", httperr.Server("encode webp", err)
	}

	key := fmt.Sprintf("services/%d/%s.webp", id, uuid.NewString())
	url, err := uc.store.Put(ctx, key, imaging.ContentType, encoded)
	if err != nil {
		return "", httperr.Server("store image", err)
	}

	if err := uc.repo.SetImageURL(ctx, id, url); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", httperr.NotFound("Service not found")
		}
		return "", httperr.Server("set image url", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorKind: "admin",
		ActorID:   &adminID,
		Action:    "service_image_uploaded",
		Entity:    "service",
		EntityID:  &id,
		Metadata:  map[string]any{"image_url": url},
	})
	return url, nil
}
