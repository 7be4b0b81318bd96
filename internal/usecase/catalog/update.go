package catalog

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/glamconnect/internal/audit"
	domain "github.com/BruksfildServices01/glamconnect/internal/domain/catalog"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
)

// ======================================================
// UPDATE
// ======================================================

type UpdateService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateService(repo domain.Repository, audit *audit.Dispatcher) *UpdateService {
	return &UpdateService{repo: repo, audit: audit}
}

func (uc *UpdateService) Execute(ctx context.Context, adminID, id uint, in ServiceFields) error {
	if id == 0 {
		return httperr.Validation("Service ID required")
	}

	patch, err := in.patch()
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		return httperr.Validation("No fields to update")
	}

	if err := uc.repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.NotFound("Service not found")
		}
		return httperr.Server("update service", err)
	}

	fields := make([]string, 0, len(patch))
	for k := range patch {
		fields = append(fields, k)
	}
	uc.audit.Dispatch(audit.Event{
		ActorKind: "admin",
		ActorID:   &adminID,
		Action:    "service_updated",
		Entity:    "service",
		EntityID:  &id,
		Metadata:  map[string]any{"fields": fields},
	})
	return nil
}

// ======================================================
// DELETE
// ======================================================

// DeleteService soft-deletes; bookings keep their reference and still show the name.
type DeleteService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteService(repo domain.Repository, audit *audit.Dispatcher) *DeleteService {
	return &DeleteService{repo: repo, audit: audit}
}

func (uc *DeleteService) Execute(ctx context.Context, adminID, id uint) error {
	if id == 0 {
		return httperr.Validation("Service ID required")
	}

	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.NotFound("Service not found")
		}
		return httperr.Server("delete service", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorKind: "admin",
		ActorID:   &adminID,
		Action:    "service_deleted",
		Entity:    "service",
		EntityID:  &id,
	})
	return nil
}
