package catalog

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/glamconnect/internal/models"
)

var ErrNotFound = errors.New("service not found")

// Patch maps column names to new values. Only whitelisted columns reach it.
type Patch map[string]any

type Repository interface {
	List(ctx context.Context) ([]models.Service, error)
	Create(ctx context.Context, s *models.Service) error
	// Update returns ErrNotFound when id is unknown or soft-deleted.
	Update(ctx context.Context, id uint, patch Patch) error
	SoftDelete(ctx context.Context, id uint) error
	SetImageURL(ctx context.Context, id uint, url string) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// ImageStore persists encoded images and returns their public URL.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}
