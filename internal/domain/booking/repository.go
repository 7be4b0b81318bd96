package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/glamconnect/internal/dto"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

var (
	ErrNotFound = errors.New("booking not found")
	ErrNotOwner = errors.New("booking belongs to another user")
)

// Patch carries the sparse admin update. Nil fields are left untouched.
type Patch struct {
	Date      *string
	Time      *string
	Notes     *string
	Status    *Status
	ServiceID *uint
}

func (p Patch) IsEmpty() bool {
	return p.Date == nil && p.Time == nil && p.Notes == nil && p.Status == nil && p.ServiceID == nil
}

type Repository interface {
	// -------- Create / read --------
	Create(ctx context.Context, b *models.Booking) error

	// List returns bookings joined with owner and service names, newest
	// schedule first. A nil userID lists every booking.
	List(ctx context.Context, userID *uint) ([]dto.BookingListDTO, error)

	ServiceExists(ctx context.Context, serviceID uint) (bool, error)
	// ServiceName returns ErrNotFound for unknown or deleted services.
	ServiceName(ctx context.Context, serviceID uint) (string, error)

	// -------- Owner mutations (ownership checked under a row lock) --------
	UpdateOwned(ctx context.Context, bookingID, userID uint, date, hm, notes string) error
	DeleteOwned(ctx context.Context, bookingID, userID uint) error

	// -------- Admin mutations (no ownership check) --------
	// AdminUpdate calls check with the current status before applying a status change.
	AdminUpdate(ctx context.Context, bookingID uint, patch Patch, check func(current Status) error) error
	AdminDelete(ctx context.Context, bookingID uint) error

	// -------- Auto-completion --------
	CompleteElapsed(ctx context.Context, cutoffDate, cutoffTime string) (int64, error)
}
