package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/glamconnect/internal/audit"
	domain "github.com/BruksfildServices01/glamconnect/internal/domain/booking"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
)

type UpdateBookingInput struct {
	BookingID uint
	UserID    uint
	Date      string
	Time      string
	// Notes must be present, though it may be empty.
	Notes *string
}

// UpdateBooking is the owner path: all three fields are replaced together.
type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBooking(repo domain.Repository, audit *audit.Dispatcher) *UpdateBooking {
	return &UpdateBooking{repo: repo, audit: audit}
}

func (uc *UpdateBooking) Execute(ctx context.Context, in UpdateBookingInput) error {
	if in.BookingID == 0 || in.UserID == 0 {
		return httperr.Validation("Missing bookingID or userID")
	}
	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" || in.Notes == nil {
		return httperr.Validation("Missing required fields")
	}

	date, hm, err := parseSlot(in.Date, in.Time)
	if err != nil {
		return err
	}

	err = uc.repo.UpdateOwned(ctx, in.BookingID, in.UserID, date, hm, strings.TrimSpace(*in.Notes))
	if err != nil {
		return mapRepoError(err, "update")
	}

	uc.audit.Dispatch(audit.Event{
		ActorKind: "customer",
		ActorID:   &in.UserID,
		Action:    "booking_updated",
		Entity:    "booking",
		EntityID:  &in.BookingID,
	})
	return nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(repo domain.Repository, audit *audit.Dispatcher) *DeleteBooking {
	return &DeleteBooking{repo: repo, audit: audit}
}

func (uc *DeleteBooking) Execute(ctx context.Context, bookingID, userID uint) error {
	if bookingID == 0 || userID == 0 {
		return httperr.Validation("Missing bookingID or userID")
	}

	if err := uc.repo.DeleteOwned(ctx, bookingID, userID); err != nil {
		return mapRepoError(err, "delete")
	}

	uc.audit.Dispatch(audit.Event{
		ActorKind: "customer",
		ActorID:   &userID,
		Action:    "booking_deleted",
		Entity:    "booking",
		EntityID:  &bookingID,
	})
	return nil
}
