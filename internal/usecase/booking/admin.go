package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/glamconnect/internal/audit"
	domain "github.com/BruksfildServices01/glamconnect/internal/domain/booking"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
)

// ======================================================
// ADMIN UPDATE
// ======================================================

type AdminUpdateInput struct {
	BookingID uint
	Date      *string
	Time      *string
	Notes     *string
	Status    *string
	ServiceID *uint
}

// AdminUpdateBooking applies a sparse patch to any booking; ownership is not checked.
type AdminUpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAdminUpdateBooking(repo domain.Repository, audit *audit.Dispatcher) *AdminUpdateBooking {
	return &AdminUpdateBooking{repo: repo, audit: audit}
}

func (uc *AdminUpdateBooking) Execute(ctx context.Context, adminID uint, in AdminUpdateInput) error {
	if in.BookingID == 0 {
		return httperr.Validation("bookingID required")
	}

	patch, err := uc.buildPatch(ctx, in)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return httperr.Validation("No fields to update")
	}

	var check func(domain.Status) error
	if patch.Status != nil {
		to := *patch.Status
		check = func(from domain.Status) error { return domain.CanTransition(from, to) }
	}

	if err := uc.repo.AdminUpdate(ctx, in.BookingID, patch, check); err != nil {
		return mapRepoError(err, "update")
	}

	meta := map[string]any{}
	if patch.Status != nil {
		meta["status"] = string(*patch.Status)
	}
	uc.audit.Dispatch(audit.Event{
		ActorKind: "admin",
		ActorID:   &adminID,
		Action:    "booking_admin_updated",
		Entity:    "booking",
		EntityID:  &in.BookingID,
		Metadata:  meta,
	})
	return nil
}

func (uc *AdminUpdateBooking) buildPatch(ctx context.Context, in AdminUpdateInput) (domain.Patch, error) {
	var p domain.Patch

	if in.Date != nil {
		d, ok := domain.NormalizeDate(*in.Date)
		if !ok {
			return p, httperr.Validation("Invalid date, expected YYYY-MM-DD")
		}
		p.Date = &d
	}
	if in.Time != nil {
		t, ok := domain.NormalizeTime(*in.Time)
		if !ok {
			return p, httperr.Validation("Invalid time, expected HH:MM")
		}
		p.Time = &t
	}
	if in.Notes != nil {
		n := strings.TrimSpace(*in.Notes)
		p.Notes = &n
	}
	if in.Status != nil {
		st, ok := domain.ParseStatus(strings.ToLower(strings.TrimSpace(*in.Status)))
		if !ok {
			return p, httperr.Validation("Invalid status")
		}
		p.Status = &st
	}
	if in.ServiceID != nil {
		if *in.ServiceID == 0 {
			return p, httperr.Validation("Invalid service_id")
		}
		exists, err := uc.repo.ServiceExists(ctx, *in.ServiceID)
		if err != nil {
			return p, httperr.Server("lookup service", err)
		}
		if !exists {
			return p, httperr.NotFound("Service not found")
		}
		id := *in.ServiceID
		p.ServiceID = &id
	}
	return p, nil
}

// ======================================================
// ADMIN DELETE
// ======================================================

type AdminDeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAdminDeleteBooking(repo domain.Repository, audit *audit.Dispatcher) *AdminDeleteBooking {
	return &AdminDeleteBooking{repo: repo, audit: audit}
}

func (uc *AdminDeleteBooking) Execute(ctx context.Context, adminID, bookingID uint) error {
	if bookingID == 0 {
		return httperr.Validation("bookingID required")
	}

	if err := uc.repo.AdminDelete(ctx, bookingID); err != nil {
		return mapRepoError(err, "delete")
	}

	uc.audit.Dispatch(audit.Event{
		ActorKind: "admin",
		ActorID:   &adminID,
		Action:    "booking_admin_deleted",
		Entity:    "booking",
		EntityID:  &bookingID,
	})
	return nil
}
