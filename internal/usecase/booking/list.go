package booking

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/booking"
	"github.com/BruksfildServices01/glamconnect/internal/dto"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/timezone"
)

type ListBookings struct {
	repo     domain.Repository
	complete *CompleteElapsed
	clock    *timezone.Clock
	log      *zap.Logger
}

func NewListBookings(
	repo domain.Repository,
	complete *CompleteElapsed,
	clock *timezone.Clock,
	log *zap.Logger,
) *ListBookings {
	return &ListBookings{
		repo:     repo,
		complete: complete,
		clock:    clock,
		log:      log.Named("list_bookings"),
	}
}

// Execute lists one user's bookings, or all of them when userID is nil.
// Elapsed bookings are completed before reading; rows are re-checked
// in memory so a failed sweep never shows a stale status.
func (uc *ListBookings) Execute(ctx context.Context, userID *uint) ([]dto.BookingListDTO, error) {
	if _, err := uc.complete.Execute(ctx); err != nil {
		uc.log.Warn("auto-complete sweep failed", zap.Error(err))
	}

	rows, err := uc.repo.List(ctx, userID)
	if err != nil {
		return nil, httperr.Server("list bookings", err)
	}

	now := uc.clock.Now()
	for i := range rows {
		rows[i].Status = string(domain.EffectiveStatus(domain.Status(rows[i].Status), rows[i].Date, rows[i].Time, now))
	}
	return rows, nil
}
