package booking

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/booking"
	"github.com/BruksfildServices01/glamconnect/internal/timezone"
)

// CompleteElapsed moves every open booking whose slot has started to completed.
type CompleteElapsed struct {
	repo  domain.Repository
	clock *timezone.Clock
	log   *zap.Logger
}

func NewCompleteElapsed(repo domain.Repository, clock *timezone.Clock, log *zap.Logger) *CompleteElapsed {
	return &CompleteElapsed{repo: repo, clock: clock, log: log.Named("complete_elapsed")}
}

func (uc *CompleteElapsed) Execute(ctx context.Context) (int64, error) {
	date, hm := domain.Cutoff(uc.clock.Now())

	n, err := uc.repo.CompleteElapsed(ctx, date, hm)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.log.Info("bookings auto-completed", zap.Int64("count", n))
	}
	return n, nil
}
