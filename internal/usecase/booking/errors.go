package booking

import (
	"errors"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/booking"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
)

// mapRepoError turns repository sentinels into client errors. verb is
// "update" or "delete" and only shapes the ownership message.
func mapRepoError(err error, verb string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return httperr.NotFound("Booking not found")
	case errors.Is(err, domain.ErrNotOwner):
		return httperr.Forbidden("Not authorized to " + verb + " this booking")
	}
	if _, ok := httperr.As(err); ok {
		return err
	}
	return httperr.Server(verb+" booking", err)
}

func parseSlot(date, hm string) (string, string, error) {
	d, ok := domain.NormalizeDate(date)
	if !ok {
		return "", "", httperr.Validation("Invalid date, expected YYYY-MM-DD")
	}
	t, ok := domain.NormalizeTime(hm)
	if !ok {
		return "", "", httperr.Validation("Invalid time, expected HH:MM")
	}
	return d, t, nil
}
