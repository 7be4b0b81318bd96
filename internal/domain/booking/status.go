package booking

import (
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return st, true
	}
	return "", false
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transitions
// ===============================

// CanTransition allows pending -> confirmed -> completed and cancelling any
// non-terminal booking. Setting the current status again is a no-op.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if from.IsTerminal() {
		return httperr.Validation("Booking is already " + string(from))
	}
	if to == StatusPending {
		return httperr.Validation("Booking cannot return to pending")
	}
	return nil
}
