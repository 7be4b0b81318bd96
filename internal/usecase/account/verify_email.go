package account

import (
	"context"
	"errors"
	"strings"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/timezone"
)

type VerifyEmail struct {
	users domain.UserRepository
	clock *timezone.Clock
}

func NewVerifyEmail(users domain.UserRepository, clock *timezone.Clock) *VerifyEmail {
	return &VerifyEmail{users: users, clock: clock}
}

// Execute redeems a verification token. A redeemed token is cleared, so a
// second call with it reports "Invalid token".
func (uc *VerifyEmail) Execute(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return httperr.Validation("Missing token")
	}

	user, err := uc.users.FindByVerifyToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.NotFound("Invalid token")
	}
	if err != nil {
		return httperr.Server("lookup verify token", err)
	}

	if user.VerifyExpires == nil || uc.clock.Now().After(*user.VerifyExpires) {
		return httperr.Expired("Token expired")
	}

	err = uc.users.MarkVerified(ctx, user.ID, token)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.NotFound("Invalid token")
	}
	if err != nil {
		return httperr.Server("mark verified", err)
	}
	return nil
}
