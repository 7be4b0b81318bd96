package account

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/dto"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/validators"
)

type GetUserByEmail struct {
	users domain.UserRepository
}

func NewGetUserByEmail(users domain.UserRepository) *GetUserByEmail {
	return &GetUserByEmail{users: users}
}

func (uc *GetUserByEmail) Execute(ctx context.Context, email string) (*dto.UserProfile, error) {
	email = validators.NormalizeEmail(email)
	if email == "" {
		return nil, httperr.Validation("Email required")
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.NotFound("User not found")
	}
	if err != nil {
		return nil, httperr.Server("lookup user", err)
	}

	profile := dto.NewUserProfile(user)
	return &profile, nil
}
