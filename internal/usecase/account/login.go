package account

import (
	"context"
	"errors"
	"strings"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/domain/session"
	"github.com/BruksfildServices01/glamconnect/internal/dto"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/timezone"
	"github.com/BruksfildServices01/glamconnect/internal/validators"
)

const msgBadLogin = "Invalid email or password"

type LoginOutput struct {
	Token string
	User  dto.UserProfile
}

type Login struct {
	users    domain.UserRepository
	hasher   *domain.Hasher
	sessions session.Store
	clock    *timezone.Clock
	settings Settings
}

func NewLogin(
	users domain.UserRepository,
	hasher *domain.Hasher,
	sessions session.Store,
	clock *timezone.Clock,
	settings Settings,
) *Login {
	return &Login{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		clock:    clock,
		settings: settings,
	}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*LoginOutput, error) {
	email = validators.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, httperr.Validation("Email and password are required")
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.Auth(msgBadLogin)
	}
	if err != nil {
		return nil, httperr.Server("lookup user", err)
	}

	if !uc.hasher.Matches(user.PasswordHash, password) {
		return nil, httperr.Auth(msgBadLogin)
	}

	if !user.IsVerified {
		return nil, httperr.Forbidden("Email not verified. Please check your email for verification link.")
	}

	token, err := issueSession(
		ctx,
		uc.sessions,
		session.KindCustomer,
		user.ID,
		user.Role,
		uc.clock.Now().Add(uc.settings.SessionTTL),
	)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Token: token, User: dto.NewUserProfile(user)}, nil
}
