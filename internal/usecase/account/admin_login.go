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

type AdminLoginOutput struct {
	Token string
	User  dto.AdminProfile
}

// AdminLogin authenticates staff and admins against their own table.
// It never creates tables or accounts.
type AdminLogin struct {
	admins   domain.AdminRepository
	hasher   *domain.Hasher
	sessions session.Store
	clock    *timezone.Clock
	settings Settings
}

func NewAdminLogin(
	admins domain.AdminRepository,
	hasher *domain.Hasher,
	sessions session.Store,
	clock *timezone.Clock,
	settings Settings,
) *AdminLogin {
	return &AdminLogin{
		admins:   admins,
		hasher:   hasher,
		sessions: sessions,
		clock:    clock,
		settings: settings,
	}
}

func (uc *AdminLogin) Execute(ctx context.Context, email, password string) (*AdminLoginOutput, error) {
	email = validators.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, httperr.Validation("Email and password are required")
	}

	admin, err := uc.admins.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.Auth("Invalid credentials")
	}
	if err != nil {
		return nil, httperr.Server("lookup admin", err)
	}

	if !uc.hasher.Matches(admin.PasswordHash, password) {
		return nil, httperr.Auth("Invalid credentials")
	}

	if !admin.IsActive {
		return nil, httperr.Forbidden("Account is deactivated. Contact administrator.")
	}

	token, err := issueSession(
		ctx,
		uc.sessions,
		session.KindAdmin,
		admin.ID,
		admin.Role,
		uc.clock.Now().Add(uc.settings.SessionTTL),
	)
	if err != nil {
		return nil, err
	}

	return &AdminLoginOutput{Token: token, User: dto.NewAdminProfile(admin)}, nil
}
