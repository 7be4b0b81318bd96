package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/dto"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/models"
	"github.com/BruksfildServices01/glamconnect/internal/timezone"
	"github.com/BruksfildServices01/glamconnect/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type RegisterInput struct {
	Name     string
	Email    string
	Contact  string
	Password string
}

type Verification struct {
	Token    string `json:"token,omitempty"`
	Link     string `json:"link,omitempty"`
	MailSent bool   `json:"mail_sent"`
}

type RegisterOutput struct {
	User         dto.UserProfile
	Verification Verification
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	users    domain.UserRepository
	hasher   *domain.Hasher
	mailer   domain.Mailer
	clock    *timezone.Clock
	settings Settings
	log      *zap.Logger
}

func NewRegister(
	users domain.UserRepository,
	hasher *domain.Hasher,
	mailer domain.Mailer,
	clock *timezone.Clock,
	settings Settings,
	log *zap.Logger,
) *Register {
	return &Register{
		users:    users,
		hasher:   hasher,
		mailer:   mailer,
		clock:    clock,
		settings: settings,
		log:      log.Named("register"),
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	name := strings.TrimSpace(in.Name)
	email := validators.NormalizeEmail(in.Email)
	contact := strings.TrimSpace(in.Contact)

	if name == "" || email == "" || contact == "" || in.Password == "" {
		return nil, httperr.Validation("All fields are required")
	}
	if !validators.IsEmail(email) {
		return nil, httperr.Validation("Invalid email format")
	}

	_, err := uc.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, httperr.Conflict("Email already registered")
	case !errors.Is(err, domain.ErrNotFound):
		return nil, httperr.Server("lookup email", err)
	}

	hash, err := hashPassword(uc.hasher, in.Password)
	if err != nil {
		return nil, err
	}

	token, err := domain.NewToken(domain.VerifyTokenBytes)
	if err != nil {
		return nil, httperr.Server("generate verify token", err)
	}
	expires := uc.clock.Now().Add(uc.settings.VerifyTokenTTL).UTC()

	user := &models.User{
		Name:          name,
		Email:         email,
		Contact:       contact,
		PasswordHash:  hash,
		Role:          models.RoleCustomer,
		IsVerified:    false,
		VerifyToken:   &token,
		VerifyExpires: &expires,
	}

	if err := uc.users.Create(ctx, user); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.Conflict("Email already registered")
		}
		return nil, httperr.Server("create user", err)
	}

	link := uc.settings.VerificationLink(token)

	out := &RegisterOutput{User: dto.NewUserProfile(user)}
	if uc.mailer.Enabled() {
		if err := uc.mailer.SendVerification(ctx, email, name, link); err != nil {
			uc.log.Warn("verification mail not sent", zap.Uint("user_id", user.ID), zap.Error(err))
		} else {
			out.Verification.MailSent = true
		}
	}

	if uc.settings.ExposeTokens {
		out.Verification.Token = token
		out.Verification.Link = link
	}

	return out, nil
}
