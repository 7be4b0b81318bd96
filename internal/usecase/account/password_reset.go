package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/timezone"
	"github.com/BruksfildServices01/glamconnect/internal/validators"
)

// ======================================================
// REQUEST
// ======================================================

type ResetRequestOutput struct {
	Token    string `json:"token,omitempty"`
	MailSent bool   `json:"mail_sent"`
}

type RequestPasswordReset struct {
	users    domain.UserRepository
	mailer   domain.Mailer
	clock    *timezone.Clock
	settings Settings
	log      *zap.Logger
}

func NewRequestPasswordReset(
	users domain.UserRepository,
	mailer domain.Mailer,
	clock *timezone.Clock,
	settings Settings,
	log *zap.Logger,
) *RequestPasswordReset {
	return &RequestPasswordReset{
		users:    users,
		mailer:   mailer,
		clock:    clock,
		settings: settings,
		log:      log.Named("password_reset"),
	}
}

func (uc *RequestPasswordReset) Execute(ctx context.Context, email string) (*ResetRequestOutput, error) {
	email = validators.NormalizeEmail(email)
	if email == "" {
		return nil, httperr.Validation("Email required")
	}
	if !validators.IsEmail(email) {
		return nil, httperr.Validation("Invalid email format")
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.NotFound("User not found")
	}
	if err != nil {
		return nil, httperr.Server("lookup user", err)
	}

	token, err := domain.NewToken(domain.VerifyTokenBytes)
	if err != nil {
		return nil, httperr.Server("generate reset token", err)
	}

	expires := uc.clock.Now().Add(uc.settings.ResetTokenTTL).UTC()
	if err := uc.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return nil, httperr.Server("store reset token", err)
	}

	out := &ResetRequestOutput{}
	if uc.mailer.Enabled() {
		if err := uc.mailer.SendPasswordReset(ctx, user.Email, user.Name, token); err != nil {
			uc.log.Warn("reset mail not sent", zap.Uint("user_id", user.ID), zap.Error(err))
		} else {
			out.MailSent = true
		}
	}
	if uc.settings.ExposeTokens {
		out.Token = token
	}
	return out, nil
}

// ======================================================
// RESET
// ======================================================

type ResetPasswordInput struct {
	// Email is optional; when given it must match the token's owner.
	Email       string
	Token       string
	NewPassword string
}

type ResetPassword struct {
	users  domain.UserRepository
	hasher *domain.Hasher
	clock  *timezone.Clock
}

func NewResetPassword(
	users domain.UserRepository,
	hasher *domain.Hasher,
	clock *timezone.Clock,
) *ResetPassword {
	return &ResetPassword{users: users, hasher: hasher, clock: clock}
}

func (uc *ResetPassword) Execute(ctx context.Context, in ResetPasswordInput) error {
	token := strings.TrimSpace(in.Token)
	if token == "" || in.NewPassword == "" {
		return httperr.Validation("Token and new password are required")
	}

	user, err := uc.users.FindByResetToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.NotFound("Invalid token")
	}
	if err != nil {
		return httperr.Server("lookup reset token", err)
	}

	if email := validators.NormalizeEmail(in.Email); email != "" && email != user.Email {
		return httperr.NotFound("Invalid token")
	}

	if user.ResetExpires == nil || uc.clock.Now().After(*user.ResetExpires) {
		return httperr.Expired("Token expired")
	}

	hash, err := hashPassword(uc.hasher, in.NewPassword)
	if err != nil {
		return err
	}

	err = uc.users.ResetPassword(ctx, user.ID, token, hash)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.NotFound("Invalid token")
	}
	if err != nil {
		return httperr.Server("reset password", err)
	}
	return nil
}
