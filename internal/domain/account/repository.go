package account

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/glamconnect/internal/models"
)

var ErrNotFound = errors.New("account not found")

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error

	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByVerifyToken(ctx context.Context, token string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)

	// MarkVerified succeeds only while token is still stored on the user,
	// so a token can be redeemed once.
	MarkVerified(ctx context.Context, id uint, token string) error
	MarkVerifiedByEmail(ctx context.Context, email string) error

	SetResetToken(ctx context.Context, id uint, token string, expires time.Time) error
	// ResetPassword stores hash and clears the reset token, guarded by token.
	ResetPassword(ctx context.Context, id uint, token, hash string) error
}

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
