package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserGormRepository) FindByVerifyToken(ctx context.Context, token string) (*models.User, error) {
	return r.first(ctx, "verify_token = ?", token)
}

func (r *UserGormRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.first(ctx, "reset_token = ?", token)
}

func (r *UserGormRepository) MarkVerified(ctx context.Context, id uint, token string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND verify_token = ?", id, token).
		Updates(map[string]any{
			"is_verified":    true,
			"verify_token":   nil,
			"verify_expires": nil,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserGormRepository) MarkVerifiedByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Updates(map[string]any{
			"is_verified":    true,
			"verify_token":   nil,
			"verify_expires": nil,
		}).Error
}

func (r *UserGormRepository) SetResetToken(
	ctx context.Context,
	id uint,
	token string,
	expires time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_token":   token,
			"reset_expires": expires,
		}).Error
}

func (r *UserGormRepository) ResetPassword(
	ctx context.Context,
	id uint,
	token string,
	hash string,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND reset_token = ?", id, token).
		Updates(map[string]any{
			"password_hash": hash,
			"reset_token":   nil,
			"reset_expires": nil,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserGormRepository) first(ctx context.Context, query string, args ...any) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserGormRepository)(nil)
