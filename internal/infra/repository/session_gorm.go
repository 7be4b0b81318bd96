package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/session"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

// SessionGormRepository is used when no Redis address is configured.
type SessionGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db, now: time.Now}
}

func (r *SessionGormRepository) Save(ctx context.Context, tokenHash string, s domain.Session) error {
	row := models.Session{
		TokenHash:   tokenHash,
		SubjectKind: string(s.Kind),
		SubjectID:   s.SubjectID,
		Role:        s.Role,
		ExpiresAt:   s.ExpiresAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *SessionGormRepository) Get(ctx context.Context, tokenHash string) (*domain.Session, error) {
	var row models.Session
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", tokenHash, r.now().UTC()).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		Kind:      domain.Kind(row.SubjectKind),
		SubjectID: row.SubjectID,
		Role:      row.Role,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

// PurgeExpired removes sessions past their expiry and reports how many were dropped.
func (r *SessionGormRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", r.now().UTC()).
		Delete(&models.Session{})
	return res.RowsAffected, res.Error
}

var _ domain.Store = (*SessionGormRepository)(nil)
