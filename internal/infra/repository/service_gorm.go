package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/catalog"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) List(ctx context.Context) ([]models.Service, error) {
	out := []models.Service{}
	if err := r.db.WithContext(ctx).
		Order("service_name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Update checks existence under a row lock first; MySQL reports zero affected
// rows when the new values equal the stored ones.
func (r *ServiceGormRepository) Update(ctx context.Context, id uint, patch domain.Patch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockService(tx, id); err != nil {
			return err
		}
		return tx.Model(&models.Service{}).
			Where("id = ?", id).
			Updates(map[string]any(patch)).Error
	})
}

func (r *ServiceGormRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ServiceGormRepository) SetImageURL(ctx context.Context, id uint, url string) error {
	return r.Update(ctx, id, domain.Patch{"image_url": url})
}

func (r *ServiceGormRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func lockService(tx *gorm.DB, id uint) error {
	var s models.Service
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

var _ domain.Repository = (*ServiceGormRepository)(nil)
