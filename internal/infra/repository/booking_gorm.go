package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/booking"
	"github.com/BruksfildServices01/glamconnect/internal/dto"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Create / read
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) List(
	ctx context.Context,
	userID *uint,
) ([]dto.BookingListDTO, error) {

	q := r.db.WithContext(ctx).
		Table("bookings").
		Select(`
			bookings.id,
			bookings.user_id,
			bookings.service_id,
			bookings.booking_date AS date,
			bookings.booking_time AS time,
			bookings.notes,
			bookings.status,
			users.name AS user_name,
			users.email AS user_email,
			services.service_name AS service_name
		`).
		Joins("JOIN users ON users.id = bookings.user_id").
		// soft-deleted services still resolve their name
		Joins("LEFT JOIN services ON services.id = bookings.service_id")

	if userID != nil {
		q = q.Where("bookings.user_id = ?", *userID)
	}

	out := []dto.BookingListDTO{}
	if err := q.
		Order("bookings.booking_date DESC").
		Order("bookings.booking_time DESC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) ServiceExists(
	ctx context.Context,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) ServiceName(
	ctx context.Context,
	serviceID uint,
) (string, error) {

	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", serviceID).
		Limit(1).
		Pluck("service_name", &names).Error; err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", domain.ErrNotFound
	}
	return names[0], nil
}

// --------------------------------------------------
// Owner mutations
// --------------------------------------------------

func (r *BookingGormRepository) UpdateOwned(
	ctx context.Context,
	bookingID uint,
	userID uint,
	date string,
	hm string,
	notes string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockOwned(tx, bookingID, userID); err != nil {
			return err
		}

		return tx.Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Updates(map[string]any{
				"booking_date": date,
				"booking_time": hm,
				"notes":        notes,
			}).Error
	})
}

func (r *BookingGormRepository) DeleteOwned(
	ctx context.Context,
	bookingID uint,
	userID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockOwned(tx, bookingID, userID); err != nil {
			return err
		}
		return tx.Delete(&models.Booking{}, bookingID).Error
	})
}

// --------------------------------------------------
// Admin mutations
// --------------------------------------------------

func (r *BookingGormRepository) AdminUpdate(
	ctx context.Context,
	bookingID uint,
	patch domain.Patch,
	check func(current domain.Status) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := lock(tx, bookingID)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if patch.Date != nil {
			updates["booking_date"] = *patch.Date
		}
		if patch.Time != nil {
			updates["booking_time"] = *patch.Time
		}
		if patch.Notes != nil {
			updates["notes"] = *patch.Notes
		}
		if patch.ServiceID != nil {
			updates["service_id"] = *patch.ServiceID
		}
		if patch.Status != nil {
			if check != nil {
				if err := check(domain.Status(b.Status)); err != nil {
					return err
				}
			}
			updates["status"] = string(*patch.Status)
		}

		return tx.Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Updates(updates).Error
	})
}

func (r *BookingGormRepository) AdminDelete(
	ctx context.Context,
	bookingID uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Booking{}, bookingID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Auto-completion
// --------------------------------------------------

// CompleteElapsed relies on the fixed-width YYYY-MM-DD and HH:MM columns
// comparing correctly as strings.
func (r *BookingGormRepository) CompleteElapsed(
	ctx context.Context,
	cutoffDate string,
	cutoffTime string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status NOT IN ?", []string{
			string(domain.StatusCompleted),
			string(domain.StatusCancelled),
		}).
		Where(
			"booking_date < ? OR (booking_date = ? AND booking_time <= ?)",
			cutoffDate, cutoffDate, cutoffTime,
		).
		Update("status", string(domain.StatusCompleted))

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func lock(tx *gorm.DB, bookingID uint) (*models.Booking, error) {
	var b models.Booking
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "user_id", "status").
		First(&b, bookingID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func lockOwned(tx *gorm.DB, bookingID, userID uint) (*models.Booking, error) {
	b, err := lock(tx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return b, nil
}

var _ domain.Repository = (*BookingGormRepository)(nil)
