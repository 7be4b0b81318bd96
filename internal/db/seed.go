package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/glamconnect/internal/models"
)

type demoAdmin struct {
	username string
	email    string
	password string
	fullName string
	role     string
}

var demoAdmins = []demoAdmin{
	{"admin", "admin@glamconnect.com", "admin123", "System Administrator", models.AdminRoleSuperAdmin},
	{"staff1", "staff@glamconnect.com", "staff123", "Staff Member", models.AdminRoleStaff},
}

// SeedDemoAdmins inserts the demo admin and staff accounts when the admin table is empty.
// It only runs when SEED_DEMO_ADMINS=true and never from request handlers.
func SeedDemoAdmins(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if count > 0 {
		log.Info("admin users already present, skipping demo seed", zap.Int64("count", count))
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range demoAdmins {
			hashed, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash demo password: %w", err)
			}
			admin := models.AdminUser{
				Username:     a.username,
				Email:        a.email,
				PasswordHash: string(hashed),
				FullName:     a.fullName,
				Role:         a.role,
				IsActive:     true,
			}
			if err := tx.Create(&admin).Error; err != nil {
				return fmt.Errorf("seed %s: %w", a.username, err)
			}
			log.Warn("seeded demo admin account with a well-known password",
				zap.String("email", a.email), zap.String("role", a.role))
		}
		return nil
	})
}
