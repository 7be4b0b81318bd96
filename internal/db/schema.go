package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/glamconnect/internal/models"
)

var requiredTables = []any{
	&models.User{},
	&models.AdminUser{},
	&models.Service{},
	&models.Booking{},
	&models.Session{},
	&models.AuditLog{},
}

// AssertSchema fails when a table the application depends on is absent.
// Tables are never created lazily at request time.
func AssertSchema(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, model := range requiredTables {
		if !migrator.HasTable(model) {
			stmt := &gorm.Statement{DB: db}
			if err := stmt.Parse(model); err != nil {
				return fmt.Errorf("schema check: %w", err)
			}
			return fmt.Errorf("required table %q is missing; run migrations", stmt.Schema.Table)
		}
	}
	return nil
}
