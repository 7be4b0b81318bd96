package models

import "time"

// Session is the database fallback for session storage when Redis is not configured.
type Session struct {
	TokenHash   string    `gorm:"primaryKey;size:64"`
	SubjectKind string    `gorm:"size:20;not null"`
	SubjectID   uint      `gorm:"not null"`
	Role        string    `gorm:"size:20;not null"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
}
