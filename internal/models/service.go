package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultServiceCategory = "Hair"
	DefaultServiceDuration = "30 mins"
	DefaultServiceIcon     = "💇"
)

type Service struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ServiceName string          `gorm:"size:255;not null" json:"service_name"`
	Category    string          `gorm:"size:100;not null" json:"category"`
	Description string          `gorm:"size:1000;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration    string          `gorm:"size:50;not null" json:"duration"`
	ImageURL    string          `gorm:"column:image_url;size:500;not null" json:"image_url"`
	Icon        string          `gorm:"size:10;not null" json:"icon"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
