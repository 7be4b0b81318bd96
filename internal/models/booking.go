package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Date is YYYY-MM-DD and Time is HH:MM, both in the salon timezone.
	Date  string `gorm:"column:booking_date;size:10;not null" json:"date"`
	Time  string `gorm:"column:booking_time;size:5;not null" json:"time"`
	Notes string `gorm:"size:1000;not null" json:"notes"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
