package models

import "time"

const RoleCustomer = "customer"

type User struct {
	ID      uint   `gorm:"primaryKey" json:"userID"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Contact string `gorm:"size:20;not null" json:"contact"`

	PasswordHash string `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:customer" json:"role"`

	IsVerified    bool       `gorm:"not null;default:false" json:"is_verified"`
	VerifyToken   *string    `gorm:"size:128" json:"-"`
	VerifyExpires *time.Time `json:"-"`
	ResetToken    *string    `gorm:"size:128" json:"-"`
	ResetExpires  *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
