package dto

import "github.com/BruksfildServices01/glamconnect/internal/models"

// UserProfile is the public view of a customer; it never includes credentials.
type UserProfile struct {
	UserID     uint   `json:"userID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Contact    string `json:"contact"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

func NewUserProfile(u *models.User) UserProfile {
	return UserProfile{
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Contact:    u.Contact,
		Role:       u.Role,
		IsVerified: u.IsVerified,
	}
}

type AdminProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func NewAdminProfile(a *models.AdminUser) AdminProfile {
	return AdminProfile{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		FullName: a.FullName,
		Role:     a.Role,
	}
}
