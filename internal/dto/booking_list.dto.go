package dto

type BookingListDTO struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	ServiceID   *uint   `json:"service_id"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Notes       string  `json:"notes"`
	Status      string  `json:"status"`
	Name        string  `json:"name" gorm:"column:user_name"`
	Email       string  `json:"email" gorm:"column:user_email"`
	ServiceName *string `json:"service_name" gorm:"column:service_name"`
}
