package models

import "time"

// ConsultationBooking 健康咨询预约
type ConsultationBooking struct {
	ID            string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID        string    `gorm:"type:varchar(50);index" json:"user_id"`
	Name          string    `gorm:"type:varchar(100)" json:"name"`
	Email         string    `gorm:"type:varchar(100)" json:"email"`
	Topic         string    `gorm:"type:varchar(100)" json:"topic"`
	PreferredDate string    `gorm:"type:varchar(30)" json:"preferredDate"`
	PreferredTime string    `gorm:"type:varchar(30)" json:"preferredTime"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}
