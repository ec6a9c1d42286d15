package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginRecord captures one successful login for audit/history purposes
type LoginRecord struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	IPAddress string    `json:"ip_address"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
	IsDeleted bool      `json:"-" gorm:"default:false"`
}
