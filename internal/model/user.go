package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the system. Email is the sole login
// identifier; there is no username.
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Email       string         `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password    string         `json:"-" gorm:"type:varchar(255)"`
	Name        string         `json:"name" gorm:"type:varchar(255)"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	IsStaff     bool           `json:"is_staff" gorm:"default:false"`
	IsSuperuser bool           `json:"is_superuser" gorm:"default:false"`
	JoinedAt    time.Time      `json:"joined_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
