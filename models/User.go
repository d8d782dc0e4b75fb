package models

import "time"

// User represents an account on the platform
type User struct {
	ID            string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Email         string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Name          string     `gorm:"type:varchar(100);not null" json:"name"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin       bool       `gorm:"not null;default:false" json:"is_admin"`
	IsApproved    bool       `gorm:"not null;default:false" json:"is_approved"`
	LastConnected *time.Time `json:"last_connected"`
	CreatedAt     time.Time  `json:"created_at"`
	Progress      *Progress  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"progress,omitempty"`
}
