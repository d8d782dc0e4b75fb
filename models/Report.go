package models

import (
	"encoding/json"
	"time"
)

// Report statuses
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
	ReportStatusArchived = "archived"
)

// Report represents a cloud-reporting entry filed by a user
type Report struct {
	ID        string          `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string          `gorm:"type:uuid;not null;column:user_id" json:"user_id"`
	Title     string          `gorm:"type:varchar(255);not null" json:"title"`
	Type      string          `gorm:"type:varchar(50);not null" json:"type"`
	Payload   json.RawMessage `gorm:"type:jsonb" json:"payload"`
	Status    string          `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	User      *User           `gorm:"foreignKey:UserID" json:"-"`
}
