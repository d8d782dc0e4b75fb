package models

import "time"

// Submission is one entry of the append-only per-session flag submission log.
// Force-end records carry the admin's reason in AdminNote.
type Submission struct {
	ID          string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	ProgressID  string    `gorm:"type:uuid;not null;column:progress_id" json:"progress_id"`
	Level       int       `gorm:"type:integer;not null" json:"level"`
	FlagText    string    `gorm:"type:varchar(255);not null" json:"flag_text"`
	Correct     bool      `gorm:"not null" json:"correct"`
	AdminNote   string    `gorm:"type:varchar(255)" json:"admin_note,omitempty"`
	SubmittedAt time.Time `gorm:"type:timestamptz;not null" json:"submitted_at"`
}
