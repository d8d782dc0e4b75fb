package models

import "time"

// ChallengeConfig is the singleton row holding process-wide challenge parameters.
// It is created lazily by database.Populate and mutated only by admins.
type ChallengeConfig struct {
	ID                    string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	TotalTimeLimitMinutes int        `gorm:"type:integer;not null;default:60" json:"total_time_limit_minutes"`
	MaxLevels             int        `gorm:"type:integer;not null;default:5" json:"max_levels"`
	ChallengeActive       bool       `gorm:"not null;default:true" json:"challenge_active"`
	RegistrationOpen      bool       `gorm:"not null;default:true" json:"registration_open"`
	AllowHints            bool       `gorm:"not null;default:true" json:"allow_hints"`
	MaxAttempts           int        `gorm:"type:integer;not null;default:-1" json:"max_attempts"` // -1 = unlimited
	ChallengeStartDate    *time.Time `json:"challenge_start_date"`
	ChallengeEndDate      *time.Time `json:"challenge_end_date"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TimeLimit returns the configured session length as a duration
func (c *ChallengeConfig) TimeLimit() time.Duration {
	return time.Duration(c.TotalTimeLimitMinutes) * time.Minute
}

// WindowActive reports whether the challenge window is open at the given instant.
// A nil bound leaves that side of the window unrestricted.
func (c *ChallengeConfig) WindowActive(now time.Time) bool {
	if !c.ChallengeActive {
		return false
	}
	if c.ChallengeStartDate != nil && now.Before(*c.ChallengeStartDate) {
		return false
	}
	if c.ChallengeEndDate != nil && now.After(*c.ChallengeEndDate) {
		return false
	}
	return true
}
