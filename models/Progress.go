package models

import "time"

// Session states derived from a Progress record
const (
	StateNotStarted = "not_started"
	StateActive     = "active"
	StateCompleted  = "completed"
	StateExpired    = "expired"
	StateForceEnded = "force_ended"
)

// Progress represents one user's attempt at the challenge sequence
type Progress struct {
	ID                 string        `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	UserID             string        `gorm:"type:uuid;unique;not null;column:user_id" json:"user_id"`
	CurrentLevel       int           `gorm:"type:integer;not null;default:1" json:"current_level"`
	CompletedLevels    []int         `gorm:"type:jsonb;serializer:json;default:'[]'" json:"completed_levels"`
	ChallengeStartTime *time.Time    `gorm:"type:timestamptz;column:challenge_start_time" json:"challenge_start_time"`
	ChallengeEndTime   *time.Time    `gorm:"type:timestamptz;column:challenge_end_time" json:"challenge_end_time"`
	IsActive           bool          `gorm:"not null;default:false" json:"is_active"`
	CompletionTime     *time.Time    `gorm:"type:timestamptz" json:"completion_time"`
	EndReason          string        `gorm:"type:varchar(20);not null;default:''" json:"end_reason"`
	TotalAttempts      int           `gorm:"type:integer;not null;default:0" json:"total_attempts"`
	ResetCount         int           `gorm:"type:integer;not null;default:0" json:"reset_count"`
	LastResetTime      *time.Time    `gorm:"type:timestamptz" json:"last_reset_time"`
	LastResetBy        string        `gorm:"type:varchar(255)" json:"last_reset_by"`
	Submissions        []*Submission `gorm:"foreignKey:ProgressID;constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
	User               *User         `gorm:"foreignKey:UserID" json:"-"`
}

// State derives the session state from the record's fields
func (p *Progress) State() string {
	if p.ChallengeStartTime == nil {
		return StateNotStarted
	}
	if p.IsActive {
		return StateActive
	}
	switch p.EndReason {
	case StateCompleted, StateExpired, StateForceEnded:
		return p.EndReason
	}
	return StateNotStarted
}

// HasCompleted reports whether the given level is already in the completed set
func (p *Progress) HasCompleted(level int) bool {
	for _, l := range p.CompletedLevels {
		if l == level {
			return true
		}
	}
	return false
}

// AddCompleted adds a level to the completed set, skipping duplicates
func (p *Progress) AddCompleted(level int) {
	if !p.HasCompleted(level) {
		p.CompletedLevels = append(p.CompletedLevels, level)
	}
}

// TimeRemaining returns the time left in the session, floored at zero
func (p *Progress) TimeRemaining(now time.Time) time.Duration {
	if p.ChallengeEndTime == nil {
		return 0
	}
	remaining := p.ChallengeEndTime.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
