package services

import (
	"errors"
	"fmt"
	"time"

	"ctfapi/models"

	"gorm.io/gorm"
)

// ConfigUpdate carries the mutable challenge parameters; nil fields are left untouched
type ConfigUpdate struct {
	TotalTimeLimitMinutes *int       `json:"total_time_limit_minutes"`
	MaxLevels             *int       `json:"max_levels"`
	ChallengeActive       *bool      `json:"challenge_active"`
	RegistrationOpen      *bool      `json:"registration_open"`
	AllowHints            *bool      `json:"allow_hints"`
	MaxAttempts           *int       `json:"max_attempts"`
	ChallengeStartDate    *time.Time `json:"challenge_start_date"`
	ChallengeEndDate      *time.Time `json:"challenge_end_date"`
}

// GetChallengeConfig loads the singleton config row
func GetChallengeConfig(tx *gorm.DB) (*models.ChallengeConfig, error) {
	var cfg models.ChallengeConfig
	if err := tx.First(&cfg).Error; err != nil {
		return nil, fmt.Errorf("failed to load challenge config: %w", err)
	}
	return &cfg, nil
}

// ApplyConfigUpdate merges an update into a config row, validating invariants
func ApplyConfigUpdate(cfg *models.ChallengeConfig, update ConfigUpdate) error {
	if update.TotalTimeLimitMinutes != nil {
		if *update.TotalTimeLimitMinutes <= 0 {
			return errors.New("total time limit must be positive")
		}
		cfg.TotalTimeLimitMinutes = *update.TotalTimeLimitMinutes
	}
	if update.MaxLevels != nil {
		if *update.MaxLevels < 1 {
			return errors.New("max levels must be at least 1")
		}
		cfg.MaxLevels = *update.MaxLevels
	}
	if update.ChallengeActive != nil {
		cfg.ChallengeActive = *update.ChallengeActive
	}
	if update.RegistrationOpen != nil {
		cfg.RegistrationOpen = *update.RegistrationOpen
	}
	if update.AllowHints != nil {
		cfg.AllowHints = *update.AllowHints
	}
	if update.MaxAttempts != nil {
		if *update.MaxAttempts < -1 {
			return errors.New("max attempts must be -1 (unlimited) or non-negative")
		}
		cfg.MaxAttempts = *update.MaxAttempts
	}
	if update.ChallengeStartDate != nil {
		cfg.ChallengeStartDate = update.ChallengeStartDate
	}
	if update.ChallengeEndDate != nil {
		cfg.ChallengeEndDate = update.ChallengeEndDate
	}

	if cfg.ChallengeStartDate != nil && cfg.ChallengeEndDate != nil &&
		!cfg.ChallengeStartDate.Before(*cfg.ChallengeEndDate) {
		return errors.New("challenge start date must be before end date")
	}
	return nil
}
