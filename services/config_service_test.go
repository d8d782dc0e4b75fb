package services

import (
	"testing"
	"time"

	"ctfapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestApplyConfigUpdateMergesFields(t *testing.T) {
	cfg := &models.ChallengeConfig{
		TotalTimeLimitMinutes: 60,
		MaxLevels:             5,
		ChallengeActive:       true,
		MaxAttempts:           -1,
	}

	err := ApplyConfigUpdate(cfg, ConfigUpdate{
		TotalTimeLimitMinutes: intPtr(90),
		MaxAttempts:           intPtr(20),
		ChallengeActive:       boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.TotalTimeLimitMinutes)
	assert.Equal(t, 20, cfg.MaxAttempts)
	assert.False(t, cfg.ChallengeActive)
	// Untouched fields keep their values
	assert.Equal(t, 5, cfg.MaxLevels)
}

func TestApplyConfigUpdateValidation(t *testing.T) {
	cfg := &models.ChallengeConfig{TotalTimeLimitMinutes: 60, MaxLevels: 5}

	assert.Error(t, ApplyConfigUpdate(cfg, ConfigUpdate{TotalTimeLimitMinutes: intPtr(0)}))
	assert.Error(t, ApplyConfigUpdate(cfg, ConfigUpdate{MaxLevels: intPtr(0)}))
	assert.Error(t, ApplyConfigUpdate(cfg, ConfigUpdate{MaxAttempts: intPtr(-2)}))
}

func TestApplyConfigUpdateWindowInvariant(t *testing.T) {
	now := time.Now()
	cfg := &models.ChallengeConfig{TotalTimeLimitMinutes: 60, MaxLevels: 5}

	err := ApplyConfigUpdate(cfg, ConfigUpdate{
		ChallengeStartDate: timePtr(now.Add(time.Hour)),
		ChallengeEndDate:   timePtr(now),
	})
	assert.Error(t, err)

	err = ApplyConfigUpdate(cfg, ConfigUpdate{
		ChallengeStartDate: timePtr(now),
		ChallengeEndDate:   timePtr(now.Add(time.Hour)),
	})
	assert.NoError(t, err)
}
