package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowActive(t *testing.T) {
	now := time.Now()
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	cfg := ChallengeConfig{ChallengeActive: true}
	assert.True(t, cfg.WindowActive(now), "no bounds means always open")

	cfg.ChallengeStartDate = &before
	cfg.ChallengeEndDate = &after
	assert.True(t, cfg.WindowActive(now))

	assert.False(t, cfg.WindowActive(before.Add(-time.Minute)))
	assert.False(t, cfg.WindowActive(after.Add(time.Minute)))

	cfg.ChallengeActive = false
	assert.False(t, cfg.WindowActive(now), "kill switch overrides the window")
}

func TestTimeLimit(t *testing.T) {
	cfg := ChallengeConfig{TotalTimeLimitMinutes: 90}
	assert.Equal(t, 90*time.Minute, cfg.TimeLimit())
}
