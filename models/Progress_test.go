package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressState(t *testing.T) {
	now := time.Now()
	end := now.Add(time.Hour)

	p := Progress{}
	assert.Equal(t, StateNotStarted, p.State())

	p = Progress{ChallengeStartTime: &now, ChallengeEndTime: &end, IsActive: true}
	assert.Equal(t, StateActive, p.State())

	p.IsActive = false
	p.EndReason = StateCompleted
	assert.Equal(t, StateCompleted, p.State())

	p.EndReason = StateExpired
	assert.Equal(t, StateExpired, p.State())

	p.EndReason = StateForceEnded
	assert.Equal(t, StateForceEnded, p.State())
}

func TestAddCompletedSkipsDuplicates(t *testing.T) {
	p := Progress{}
	p.AddCompleted(1)
	p.AddCompleted(2)
	p.AddCompleted(1)

	assert.Equal(t, []int{1, 2}, p.CompletedLevels)
	assert.True(t, p.HasCompleted(1))
	assert.False(t, p.HasCompleted(3))
}

func TestTimeRemainingFloorsAtZero(t *testing.T) {
	now := time.Now()
	end := now.Add(10 * time.Minute)
	p := Progress{ChallengeEndTime: &end}

	assert.Equal(t, 10*time.Minute, p.TimeRemaining(now))
	assert.Equal(t, time.Duration(0), p.TimeRemaining(end))
	assert.Equal(t, time.Duration(0), p.TimeRemaining(end.Add(time.Minute)))

	blank := Progress{}
	assert.Equal(t, time.Duration(0), blank.TimeRemaining(now))
}
