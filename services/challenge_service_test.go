package services

import (
	"fmt"
	"testing"
	"time"

	"ctfapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(maxLevels int) *models.ChallengeConfig {
	return &models.ChallengeConfig{
		TotalTimeLimitMinutes: 60,
		MaxLevels:             maxLevels,
		ChallengeActive:       true,
		RegistrationOpen:      true,
		AllowHints:            true,
		MaxAttempts:           -1,
	}
}

// catalogOf builds a lookup over levels 1..n with flags "flag-<level>"
func catalogOf(levels int) CatalogLookup {
	return func(level int) (*models.Challenge, bool) {
		if level < 1 || level > levels {
			return nil, false
		}
		return &models.Challenge{
			Level: level,
			Title: fmt.Sprintf("Level %d", level),
			Flag:  fmt.Sprintf("flag-%d", level),
		}, true
	}
}

func startedProgress(t *testing.T, cfg *models.ChallengeConfig, now time.Time) *models.Progress {
	t.Helper()
	p := &models.Progress{UserID: "user-1", CurrentLevel: 1, CompletedLevels: []int{}}
	_, err := ApplyStart(p, cfg, false, true, now)
	require.NoError(t, err)
	return p
}

func TestStartTransition(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	p := &models.Progress{UserID: "user-1", CurrentLevel: 1}

	result, err := ApplyStart(p, cfg, false, true, now)
	require.NoError(t, err)

	assert.False(t, result.AlreadyActive)
	assert.Equal(t, now, result.StartTime)
	assert.Equal(t, now.Add(60*time.Minute), result.EndTime)
	assert.True(t, p.IsActive)
	assert.Equal(t, 1, p.CurrentLevel)
	assert.Empty(t, p.CompletedLevels)
	assert.Equal(t, models.StateActive, p.State())
}

func TestStartIsIdempotentWhileActive(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	p := startedProgress(t, cfg, now)
	p.CurrentLevel = 2
	p.AddCompleted(1)

	result, err := ApplyStart(p, cfg, false, true, now.Add(5*time.Minute))
	require.NoError(t, err)

	assert.True(t, result.AlreadyActive)
	assert.Equal(t, now, result.StartTime)
	assert.Equal(t, now.Add(60*time.Minute), result.EndTime)
	// Progress is not rewound
	assert.Equal(t, 2, p.CurrentLevel)
	assert.Equal(t, []int{1}, p.CompletedLevels)
}

func TestStartRejectedWhenUnapproved(t *testing.T) {
	p := &models.Progress{UserID: "user-1"}

	_, err := ApplyStart(p, testConfig(2), false, false, time.Now())
	te, ok := AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeAccountNotApproved, te.Code)

	// Admins bypass the approval gate
	_, err = ApplyStart(p, testConfig(2), true, false, time.Now())
	assert.NoError(t, err)
}

func TestStartRejectedOutsideWindow(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	start := now.Add(time.Hour)
	end := now.Add(2 * time.Hour)
	cfg.ChallengeStartDate = &start
	cfg.ChallengeEndDate = &end

	p := &models.Progress{UserID: "user-1"}
	_, err := ApplyStart(p, cfg, false, true, now)
	te, ok := AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeWindowInactive, te.Code)

	cfg.ChallengeActive = false
	cfg.ChallengeStartDate = nil
	cfg.ChallengeEndDate = nil
	_, err = ApplyStart(p, cfg, false, true, now)
	te, ok = AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeWindowInactive, te.Code)
}

func TestStartRejectedAfterTerminalState(t *testing.T) {
	now := time.Now()
	cfg := testConfig(1)
	catalog := catalogOf(1)

	// Complete the single level
	p := startedProgress(t, cfg, now)
	result, _, err := ApplySubmission(p, cfg, catalog, "flag-1", now.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, result.AllChallengesComplete)

	_, err = ApplyStart(p, cfg, false, true, now.Add(2*time.Minute))
	te, ok := AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeChallengeAlreadyEnded, te.Code)
	assert.Contains(t, te.Message, "completed")
}

func TestStartLazilyExpiresOverdueSession(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	p := startedProgress(t, cfg, now)

	_, err := ApplyStart(p, cfg, false, true, now.Add(61*time.Minute))
	te, ok := AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeChallengeAlreadyEnded, te.Code)
	assert.Contains(t, te.Message, "expired")
	assert.False(t, p.IsActive)
	assert.Equal(t, models.StateExpired, p.State())
}

func TestSubmitWrongFlagStaysOnLevel(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	p := startedProgress(t, cfg, now)

	result, sub, err := ApplySubmission(p, cfg, catalogOf(2), "wrong", now.Add(time.Minute))
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, 1, result.CurrentLevel)
	assert.Equal(t, 1, result.TotalAttempts)
	assert.False(t, result.MoveToNextLevel)
	require.NotNil(t, sub)
	assert.False(t, sub.Correct)
	assert.Equal(t, 1, sub.Level)
	assert.Equal(t, "wrong", sub.FlagText)
}

func TestSubmitCorrectFlagAdvances(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	p := startedProgress(t, cfg, now)

	result, sub, err := ApplySubmission(p, cfg, catalogOf(2), "flag-1", now.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.True(t, result.MoveToNextLevel)
	assert.Equal(t, 2, result.CurrentLevel)
	assert.Equal(t, []int{1}, p.CompletedLevels)
	assert.True(t, p.IsActive)
	require.NotNil(t, sub)
	assert.True(t, sub.Correct)
}

func TestSubmitFinalLevelCompletesSession(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	catalog := catalogOf(2)
	p := startedProgress(t, cfg, now)

	_, _, err := ApplySubmission(p, cfg, catalog, "flag-1", now.Add(time.Minute))
	require.NoError(t, err)

	result, _, err := ApplySubmission(p, cfg, catalog, "flag-2", now.Add(2*time.Minute))
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.True(t, result.Completed)
	assert.True(t, result.AllChallengesComplete)
	assert.False(t, p.IsActive)
	require.NotNil(t, p.CompletionTime)
	assert.Equal(t, models.StateCompleted, p.State())
	assert.Equal(t, []int{1, 2}, p.CompletedLevels)
}

func TestSubmitFlagComparisonIsNormalized(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	p := startedProgress(t, cfg, now)

	result, _, err := ApplySubmission(p, cfg, catalogOf(2), "  FLAG-1  ", now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, result.Correct)
}

func TestSubmitAtExactEndTimeIsRejected(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	p := startedProgress(t, cfg, now)

	_, _, err := ApplySubmission(p, cfg, catalogOf(2), "flag-1", now.Add(60*time.Minute))
	te, ok := AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotActive, te.Code)
	assert.False(t, p.IsActive)
	assert.Equal(t, models.StateExpired, p.State())
	// The rejected attempt is not logged
	assert.Equal(t, 0, p.TotalAttempts)
}

func TestSubmitBeforeStartIsRejected(t *testing.T) {
	p := &models.Progress{UserID: "user-1", CurrentLevel: 1}

	_, _, err := ApplySubmission(p, testConfig(2), catalogOf(2), "flag-1", time.Now())
	te, ok := AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeChallengeNotStarted, te.Code)
}

func TestSubmitAfterCompletionIsRejected(t *testing.T) {
	now := time.Now()
	cfg := testConfig(1)
	catalog := catalogOf(1)
	p := startedProgress(t, cfg, now)

	_, _, err := ApplySubmission(p, cfg, catalog, "flag-1", now.Add(time.Minute))
	require.NoError(t, err)

	_, _, err = ApplySubmission(p, cfg, catalog, "flag-1", now.Add(2*time.Minute))
	te, ok := AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotActive, te.Code)
}

func TestSubmitCatalogExhaustionCountsAsCompletion(t *testing.T) {
	now := time.Now()
	cfg := testConfig(5) // more required levels than the catalog holds
	catalog := catalogOf(2)
	p := startedProgress(t, cfg, now)

	_, _, err := ApplySubmission(p, cfg, catalog, "flag-1", now.Add(time.Minute))
	require.NoError(t, err)

	result, _, err := ApplySubmission(p, cfg, catalog, "flag-2", now.Add(2*time.Minute))
	require.NoError(t, err)

	assert.True(t, result.Completed)
	assert.True(t, result.AllChallengesComplete)
	assert.True(t, result.CatalogGap)
	assert.Equal(t, models.StateCompleted, p.State())
}

func TestSubmitMaxAttemptsCap(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	cfg.MaxAttempts = 2
	catalog := catalogOf(2)
	p := startedProgress(t, cfg, now)

	for i := 0; i < 2; i++ {
		_, _, err := ApplySubmission(p, cfg, catalog, "wrong", now.Add(time.Minute))
		require.NoError(t, err)
	}

	_, _, err := ApplySubmission(p, cfg, catalog, "flag-1", now.Add(2*time.Minute))
	te, ok := AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeMaxAttemptsReached, te.Code)
	assert.Equal(t, 2, p.TotalAttempts)
}

func TestCheckSubmittableGatesBeforeSideEffects(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)

	// Not started
	p := &models.Progress{UserID: "user-1", CurrentLevel: 1}
	err := checkSubmittable(p, cfg, now)
	te, ok := AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeChallengeNotStarted, te.Code)

	// Active passes
	p = startedProgress(t, cfg, now)
	assert.NoError(t, checkSubmittable(p, cfg, now.Add(time.Minute)))

	// Overdue sessions expire as part of the gate
	err = checkSubmittable(p, cfg, now.Add(2*time.Hour))
	te, ok = AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotActive, te.Code)
	assert.Equal(t, models.StateExpired, p.State())

	// Attempt cap
	cfg.MaxAttempts = 1
	p = startedProgress(t, cfg, now)
	p.TotalAttempts = 1
	err = checkSubmittable(p, cfg, now.Add(time.Minute))
	te, ok = AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeMaxAttemptsReached, te.Code)
}

func TestAttemptCounterMatchesSubmissionLog(t *testing.T) {
	now := time.Now()
	cfg := testConfig(3)
	catalog := catalogOf(3)
	p := startedProgress(t, cfg, now)

	var logged int
	flags := []string{"nope", "flag-1", "wrong", "flag-2", "flag-3"}
	for i, flag := range flags {
		_, sub, err := ApplySubmission(p, cfg, catalog, flag, now.Add(time.Duration(i+1)*time.Minute))
		require.NoError(t, err)
		if sub != nil {
			logged++
		}
	}

	assert.Equal(t, logged, p.TotalAttempts)
	assert.Equal(t, 5, p.TotalAttempts)
}

func TestCompletedLevelsNeverShrinkOrDuplicate(t *testing.T) {
	now := time.Now()
	cfg := testConfig(3)
	catalog := catalogOf(3)
	p := startedProgress(t, cfg, now)

	prevLen := 0
	flags := []string{"wrong", "flag-1", "flag-2", "bad", "flag-3"}
	for i, flag := range flags {
		_, _, err := ApplySubmission(p, cfg, catalog, flag, now.Add(time.Duration(i+1)*time.Minute))
		require.NoError(t, err)

		assert.GreaterOrEqual(t, len(p.CompletedLevels), prevLen)
		prevLen = len(p.CompletedLevels)

		seen := map[int]bool{}
		for _, level := range p.CompletedLevels {
			assert.False(t, seen[level], "duplicate level %d", level)
			seen[level] = true
		}
	}
}

func TestStatusSnapshot(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	p := startedProgress(t, cfg, now)

	snapshot, changed := ApplyStatus(p, now.Add(10*time.Minute))
	assert.False(t, changed)
	assert.True(t, snapshot.HasStarted)
	assert.Equal(t, models.StateActive, snapshot.State)
	assert.Equal(t, 50*60, snapshot.TimeRemaining)
	assert.False(t, snapshot.CanRestart)
	assert.Empty(t, snapshot.EndReason)
}

func TestStatusLazilyExpires(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	p := startedProgress(t, cfg, now)

	snapshot, changed := ApplyStatus(p, now.Add(2*time.Hour))
	assert.True(t, changed)
	assert.Equal(t, models.StateExpired, snapshot.State)
	assert.Equal(t, 0, snapshot.TimeRemaining)
	assert.False(t, snapshot.CanRestart)
	assert.Equal(t, models.StateExpired, snapshot.EndReason)
}

func TestForceEndTransition(t *testing.T) {
	now := time.Now()
	cfg := testConfig(2)
	p := startedProgress(t, cfg, now)

	sub, err := ApplyForceEnd(p, "admin@admin.com", "cheating", now.Add(time.Minute))
	require.NoError(t, err)

	assert.False(t, p.IsActive)
	assert.Equal(t, models.StateForceEnded, p.State())
	require.NotNil(t, sub)
	assert.Contains(t, sub.AdminNote, "admin@admin.com")
	assert.Contains(t, sub.AdminNote, "cheating")
	assert.Equal(t, 1, p.TotalAttempts)

	// Only active sessions can be force-ended
	_, err = ApplyForceEnd(p, "admin@admin.com", "again", now.Add(2*time.Minute))
	te, ok := AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotActive, te.Code)
}

func TestResetTransition(t *testing.T) {
	now := time.Now()
	cfg := testConfig(1)
	p := startedProgress(t, cfg, now)
	_, _, err := ApplySubmission(p, cfg, catalogOf(1), "flag-1", now.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, models.StateCompleted, p.State())

	ApplyReset(p, "admin@admin.com", now.Add(2*time.Minute))

	assert.Equal(t, models.StateNotStarted, p.State())
	assert.Equal(t, 1, p.CurrentLevel)
	assert.Empty(t, p.CompletedLevels)
	assert.Nil(t, p.ChallengeStartTime)
	assert.Nil(t, p.ChallengeEndTime)
	assert.Nil(t, p.CompletionTime)
	assert.Equal(t, 0, p.TotalAttempts)
	assert.Equal(t, 1, p.ResetCount)
	assert.Equal(t, "admin@admin.com", p.LastResetBy)
	require.NotNil(t, p.LastResetTime)

	snapshot, _ := ApplyStatus(p, now.Add(3*time.Minute))
	assert.False(t, snapshot.HasStarted)
	assert.True(t, snapshot.CanRestart)
	assert.Equal(t, 1, snapshot.ResetCount)

	// Starting again after the reset works
	_, err = ApplyStart(p, cfg, false, true, now.Add(4*time.Minute))
	assert.NoError(t, err)
}
