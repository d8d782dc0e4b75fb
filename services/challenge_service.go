package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"ctfapi/database"
	"ctfapi/metrics"
	"ctfapi/models"
	"ctfapi/realtime"
	"ctfapi/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Stable transition error codes, mirrored into HTTP responses by the handlers
const (
	CodeInvalidInput          = "INVALID_INPUT"
	CodeNotActive             = "NOT_ACTIVE"
	CodeWindowInactive        = "WINDOW_INACTIVE"
	CodeRateLimitExceeded     = "RATE_LIMIT_EXCEEDED"
	CodeChallengeAlreadyEnded = "CHALLENGE_ALREADY_ENDED"
	CodeChallengeNotStarted   = "CHALLENGE_NOT_STARTED"
	CodeMaxAttemptsReached    = "MAX_ATTEMPTS_REACHED"
	CodeAccountNotApproved    = "ACCOUNT_NOT_APPROVED"
)

// TransitionError is returned when a state machine transition is rejected
type TransitionError struct {
	Code       string
	Message    string
	RetryAfter int // seconds, set only for rate limit errors
}

func (e *TransitionError) Error() string {
	return e.Message
}

// AsTransitionError unwraps a TransitionError from an error chain
func AsTransitionError(err error) (*TransitionError, bool) {
	var te *TransitionError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// CatalogLookup resolves the active challenge for a level
type CatalogLookup func(level int) (*models.Challenge, bool)

// StartResult reports the outcome of a start transition
type StartResult struct {
	AlreadyActive bool      `json:"already_active"`
	StartTime     time.Time `json:"challenge_start_time"`
	EndTime       time.Time `json:"challenge_end_time"`
	TimeRemaining int       `json:"time_remaining"`
}

// SubmitResult reports the outcome of a flag submission
type SubmitResult struct {
	Correct               bool `json:"success"`
	CurrentLevel          int  `json:"current_level"`
	MoveToNextLevel       bool `json:"move_to_next_level"`
	Completed             bool `json:"completed"`
	AllChallengesComplete bool `json:"all_challenges_complete"`
	CatalogGap            bool `json:"-"`
	TimeRemaining         int  `json:"time_remaining"`
	TotalAttempts         int  `json:"total_attempts"`
}

// StatusSnapshot is the full session status returned by the status query
type StatusSnapshot struct {
	HasStarted      bool       `json:"has_started"`
	State           string     `json:"state"`
	CurrentLevel    int        `json:"current_level"`
	CompletedLevels []int      `json:"completed_levels"`
	TimeRemaining   int        `json:"time_remaining"`
	CanRestart      bool       `json:"can_restart"`
	EndReason       string     `json:"end_reason,omitempty"`
	TotalAttempts   int        `json:"total_attempts"`
	ResetCount      int        `json:"reset_count"`
	StartTime       *time.Time `json:"challenge_start_time,omitempty"`
	EndTime         *time.Time `json:"challenge_end_time,omitempty"`
	CompletionTime  *time.Time `json:"completion_time,omitempty"`
}

// maybeExpire flips an active session to expired once the deadline has passed.
// Expiry is detected lazily on access; there is no hard real-time guarantee
// between the deadline and the next touch. The boundary is exclusive: a
// session touched exactly at its end time is already expired.
func maybeExpire(p *models.Progress, now time.Time) bool {
	if p.IsActive && p.ChallengeEndTime != nil && !now.Before(*p.ChallengeEndTime) {
		p.IsActive = false
		p.EndReason = models.StateExpired
		return true
	}
	return false
}

// ApplyStart performs the start transition on a progress record in memory.
// Starting while active is an idempotent no-op returning the current timing;
// starting from a terminal state is rejected until an admin reset.
func ApplyStart(p *models.Progress, cfg *models.ChallengeConfig, isAdmin bool, approved bool, now time.Time) (*StartResult, error) {
	if !approved && !isAdmin {
		return nil, &TransitionError{Code: CodeAccountNotApproved, Message: "Account is pending approval"}
	}
	if !cfg.WindowActive(now) {
		return nil, &TransitionError{Code: CodeWindowInactive, Message: "The challenge is not currently active"}
	}

	maybeExpire(p, now)

	switch p.State() {
	case models.StateActive:
		return &StartResult{
			AlreadyActive: true,
			StartTime:     *p.ChallengeStartTime,
			EndTime:       *p.ChallengeEndTime,
			TimeRemaining: int(p.TimeRemaining(now).Seconds()),
		}, nil
	case models.StateCompleted, models.StateExpired, models.StateForceEnded:
		return nil, &TransitionError{
			Code:    CodeChallengeAlreadyEnded,
			Message: fmt.Sprintf("Your challenge has already ended (%s). Only an admin reset can re-enable starting.", p.EndReason),
		}
	}

	end := now.Add(cfg.TimeLimit())
	p.ChallengeStartTime = &now
	p.ChallengeEndTime = &end
	p.CurrentLevel = 1
	p.CompletedLevels = []int{}
	p.TotalAttempts = 0
	p.IsActive = true
	p.EndReason = ""
	p.CompletionTime = nil

	return &StartResult{
		StartTime:     now,
		EndTime:       end,
		TimeRemaining: int(cfg.TimeLimit().Seconds()),
	}, nil
}

// checkSubmittable verifies a session can accept a submission, lazily
// expiring it when overdue. Mutates the record on expiry; callers persist.
func checkSubmittable(p *models.Progress, cfg *models.ChallengeConfig, now time.Time) error {
	if maybeExpire(p, now) {
		return &TransitionError{Code: CodeNotActive, Message: "Your challenge time has expired"}
	}

	switch p.State() {
	case models.StateNotStarted:
		return &TransitionError{Code: CodeChallengeNotStarted, Message: "Challenge has not been started"}
	case models.StateActive:
	default:
		return &TransitionError{Code: CodeNotActive, Message: "Your challenge session is not active"}
	}

	if cfg.MaxAttempts >= 0 && p.TotalAttempts >= cfg.MaxAttempts {
		return &TransitionError{Code: CodeMaxAttemptsReached, Message: "Maximum number of attempts reached"}
	}
	return nil
}

// ApplySubmission evaluates a flag submission against the current level.
// It returns the result and the submission log entry to append, or a
// TransitionError when the session cannot accept submissions. The appended
// entry and the attempt counter move together so the log length always
// matches TotalAttempts.
func ApplySubmission(p *models.Progress, cfg *models.ChallengeConfig, lookup CatalogLookup, flag string, now time.Time) (*SubmitResult, *models.Submission, error) {
	if err := checkSubmittable(p, cfg, now); err != nil {
		return nil, nil, err
	}

	challenge, ok := lookup(p.CurrentLevel)
	if !ok {
		// Catalog gap at the current level: treated as full completion,
		// the same as exhausting the catalog below.
		complete(p, now)
		return &SubmitResult{
			Correct:               false,
			CurrentLevel:          p.CurrentLevel,
			Completed:             true,
			AllChallengesComplete: true,
			CatalogGap:            true,
			TotalAttempts:         p.TotalAttempts,
		}, nil, nil
	}

	correct := utils.FlagsMatch(flag, challenge.Flag)

	sub := &models.Submission{
		ProgressID:  p.ID,
		Level:       p.CurrentLevel,
		FlagText:    flag,
		Correct:     correct,
		SubmittedAt: now,
	}
	p.TotalAttempts++

	result := &SubmitResult{
		Correct:       correct,
		CurrentLevel:  p.CurrentLevel,
		TimeRemaining: int(p.TimeRemaining(now).Seconds()),
		TotalAttempts: p.TotalAttempts,
	}

	if !correct {
		return result, sub, nil
	}

	p.AddCompleted(p.CurrentLevel)

	if len(p.CompletedLevels) >= cfg.MaxLevels {
		complete(p, now)
		result.Completed = true
		result.AllChallengesComplete = true
		return result, sub, nil
	}

	next := p.CurrentLevel + 1
	if _, exists := lookup(next); exists && next <= cfg.MaxLevels {
		p.CurrentLevel = next
		result.CurrentLevel = next
		result.MoveToNextLevel = true
		return result, sub, nil
	}

	// No further challenge available although MaxLevels was not reached:
	// catalog exhaustion counts as full completion.
	complete(p, now)
	result.Completed = true
	result.AllChallengesComplete = true
	result.CatalogGap = true
	return result, sub, nil
}

func complete(p *models.Progress, now time.Time) {
	p.IsActive = false
	p.EndReason = models.StateCompleted
	p.CompletionTime = &now
}

// ApplyStatus builds a status snapshot, lazily expiring the session.
// The returned bool reports whether the record mutated and must be persisted.
func ApplyStatus(p *models.Progress, now time.Time) (*StatusSnapshot, bool) {
	changed := maybeExpire(p, now)

	state := p.State()
	snapshot := &StatusSnapshot{
		HasStarted:      state != models.StateNotStarted,
		State:           state,
		CurrentLevel:    p.CurrentLevel,
		CompletedLevels: p.CompletedLevels,
		TimeRemaining:   0,
		CanRestart:      state == models.StateNotStarted,
		EndReason:       p.EndReason,
		TotalAttempts:   p.TotalAttempts,
		ResetCount:      p.ResetCount,
		StartTime:       p.ChallengeStartTime,
		EndTime:         p.ChallengeEndTime,
		CompletionTime:  p.CompletionTime,
	}
	if snapshot.CompletedLevels == nil {
		snapshot.CompletedLevels = []int{}
	}
	if state == models.StateActive {
		snapshot.TimeRemaining = int(p.TimeRemaining(now).Seconds())
	}
	return snapshot, changed
}

// ApplyForceEnd terminates an active session on behalf of an admin, leaving a
// synthetic submission entry carrying the reason for audit purposes.
func ApplyForceEnd(p *models.Progress, adminEmail, reason string, now time.Time) (*models.Submission, error) {
	maybeExpire(p, now)

	if p.State() != models.StateActive {
		return nil, &TransitionError{Code: CodeNotActive, Message: "Session is not active"}
	}

	p.IsActive = false
	p.EndReason = models.StateForceEnded
	p.ChallengeEndTime = &now

	sub := &models.Submission{
		ProgressID:  p.ID,
		Level:       p.CurrentLevel,
		FlagText:    "",
		Correct:     false,
		AdminNote:   fmt.Sprintf("force-ended by %s: %s", adminEmail, reason),
		SubmittedAt: now,
	}
	p.TotalAttempts++
	return sub, nil
}

// ApplyReset rewinds a session to pristine defaults while preserving the
// reset audit trail. Valid from any state.
func ApplyReset(p *models.Progress, adminEmail string, now time.Time) {
	p.CurrentLevel = 1
	p.CompletedLevels = []int{}
	p.ChallengeStartTime = nil
	p.ChallengeEndTime = nil
	p.IsActive = false
	p.EndReason = ""
	p.CompletionTime = nil
	p.TotalAttempts = 0
	p.ResetCount++
	p.LastResetTime = &now
	p.LastResetBy = adminEmail
}

// StartChallenge runs the start transition for a user under a row lock on the
// progress record, creating it on first start.
func StartChallenge(user *models.User) (*StartResult, error) {
	var result *StartResult

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		cfg, err := GetChallengeConfig(tx)
		if err != nil {
			return err
		}

		progress, err := lockProgress(tx, user.ID)
		if err != nil {
			return err
		}

		wasActive := progress.IsActive
		result, err = ApplyStart(progress, cfg, user.IsAdmin, user.IsApproved, time.Now())
		if err != nil {
			// Persist a lazy expiry even when the start is rejected
			if !progress.IsActive && wasActive {
				tx.Save(progress)
			}
			return err
		}

		return tx.Save(progress).Error
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyActive {
		metrics.ActiveSessions.Inc()
	}
	return result, nil
}

// SubmitFlag evaluates a flag submission for a user. The state gate runs
// before the sliding-window limiter so inactive sessions are rejected without
// consuming window slots; the read-modify-write of the progress record itself
// is serialized by a row lock so concurrent submissions cannot double-advance
// a level or double-count attempts.
func SubmitFlag(user *models.User, flag string, limiter *SubmissionLimiter) (*SubmitResult, error) {
	var result *SubmitResult

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		cfg, err := GetChallengeConfig(tx)
		if err != nil {
			return err
		}

		progress, err := lockProgress(tx, user.ID)
		if err != nil {
			return err
		}

		wasActive := progress.IsActive
		if err := checkSubmittable(progress, cfg, time.Now()); err != nil {
			// Persist a lazy expiry even when the submission is rejected
			if !progress.IsActive && wasActive {
				tx.Save(progress)
			}
			return err
		}

		allowed, retryAfter, err := limiter.Allow(user.ID)
		if err != nil {
			return fmt.Errorf("rate limiter failure: %w", err)
		}
		if !allowed {
			metrics.RateLimiterRejections.WithLabelValues("submission").Inc()
			return &TransitionError{
				Code:       CodeRateLimitExceeded,
				Message:    "Too many submissions, slow down",
				RetryAfter: retryAfter,
			}
		}

		lookup := func(level int) (*models.Challenge, bool) {
			var challenge models.Challenge
			if err := tx.Where("level = ? AND is_active = true", level).First(&challenge).Error; err != nil {
				return nil, false
			}
			return &challenge, true
		}

		var sub *models.Submission
		result, sub, err = ApplySubmission(progress, cfg, lookup, flag, time.Now())
		if err != nil {
			return err
		}

		if sub != nil {
			if err := tx.Create(sub).Error; err != nil {
				return err
			}
		}
		if result.Correct {
			if err := tx.Model(&models.Challenge{}).
				Where("level = ?", sub.Level).
				UpdateColumn("solve_count", gorm.Expr("solve_count + 1")).Error; err != nil {
				return err
			}
		}
		return tx.Save(progress).Error
	})
	if err != nil {
		return nil, err
	}

	if result.CatalogGap {
		log.Printf("No challenge available beyond level %d, session for user %s marked complete", result.CurrentLevel, user.ID)
	}
	recordSubmissionMetrics(result)
	broadcastSubmission(user, result)
	return result, nil
}

// GetStatus returns the status snapshot for a user, persisting any lazy expiry
func GetStatus(userID string) (*StatusSnapshot, error) {
	var snapshot *StatusSnapshot

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}

		var changed bool
		snapshot, changed = ApplyStatus(progress, time.Now())
		if changed {
			metrics.ActiveSessions.Dec()
			metrics.SessionExpirations.Inc()
			return tx.Save(progress).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// GetCurrentChallenge returns the challenge for the user's current level,
// without the flag, along with the session snapshot.
func GetCurrentChallenge(userID string) (*models.Challenge, *StatusSnapshot, error) {
	snapshot, err := GetStatus(userID)
	if err != nil {
		return nil, nil, err
	}
	if snapshot.State != models.StateActive {
		if !snapshot.HasStarted {
			return nil, nil, &TransitionError{Code: CodeChallengeNotStarted, Message: "Challenge has not been started"}
		}
		return nil, snapshot, &TransitionError{Code: CodeNotActive, Message: "Your challenge session is not active"}
	}

	var challenge models.Challenge
	if err := database.DB.Where("level = ? AND is_active = true", snapshot.CurrentLevel).First(&challenge).Error; err != nil {
		return nil, snapshot, fmt.Errorf("no challenge found for level %d: %w", snapshot.CurrentLevel, err)
	}
	return &challenge, snapshot, nil
}

// ForceEndSession terminates a user's active session on behalf of an admin
func ForceEndSession(admin *models.User, userID, reason string) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}

		sub, err := ApplyForceEnd(progress, admin.Email, reason, time.Now())
		if err != nil {
			return err
		}

		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		return tx.Save(progress).Error
	})
	if err != nil {
		return err
	}
	metrics.ActiveSessions.Dec()
	return nil
}

// ResetSession rewinds a user's session to defaults. The row lock makes the
// reset atomic with respect to in-flight submissions: a submit serialized
// after the reset sees a NotStarted session and is rejected rather than
// resurrecting stale progress.
func ResetSession(admin *models.User, userID string) (*models.Progress, error) {
	var progress *models.Progress

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		progress, err = lockProgress(tx, userID)
		if err != nil {
			return err
		}

		wasActive := progress.IsActive
		ApplyReset(progress, admin.Email, time.Now())

		if err := tx.Where("progress_id = ?", progress.ID).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Save(progress).Error; err != nil {
			return err
		}
		if wasActive {
			metrics.ActiveSessions.Dec()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// lockProgress loads the user's progress record under FOR UPDATE, creating it
// if this is the first touch.
func lockProgress(tx *gorm.DB, userID string) (*models.Progress, error) {
	var progress models.Progress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.Progress{UserID: userID, CurrentLevel: 1, CompletedLevels: []int{}}
		if err := tx.Create(&progress).Error; err != nil {
			return nil, fmt.Errorf("failed to create progress record: %w", err)
		}
		// Re-read under the lock so concurrent first touches serialize
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress record: %w", err)
	}
	return &progress, nil
}

func recordSubmissionMetrics(result *SubmitResult) {
	if result.Correct {
		metrics.FlagSubmissions.WithLabelValues("correct").Inc()
	} else {
		metrics.FlagSubmissions.WithLabelValues("incorrect").Inc()
	}
	if result.Completed {
		metrics.ChallengeCompletions.Inc()
		metrics.ActiveSessions.Dec()
	}
}

func broadcastSubmission(user *models.User, result *SubmitResult) {
	if !result.Correct {
		return
	}
	realtime.BroadcastSolve(realtime.SolveUpdate{
		UserName:    user.Name,
		Level:       result.CurrentLevel,
		AllComplete: result.AllChallengesComplete,
		Timestamp:   time.Now(),
	})
}
