package challenges

import (
	"net/http"

	"ctfapi/models"
	"ctfapi/services"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrHintsDisabled        = "Hints are disabled"
	ErrFailedFetchChallenge = "Failed to fetch challenge"
	ErrFailedFetchStatus    = "Failed to fetch challenge status"
	ErrFailedStart          = "Failed to start the challenge"
	ErrFailedSubmit         = "Failed to submit flag"
	ErrFailedLeaderboard    = "Failed to fetch leaderboard"
)

// SubmitRequest model for flag submissions
type SubmitRequest struct {
	Flag string `json:"flag" binding:"required"`
}

// ChallengePayload is the current challenge as exposed to players, without the flag
type ChallengePayload struct {
	Level       int    `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
	Points      int    `json:"points"`
	SolveCount  int    `json:"solve_count"`
}

func challengePayload(ch *models.Challenge) ChallengePayload {
	return ChallengePayload{
		Level:       ch.Level,
		Title:       ch.Title,
		Description: ch.Description,
		Difficulty:  ch.Difficulty,
		Category:    ch.Category,
		Points:      ch.Points,
		SolveCount:  ch.SolveCount,
	}
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondWithTransitionError maps a state machine rejection to its HTTP shape
func respondWithTransitionError(c *gin.Context, te *services.TransitionError) {
	body := gin.H{"error": te.Message, "code": te.Code}

	switch te.Code {
	case services.CodeInvalidInput, services.CodeChallengeNotStarted:
		c.JSON(http.StatusBadRequest, body)
	case services.CodeRateLimitExceeded:
		body["retry_after"] = te.RetryAfter
		c.JSON(http.StatusTooManyRequests, body)
	case services.CodeNotActive, services.CodeWindowInactive,
		services.CodeChallengeAlreadyEnded, services.CodeMaxAttemptsReached,
		services.CodeAccountNotApproved:
		c.JSON(http.StatusForbidden, body)
	default:
		c.JSON(http.StatusInternalServerError, body)
	}
}
