package challenges

import (
	"net/http"

	"ctfapi/database"
	"ctfapi/middleware"
	"ctfapi/services"

	"github.com/gin-gonic/gin"
)

// StartChallenge starts (or resumes) the authenticated user's session
// @Summary Start the challenge
// @Description Start a new challenge session, or return the current timing when one is already active
// @Tags Challenge
// @Produce json
// @Success 200 {object} services.StartResult
// @Failure 401,403 {object} map[string]string
// @Router /challenge/start [post]
// @Security Bearer
func StartChallenge(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	result, err := services.StartChallenge(user)
	if err != nil {
		if te, ok := services.AsTransitionError(err); ok {
			respondWithTransitionError(c, te)
			return
		}
		respondWithError(c, http.StatusInternalServerError, ErrFailedStart)
		return
	}

	message := "Challenge started"
	if result.AlreadyActive {
		message = "Challenge already in progress"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":              message,
		"challenge_start_time": result.StartTime,
		"challenge_end_time":   result.EndTime,
		"time_remaining":       result.TimeRemaining,
	})
}

// GetCurrentChallenge returns the challenge at the user's current level
// @Summary Get the current challenge
// @Description Get the challenge for the user's current level (without the flag) plus a progress summary
// @Tags Challenge
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,403 {object} map[string]string
// @Router /challenge/current [get]
// @Security Bearer
func GetCurrentChallenge(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	challenge, snapshot, err := services.GetCurrentChallenge(user.ID)
	if err != nil {
		if te, ok := services.AsTransitionError(err); ok {
			respondWithTransitionError(c, te)
			return
		}
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchChallenge)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenge": challengePayload(challenge),
		"progress":  snapshot,
	})
}

// GetStatus returns the full session status snapshot
// @Summary Get challenge status
// @Description Get the full status snapshot for the authenticated user's session
// @Tags Challenge
// @Produce json
// @Success 200 {object} services.StatusSnapshot
// @Failure 401,500 {object} map[string]string
// @Router /challenge/status [get]
// @Security Bearer
func GetStatus(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	snapshot, err := services.GetStatus(user.ID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchStatus)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetHint returns the hint for the user's current level
// @Summary Get the current level's hint
// @Description Get the hint for the current level, when hints are enabled in the config
// @Tags Challenge
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400,401,403 {object} map[string]string
// @Router /challenge/hint [get]
// @Security Bearer
func GetHint(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	cfg, err := services.GetChallengeConfig(database.DB)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchChallenge)
		return
	}
	if !cfg.AllowHints {
		respondWithError(c, http.StatusForbidden, ErrHintsDisabled)
		return
	}

	challenge, _, err := services.GetCurrentChallenge(user.ID)
	if err != nil {
		if te, ok := services.AsTransitionError(err); ok {
			respondWithTransitionError(c, te)
			return
		}
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchChallenge)
		return
	}

	c.JSON(http.StatusOK, gin.H{"level": challenge.Level, "hint": challenge.Hint})
}
