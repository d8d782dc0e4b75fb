package challenges

import (
	"net/http"

	"ctfapi/middleware"
	"ctfapi/services"

	"github.com/gin-gonic/gin"
)

// SubmitFlag evaluates a flag for the user's current level
// @Summary Submit a flag
// @Description Submit a flag for the current level. Correct flags advance the session; every submission is logged.
// @Tags Challenge
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Flag submission"
// @Success 200 {object} services.SubmitResult
// @Failure 400,401,403,429 {object} map[string]string
// @Router /challenge/submit [post]
// @Security Bearer
func SubmitFlag(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A flag string is required",
			"code":  services.CodeInvalidInput,
		})
		return
	}

	result, err := services.SubmitFlag(user, req.Flag, submissionLimiter)
	if err != nil {
		if te, ok := services.AsTransitionError(err); ok {
			respondWithTransitionError(c, te)
			return
		}
		respondWithError(c, http.StatusInternalServerError, ErrFailedSubmit)
		return
	}

	message := "Incorrect flag, stay on the current level"
	if result.Correct {
		message = "Correct flag!"
		if result.AllChallengesComplete {
			message = "Congratulations, you completed all challenges!"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                 result.Correct,
		"message":                 message,
		"current_level":           result.CurrentLevel,
		"move_to_next_level":      result.MoveToNextLevel,
		"completed":               result.Completed,
		"all_challenges_complete": result.AllChallengesComplete,
		"time_remaining":          result.TimeRemaining,
		"total_attempts":          result.TotalAttempts,
	})
}
