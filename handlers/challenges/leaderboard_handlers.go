package challenges

import (
	"net/http"
	"strconv"

	"ctfapi/services"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the ranked leaderboard
// @Summary Get the leaderboard
// @Description Get users ranked by completed-level count, tie-broken by attempt count then start time
// @Tags Challenge
// @Produce json
// @Param limit query int false "Maximum number of entries" default(50)
// @Success 200 {array} services.LeaderboardEntry
// @Failure 500 {object} map[string]string
// @Router /challenge/leaderboard [get]
func GetLeaderboard(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := services.GetLeaderboard(limit)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedLeaderboard)
		return
	}

	c.JSON(http.StatusOK, entries)
}
