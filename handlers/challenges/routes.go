package challenges

import (
	"ctfapi/config"
	"ctfapi/middleware"
	"ctfapi/services"

	"github.com/gin-gonic/gin"
)

var submissionLimiter *services.SubmissionLimiter

// RegisterRoutes registers all routes related to the challenge session
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	submissionLimiter = services.NewSubmissionLimiter(config.DefaultSubmissionRateLimitConfig)

	// Public routes
	r.GET("/challenge/leaderboard", GetLeaderboard)
	r.GET("/challenge/feed", ChallengeFeedWebSocket)

	challenge := r.Group("/challenge")
	challenge.Use(middleware.AuthMiddleware())
	{
		challenge.POST("/start", StartChallenge)
		challenge.GET("/current", GetCurrentChallenge)
		challenge.POST("/submit", SubmitFlag)
		challenge.GET("/status", GetStatus)
		challenge.GET("/hint", GetHint)
	}
}
