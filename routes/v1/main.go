package v1

import (
	"net/http"

	"ctfapi/handlers/admin"
	"ctfapi/handlers/auth"
	"ctfapi/handlers/challenges"
	"ctfapi/handlers/reports"
	"ctfapi/middleware"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(6000, 100) // 100 requests per second, 100 burst
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	RegisterSupportRoutes(v1)
	auth.RegisterRoutes(v1)
	challenges.RegisterRoutes(v1)
	admin.RegisterRoutes(v1)
	reports.RegisterRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}

// RegisterPingRoutes registers the health check endpoint
func RegisterPingRoutes(r *gin.RouterGroup) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
