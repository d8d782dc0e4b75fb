package admin

import (
	"ctfapi/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all admin-only routes
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// User management
		admin.GET("/users", GetUsers)
		admin.PUT("/users/:id/approve", ApproveUser)
		admin.DELETE("/users/:id", DeleteUser)

		// Session management
		admin.GET("/sessions", GetSessions)
		admin.PUT("/users/:id/reset", ResetUserSession)
		admin.PUT("/users/:id/force-end", ForceEndUserSession)

		// Challenge config
		admin.GET("/config", GetConfig)
		admin.PUT("/config", UpdateConfig)

		// Challenge catalog management
		admin.GET("/challenges", GetChallenges)
		admin.POST("/challenges", CreateChallenge)
		admin.PUT("/challenges/:id", UpdateChallenge)
		admin.DELETE("/challenges/:id", DeleteChallenge)

		// Data export
		admin.GET("/export", ExportProgressExcel)
	}
}
