package reports

import (
	"ctfapi/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to cloud reports
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/", GetReports)
		reports.GET("/:id", GetReport)
		reports.POST("/", CreateReport)
		reports.PUT("/:id", UpdateReport)
		reports.DELETE("/:id", DeleteReport)
	}
}
