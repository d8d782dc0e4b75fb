package reports

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrReportNotFound     = "Report not found"
	ErrFailedFetchReports = "Failed to fetch reports"
	ErrFailedCreateReport = "Failed to create report"
	ErrFailedUpdateReport = "Failed to update report"
	ErrFailedDeleteReport = "Failed to delete report"
	ErrInvalidRequest     = "Invalid request data"
	ErrNotReportOwner     = "You do not have access to this report"
	ErrInvalidStatus      = "Invalid report status"
)

// CreateReportRequest model for filing a report
type CreateReportRequest struct {
	Title   string          `json:"title" binding:"required"`
	Type    string          `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

// UpdateReportRequest model for updating a report
type UpdateReportRequest struct {
	Title   *string         `json:"title"`
	Type    *string         `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Status  *string         `json:"status"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
