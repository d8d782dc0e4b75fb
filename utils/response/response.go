package response

import (
	"github.com/gin-gonic/gin"
)

// Stable machine-readable error codes surfaced to clients
const (
	CodeInvalidInput          = "INVALID_INPUT"
	CodeNotActive             = "NOT_ACTIVE"
	CodeWindowInactive        = "WINDOW_INACTIVE"
	CodeRateLimitExceeded     = "RATE_LIMIT_EXCEEDED"
	CodeChallengeAlreadyEnded = "CHALLENGE_ALREADY_ENDED"
	CodeChallengeNotStarted   = "CHALLENGE_NOT_STARTED"
	CodeCatalogGap            = "CATALOG_GAP"
	CodeNotFound              = "NOT_FOUND"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodeInternal              = "INTERNAL_ERROR"
)

// Error sends a standardized error response
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// ErrorCode sends an error response carrying a stable machine-readable code
func ErrorCode(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{"error": message, "code": code})
}

// Success sends a standardized success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}
