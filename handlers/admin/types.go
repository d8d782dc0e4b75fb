package admin

import (
	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrUserNotFound          = "User not found"
	ErrChallengeNotFound     = "Challenge not found"
	ErrFailedFetchUsers      = "Failed to fetch users"
	ErrFailedFetchSessions   = "Failed to fetch sessions"
	ErrFailedFetchChallenges = "Failed to fetch challenges"
	ErrFailedApproveUser     = "Failed to approve user"
	ErrFailedDeleteUser      = "Failed to delete user"
	ErrFailedResetSession    = "Failed to reset session"
	ErrFailedForceEnd        = "Failed to force-end session"
	ErrFailedFetchConfig     = "Failed to fetch challenge config"
	ErrFailedUpdateConfig    = "Failed to update challenge config"
	ErrFailedCreateChallenge = "Failed to create challenge"
	ErrFailedUpdateChallenge = "Failed to update challenge"
	ErrFailedDeleteChallenge = "Failed to delete challenge"
	ErrFailedExport          = "Failed to export data"
	ErrInvalidRequest        = "Invalid request data"
	ErrLevelInUse            = "A challenge already exists for this level"
)

// ForceEndRequest model for force-ending a session
type ForceEndRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateChallengeRequest model for creating a catalog entry
type CreateChallengeRequest struct {
	Level       int    `json:"level" binding:"required,min=1"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Hint        string `json:"hint"`
	Flag        string `json:"flag" binding:"required"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
	Points      int    `json:"points"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateChallengeRequest model for updating a catalog entry
type UpdateChallengeRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Hint        *string `json:"hint"`
	Flag        *string `json:"flag"`
	Difficulty  *string `json:"difficulty"`
	Category    *string `json:"category"`
	Points      *int    `json:"points"`
	IsActive    *bool   `json:"is_active"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
