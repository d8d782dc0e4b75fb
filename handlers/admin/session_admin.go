package admin

import (
	"net/http"

	"ctfapi/database"
	"ctfapi/middleware"
	"ctfapi/models"
	"ctfapi/services"

	"github.com/gin-gonic/gin"
)

// ResetUserSession rewinds a user's session to pristine defaults
// @Summary Reset a user's session
// @Description Reset all session fields to defaults while preserving the reset audit trail
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.Progress
// @Failure 401,403,404 {object} map[string]string
// @Router /admin/users/{id}/reset [put]
// @Security Bearer
func ResetUserSession(c *gin.Context) {
	admin, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	userID := c.Param("id")
	if !userExists(userID) {
		respondWithError(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	progress, err := services.ResetSession(admin, userID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedResetSession)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Session reset",
		"progress": progress,
	})
}

// ForceEndUserSession terminates a user's active session
// @Summary Force-end a user's session
// @Description Terminate an active session, recording the admin's reason in the submission log
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body ForceEndRequest true "Reason"
// @Success 200 {object} map[string]string
// @Failure 400,401,403,404 {object} map[string]string
// @Router /admin/users/{id}/force-end [put]
// @Security Bearer
func ForceEndUserSession(c *gin.Context) {
	admin, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req ForceEndRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	userID := c.Param("id")
	if !userExists(userID) {
		respondWithError(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	if err := services.ForceEndSession(admin, userID, req.Reason); err != nil {
		if te, ok := services.AsTransitionError(err); ok {
			c.JSON(http.StatusConflict, gin.H{"error": te.Message, "code": te.Code})
			return
		}
		respondWithError(c, http.StatusInternalServerError, ErrFailedForceEnd)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session force-ended"})
}

func userExists(userID string) bool {
	var count int64
	database.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count)
	return count > 0
}
