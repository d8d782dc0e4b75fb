package admin

import (
	"log"
	"net/http"

	"ctfapi/database"
	"ctfapi/models"
	"ctfapi/services"

	"github.com/gin-gonic/gin"
)

// GetUsers retrieves all users with their challenge progress
// @Summary Get all users
// @Description Get all user accounts, including their progress records
// @Tags Admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/users [get]
// @Security Bearer
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Preload("Progress").Find(&users).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchUsers)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ApproveUser approves a pending account
// @Summary Approve a user
// @Description Approve a pending account so the user can start the challenge
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 401,403,404 {object} map[string]string
// @Router /admin/users/{id}/approve [put]
// @Security Bearer
func ApproveUser(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	if err := database.DB.Model(&user).Update("is_approved", true).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedApproveUser)
		return
	}

	// Best-effort notification: log and continue on failure
	if err := services.NewNotificationService().SendApprovalEmail(user.Email, user.Name); err != nil {
		log.Printf("Failed to send approval notification to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "User approved"})
}

// DeleteUser removes an account and its progress
// @Summary Delete a user
// @Description Delete a user account along with its progress record and submission log
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 401,403,404 {object} map[string]string
// @Router /admin/users/{id} [delete]
// @Security Bearer
func DeleteUser(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	if err := database.DB.Select("Progress").Delete(&user).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedDeleteUser)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// GetSessions lists all progress records with their users
// @Summary Get all sessions
// @Description Get every user's progress record, including the submission log
// @Tags Admin
// @Produce json
// @Success 200 {array} models.Progress
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/sessions [get]
// @Security Bearer
func GetSessions(c *gin.Context) {
	var progresses []models.Progress
	if err := database.DB.Preload("User").Preload("Submissions").Find(&progresses).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchSessions)
		return
	}

	c.JSON(http.StatusOK, progresses)
}
