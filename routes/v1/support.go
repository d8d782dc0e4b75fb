package v1

import (
	"log"
	"net/http"

	"ctfapi/services"
	"ctfapi/utils/response"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrFailedSendSupport = "Failed to send support request"
)

// SupportRequest model for support submissions
type SupportRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	IssueType string `json:"issueType" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// RegisterSupportRoutes registers the support contact endpoint
// r: the RouterGroup to which the routes are added
func RegisterSupportRoutes(r *gin.RouterGroup) {
	r.POST("/support", SubmitSupportRequest)
}

// SubmitSupportRequest forwards a support request to the configured inbox
// @Summary Submit a support request
// @Description Forward a user's support request to the platform's support inbox
// @Tags Support
// @Accept json
// @Produce json
// @Param request body SupportRequest true "Support request details"
// @Success 200 {object} map[string]string
// @Failure 400,500 {object} map[string]string
// @Router /support [post]
func SubmitSupportRequest(c *gin.Context) {
	var req SupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, response.CodeInvalidInput, err.Error())
		return
	}

	notifier := services.NewNotificationService()
	if err := notifier.SendSupportEmail(req.Name, req.Email, req.IssueType, req.Subject, req.Message); err != nil {
		log.Printf("Failed to send support email from %s: %v", req.Email, err)
		response.Error(c, http.StatusInternalServerError, ErrFailedSendSupport)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Support request submitted"})
}
