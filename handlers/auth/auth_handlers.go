package auth

import (
	"net/http"
	"time"

	"ctfapi/database"
	"ctfapi/middleware"
	"ctfapi/models"
	"ctfapi/services"
	"ctfapi/utils"
	"ctfapi/utils/response"

	"github.com/gin-gonic/gin"
)

// Login authenticates a user and returns a bearer token
// @Summary Login
// @Description Authenticate with email and password, returns a JWT bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400,401 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, response.CodeInvalidInput, err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		response.ErrorCode(c, http.StatusUnauthorized, response.CodeUnauthorized, ErrInvalidCredentials)
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		response.ErrorCode(c, http.StatusUnauthorized, response.CodeUnauthorized, ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	now := time.Now()
	database.DB.Model(&user).Update("last_connected", now)

	c.JSON(http.StatusOK, AuthResponse{
		Token:         token,
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		IsAdmin:       user.IsAdmin,
		IsApproved:    user.IsApproved,
		LastConnected: &now,
	})
}

// RegisterUser creates a new account, pending admin approval
// @Summary Register
// @Description Create a new account. Accounts must be approved by an admin before starting the challenge.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]string
// @Failure 400,403,409 {object} map[string]string
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, response.CodeInvalidInput, err.Error())
		return
	}

	cfg, err := services.GetChallengeConfig(database.DB)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load challenge config")
		return
	}
	if !cfg.RegistrationOpen {
		response.ErrorCode(c, http.StatusForbidden, response.CodeForbidden, ErrRegistrationClosed)
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		response.Error(c, http.StatusConflict, ErrEmailInUse)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrHashPasswordFailed)
		return
	}

	user := models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hashedPassword,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created, awaiting admin approval"})
}

// CheckAuth returns the authenticated user's profile
// @Summary Check authentication
// @Description Validate the bearer token and return the associated user
// @Tags Auth
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	c.JSON(http.StatusOK, AuthResponse{
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		IsAdmin:       user.IsAdmin,
		IsApproved:    user.IsApproved,
		LastConnected: user.LastConnected,
	})
}
