package middleware

import (
	"errors"
	"net/http"
	"strings"

	"ctfapi/database"
	"ctfapi/models"
	"ctfapi/utils"
	"ctfapi/utils/response"

	"github.com/gin-gonic/gin"
)

const (
	ErrNoTokenProvided    = "No token provided"
	ErrInvalidToken       = "Invalid or expired token"
	ErrUserNotFound       = "User not found"
	ErrAdminOnly          = "Admin access required"
	ErrAccountNotApproved = "Account is pending approval"
)

// AuthMiddleware validates the bearer token and stores the claims in the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseAuthHeader(c)
		if err != nil {
			response.ErrorCode(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}

// AdminMiddleware rejects requests from non-admin tokens. Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists || !isAdmin.(bool) {
			response.ErrorCode(c, http.StatusForbidden, response.CodeForbidden, ErrAdminOnly)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserFromRequest loads the authenticated user from the database.
// On failure it writes the error response itself; callers just return.
func GetUserFromRequest(c *gin.Context) (*models.User, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.ErrorCode(c, http.StatusUnauthorized, response.CodeUnauthorized, ErrNoTokenProvided)
		return nil, errors.New(ErrNoTokenProvided)
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		response.ErrorCode(c, http.StatusUnauthorized, response.CodeUnauthorized, ErrUserNotFound)
		return nil, err
	}

	return &user, nil
}

func parseAuthHeader(c *gin.Context) (*utils.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New(ErrNoTokenProvided)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New(ErrInvalidToken)
	}

	claims, err := utils.ParseToken(parts[1])
	if err != nil {
		return nil, errors.New(ErrInvalidToken)
	}
	return claims, nil
}
