package auth

import (
	"time"
)

// Constants for error messages
const (
	ErrInvalidCredentials  = "Invalid credentials"
	ErrRegistrationClosed  = "Registration is currently closed"
	ErrEmailInUse          = "Email already in use"
	ErrHashPasswordFailed  = "Failed to hash password"
	ErrUserCreateFailed    = "Failed to create user"
	ErrTokenGenerateFailed = "Failed to generate token"
	ErrUserNotFound        = "User not found"
)

// LoginRequest model for login endpoints
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest model for registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// AuthResponse model for authentication responses
type AuthResponse struct {
	Token         string     `json:"token"`
	UserID        string     `json:"user_id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	IsAdmin       bool       `json:"is_admin"`
	IsApproved    bool       `json:"is_approved"`
	LastConnected *time.Time `json:"last_connected"`
}
