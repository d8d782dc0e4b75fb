package utils

import (
	"testing"

	"ctfapi/config"
	"ctfapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.JWTSecret = "test-secret"

	user := models.User{
		ID:      "8f9c7b1a-0000-0000-0000-000000000001",
		Email:   "alice@example.com",
		IsAdmin: true,
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	config.JWTSecret = "test-secret"

	token, err := GenerateToken(models.User{ID: "u1", Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	config.JWTSecret = "different-secret"
	_, err = ParseToken(token)
	assert.Error(t, err)
}
