package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("hunter3", hash))
}

func TestCreateRandomPassword(t *testing.T) {
	hash, err := CreateRandomPassword()
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.False(t, CheckPasswordHash("", hash))
}
