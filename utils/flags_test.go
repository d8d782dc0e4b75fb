package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFlag(t *testing.T) {
	assert.Equal(t, "flag{hello}", NormalizeFlag("  FLAG{Hello}  "))
	assert.Equal(t, "flag{hello}", NormalizeFlag("flag{hello}"))
	assert.Equal(t, "", NormalizeFlag("   "))
}

func TestFlagsMatch(t *testing.T) {
	assert.True(t, FlagsMatch("FLAG{Secret}", "flag{secret}"))
	assert.True(t, FlagsMatch("  flag{secret}\n", "flag{secret}"))
	assert.False(t, FlagsMatch("flag{secret}", "flag{other}"))
	assert.False(t, FlagsMatch("flag{sec ret}", "flag{secret}"))
}
