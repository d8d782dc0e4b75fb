package utils

import "strings"

// NormalizeFlag trims surrounding whitespace and lowercases a flag for comparison
func NormalizeFlag(flag string) string {
	return strings.ToLower(strings.TrimSpace(flag))
}

// FlagsMatch compares a submitted flag against the stored one, case-insensitive and whitespace-trimmed
func FlagsMatch(submitted, stored string) bool {
	return NormalizeFlag(submitted) == NormalizeFlag(stored)
}
