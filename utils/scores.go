package utils

import (
	"time"
)

// CalculateScore computes a display score for a session: the sum of points for
// completed levels, a bonus for finishing fast and a malus for excessive
// attempts. Ranking itself orders by completed levels, attempts and start
// time; the score is informational.
func CalculateScore(pointsCompleted int, totalAttempts int, timeSpent time.Duration) int {
	score := pointsCompleted + CalculateTimeBonus(timeSpent) + CalculateMalusFromAttempts(totalAttempts)
	if score < 0 {
		return 0
	}
	return score
}

// CalculateTimeBonus rewards fast completions
func CalculateTimeBonus(timeSpent time.Duration) int {
	minutes := int(timeSpent.Minutes())
	switch {
	case minutes <= 0:
		return 0
	case minutes < 10:
		return 50
	case minutes < 30:
		return 25
	case minutes < 60:
		return 10
	}
	return 0
}

// CalculateMalusFromAttempts penalizes brute-force style submission sprees
func CalculateMalusFromAttempts(attempts int) int {
	switch {
	case attempts > 30:
		return -30
	case attempts > 15:
		return -15
	case attempts > 8:
		return -5
	}
	return 0
}
