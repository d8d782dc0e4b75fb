package config

import "time"

// Rate limit configuration for flag submissions
type SubmissionRateLimitConfig struct {
	Window         time.Duration // Sliding window duration
	MaxSubmissions int           // Maximum submissions inside the window
}

var DefaultSubmissionRateLimitConfig = SubmissionRateLimitConfig{
	Window:         60 * time.Second,
	MaxSubmissions: 10,
}
