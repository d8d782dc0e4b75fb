package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"ctfapi/config"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryWindowStore implements windowStore over plain maps for limiter tests
type memoryWindowStore struct {
	sets map[string]map[string]float64 // key -> member -> score
}

func newMemoryWindowStore() *memoryWindowStore {
	return &memoryWindowStore{sets: make(map[string]map[string]float64)}
}

func (s *memoryWindowStore) ZRemRangeByScore(ctx context.Context, key, min, max string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	maxScore, err := strconv.ParseFloat(max, 64)
	if err != nil {
		cmd.SetErr(err)
		return cmd
	}
	var removed int64
	for member, score := range s.sets[key] {
		if score <= maxScore {
			delete(s.sets[key], member)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

func (s *memoryWindowStore) ZCard(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(s.sets[key])))
	return cmd
}

func (s *memoryWindowStore) ZRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd {
	cmd := redis.NewZSliceCmd(ctx)
	var oldest *redis.Z
	for member, score := range s.sets[key] {
		if oldest == nil || score < oldest.Score {
			oldest = &redis.Z{Score: score, Member: member}
		}
	}
	if oldest != nil {
		cmd.SetVal([]redis.Z{*oldest})
	} else {
		cmd.SetVal([]redis.Z{})
	}
	return cmd
}

func (s *memoryWindowStore) ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd {
	if s.sets[key] == nil {
		s.sets[key] = make(map[string]float64)
	}
	for _, m := range members {
		s.sets[key][m.Member.(string)] = m.Score
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(members)))
	return cmd
}

func (s *memoryWindowStore) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

func TestSubmissionLimiterRejectsEleventhInWindow(t *testing.T) {
	limiter := &SubmissionLimiter{
		store: newMemoryWindowStore(),
		cfg:   config.DefaultSubmissionRateLimitConfig,
	}

	for i := 0; i < config.DefaultSubmissionRateLimitConfig.MaxSubmissions; i++ {
		allowed, retryAfter, err := limiter.Allow("session-1")
		require.NoError(t, err)
		assert.True(t, allowed, "submission %d should be admitted", i+1)
		assert.Equal(t, 0, retryAfter)
	}

	allowed, retryAfter, err := limiter.Allow("session-1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.GreaterOrEqual(t, retryAfter, 1)
	assert.LessOrEqual(t, retryAfter, int(config.DefaultSubmissionRateLimitConfig.Window.Seconds()))
}

func TestSubmissionLimiterIsolatesSessions(t *testing.T) {
	limiter := &SubmissionLimiter{
		store: newMemoryWindowStore(),
		cfg:   config.SubmissionRateLimitConfig{Window: 60 * time.Second, MaxSubmissions: 2},
	}

	for i := 0; i < 2; i++ {
		allowed, _, err := limiter.Allow("session-1")
		require.NoError(t, err)
		require.True(t, allowed)
	}
	allowed, _, err := limiter.Allow("session-1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, _, err = limiter.Allow("session-2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRetryAfter(t *testing.T) {
	window := 60 * time.Second
	now := time.Now().UnixMilli()

	// Oldest attempt 45s ago: 15s left in the window
	assert.Equal(t, 15*time.Second, RetryAfter(now-45_000, now, window))

	// Fractional remainders round up to whole seconds
	assert.Equal(t, 15*time.Second, RetryAfter(now-45_500, now, window))

	// Exactly a second boundary is not rounded further
	assert.Equal(t, 60*time.Second, RetryAfter(now, now, window))

	// An already-elapsed window still yields a positive hint
	assert.Equal(t, time.Second, RetryAfter(now-61_000, now, window))
	assert.Equal(t, time.Second, RetryAfter(now-60_000, now, window))
}
