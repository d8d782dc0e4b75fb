package services

import (
	"context"
	"fmt"
	"time"

	"ctfapi/config"
	"ctfapi/database"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// windowStore is the subset of redis commands the sliding window needs.
// *redis.Client satisfies it; tests substitute an in-memory implementation.
type windowStore interface {
	ZRemRangeByScore(ctx context.Context, key, min, max string) *redis.IntCmd
	ZCard(ctx context.Context, key string) *redis.IntCmd
	ZRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// SubmissionLimiter enforces the per-session sliding-window limit on flag
// submissions. The window lives in redis rather than a process-wide map so
// multiple API instances share the same view of a session's submission rate.
type SubmissionLimiter struct {
	store windowStore
	cfg   config.SubmissionRateLimitConfig
}

// NewSubmissionLimiter builds a limiter over the shared redis client
func NewSubmissionLimiter(cfg config.SubmissionRateLimitConfig) *SubmissionLimiter {
	return &SubmissionLimiter{store: database.RDB, cfg: cfg}
}

// Allow records an attempt for the session and reports whether it is admitted.
// When rejected, retryAfter is the number of seconds until the oldest attempt
// leaves the window.
func (l *SubmissionLimiter) Allow(sessionKey string) (allowed bool, retryAfter int, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf("submissions:window:%s", sessionKey)
	now := time.Now()
	windowStart := now.Add(-l.cfg.Window)

	if err := l.store.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixMilli())).Err(); err != nil {
		return false, 0, err
	}

	count, err := l.store.ZCard(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	if count >= int64(l.cfg.MaxSubmissions) {
		oldest, err := l.store.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil {
			return false, 0, err
		}
		retry := l.cfg.Window
		if len(oldest) > 0 {
			retry = RetryAfter(int64(oldest[0].Score), now.UnixMilli(), l.cfg.Window)
		}
		return false, int(retry.Seconds()), nil
	}

	if err := l.store.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: uuid.NewString(),
	}).Err(); err != nil {
		return false, 0, err
	}
	if err := l.store.Expire(ctx, key, l.cfg.Window).Err(); err != nil {
		return false, 0, err
	}

	return true, 0, nil
}

// RetryAfter computes how long until the oldest attempt in the window falls
// out, rounded up to a whole second with a one second floor so clients always
// get a positive retry hint.
func RetryAfter(oldestMilli, nowMilli int64, window time.Duration) time.Duration {
	remaining := time.Duration(oldestMilli-nowMilli)*time.Millisecond + window
	if remaining <= 0 {
		return time.Second
	}
	// Round up to whole seconds
	rounded := remaining.Truncate(time.Second)
	if rounded < remaining {
		rounded += time.Second
	}
	return rounded
}
