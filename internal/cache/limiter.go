package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter keyed by an arbitrary subject (email, IP).
// A nil limiter or a nil client allows everything.
type RateLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

func NewRateLimiter(c *RedisClient, prefix string, limit int, window time.Duration) *RateLimiter {
	if c == nil || c.Client == nil {
		return nil
	}
	return &RateLimiter{client: c.Client, prefix: prefix, limit: int64(limit), window: window}
}

// Allow registers an attempt and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	if l == nil {
		return true, nil
	}
	key := l.prefix + subject

	// the window starts with the first attempt; INCR keeps the TTL set here,
	// so a counter without expiry never exists
	if err := l.client.SetNX(ctx, key, 0, l.window).Err(); err != nil {
		return true, err
	}
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	return n <= l.limit, nil
}

// Reset clears the counter, e.g. after a successful login.
func (l *RateLimiter) Reset(ctx context.Context, subject string) error {
	if l == nil {
		return nil
	}
	return l.client.Del(ctx, l.prefix+subject).Err()
}
