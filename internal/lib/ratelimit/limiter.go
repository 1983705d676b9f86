// Package ratelimit implements a fixed-window request limiter on top of
// redis counters.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrRateLimited is returned once a key exceeds its budget for the
	// current window.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrRedisUnavailable wraps any redis failure.
	ErrRedisUnavailable = errors.New("rate limiter backend unavailable")
)

const keyPrefix = "webkit:ratelimit:"

// Limiter allows Requests hits per key inside each Window.
type Limiter struct {
	redis    redis.UniversalClient
	requests int
	window   time.Duration
}

// New creates a Limiter backed by redisClient.
func New(redisClient redis.UniversalClient, requests int, window time.Duration) *Limiter {
	return &Limiter{
		redis:    redisClient,
		requests: requests,
		window:   window,
	}
}

// Result describes the state of a key after a hit.
type Result struct {
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// Allow records a hit for key. It returns ErrRateLimited, together with the
// current Result, when the budget is spent.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	key = keyPrefix + key

	pipe := l.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	count, ttl := incr.Val(), ttlCmd.Val()

	// Fixed window: the first hit starts the clock. Any key found without a
	// TTL gets one here, so a lost EXPIRE heals on the next hit.
	if ttl < 0 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		ttl = l.window
	}

	result := Result{
		Limit:     l.requests,
		Remaining: max(l.requests-int(count), 0),
		ResetIn:   ttl,
	}
	if count > int64(l.requests) {
		return result, ErrRateLimited
	}
	return result, nil
}

// Reset clears the counter for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
