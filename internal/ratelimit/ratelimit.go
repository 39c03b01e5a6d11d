// Package ratelimit provides a token bucket shared by every model call in a run.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket allows a number of requests per time window, with tokens refilling
// at a steady rate. A nil *TokenBucket never limits.
type TokenBucket struct {
	capacity   int        // Maximum tokens (burst capacity)
	refillRate float64    // Tokens per second
	tokens     float64    // Current tokens available
	lastRefill time.Time  // Last time tokens were refilled
	mu         sync.Mutex // Guards tokens and lastRefill
}

// NewTokenBucket creates a full bucket with the given capacity and refill rate in tokens per second.
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	if capacity < 1 {
		capacity = 1
	}
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// PerMinute returns a bucket admitting rpm requests per minute with a burst of one,
// so calls are spread evenly. rpm <= 0 disables limiting and returns nil.
func PerMinute(rpm int) *TokenBucket {
	if rpm <= 0 {
		return nil
	}
	return NewTokenBucket(1, float64(rpm)/60.0)
}

// refill must be called with mu held.
func (tb *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now
}

// Allow consumes a token if one is available.
func (tb *TokenBucket) Allow() bool {
	if tb == nil {
		return true
	}
	_, ok := tb.reserve()
	return ok
}

// reserve takes a token, or reports how long until one is available.
func (tb *TokenBucket) reserve() (time.Duration, bool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill(time.Now())
	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return 0, true
	}

	missing := 1.0 - tb.tokens
	return time.Duration(missing / tb.refillRate * float64(time.Second)), false
}

// Wait blocks until a token is available or ctx is done.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	if tb == nil {
		return ctx.Err()
	}
	for {
		delay, ok := tb.reserve()
		if ok {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Remaining returns the whole tokens currently available without consuming one.
func (tb *TokenBucket) Remaining() int {
	if tb == nil {
		return 0
	}
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill(time.Now())
	return int(tb.tokens)
}
