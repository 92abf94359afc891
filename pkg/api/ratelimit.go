// Package api provides request pacing helpers for remote sources.
package api

import (
	"sync"
	"time"
)

// RateLimiter defines the interface for rate limiting implementations
type RateLimiter interface {
	// Wait blocks until it's safe to make another request
	Wait()
}

// SimpleRateLimiter implements basic rate limiting with minimum delay between calls
type SimpleRateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	minDelay time.Duration
}

// NewSimpleRateLimiter creates a new simple rate limiter with minimum delay between calls
func NewSimpleRateLimiter(minDelay time.Duration) *SimpleRateLimiter {
	return &SimpleRateLimiter{
		minDelay: minDelay,
	}
}

// Wait blocks until it's safe to make another request
func (rl *SimpleRateLimiter) Wait() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	elapsed := time.Since(rl.lastCall)
	if elapsed < rl.minDelay {
		time.Sleep(rl.minDelay - elapsed)
	}
	rl.lastCall = time.Now()
}

// NoOpRateLimiter implements the RateLimiter interface but performs no rate limiting
type NoOpRateLimiter struct{}

// NewNoOpRateLimiter creates a rate limiter that performs no limiting
func NewNoOpRateLimiter() *NoOpRateLimiter {
	return &NoOpRateLimiter{}
}

// Wait returns immediately
func (rl *NoOpRateLimiter) Wait() {}
