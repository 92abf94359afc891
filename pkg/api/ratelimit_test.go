package api

import (
	"testing"
	"time"
)

func TestSimpleRateLimiter_EnforcesMinDelay(t *testing.T) {
	rl := NewSimpleRateLimiter(20 * time.Millisecond)

	start := time.Now()
	rl.Wait()
	rl.Wait()
	elapsed := time.Since(start)

	if elapsed < 20*time.Millisecond {
		t.Errorf("two calls completed in %v, want at least 20ms between them", elapsed)
	}
}

func TestSimpleRateLimiter_NoDelayAfterGap(t *testing.T) {
	rl := NewSimpleRateLimiter(5 * time.Millisecond)

	rl.Wait()
	time.Sleep(10 * time.Millisecond)

	start := time.Now()
	rl.Wait()
	if elapsed := time.Since(start); elapsed > 5*time.Millisecond {
		t.Errorf("Wait() blocked %v after delay already elapsed", elapsed)
	}
}

func TestNoOpRateLimiter(t *testing.T) {
	rl := NewNoOpRateLimiter()

	start := time.Now()
	for range 100 {
		rl.Wait()
	}
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Errorf("NoOpRateLimiter blocked for %v", elapsed)
	}
}

func TestRateLimiterInterface(t *testing.T) {
	var _ RateLimiter = NewSimpleRateLimiter(time.Second)
	var _ RateLimiter = NewNoOpRateLimiter()
}
