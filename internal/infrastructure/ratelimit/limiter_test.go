package ratelimit

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestSlidingWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewSlidingWindowLimiter(10, time.Minute, clock)

	// Ten offers pass, the eleventh within the minute is refused.
	for i := 0; i < 10; i++ {
		if d := limiter.Allow("user-1|PHONE-X1"); !d.Allowed {
			t.Fatalf("submission %d refused, want allowed", i+1)
		}
		clock.Advance(time.Second)
	}
	d := limiter.Allow("user-1|PHONE-X1")
	if d.Allowed {
		t.Fatal("11th submission within window allowed, want refused")
	}
	if d.RetryAfter <= 0 {
		t.Fatalf("RetryAfter = %v, want positive", d.RetryAfter)
	}

	// Other keys are independent.
	if d := limiter.Allow("user-2|PHONE-X1"); !d.Allowed {
		t.Fatal("independent key refused")
	}

	// The window slides: once early submissions age out, capacity returns.
	clock.Advance(51 * time.Second)
	if d := limiter.Allow("user-1|PHONE-X1"); !d.Allowed {
		t.Fatal("submission after window slide refused")
	}
}

func TestPrune(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewSlidingWindowLimiter(5, time.Minute, clock)

	limiter.Allow("a")
	limiter.Allow("b")
	clock.Advance(2 * time.Minute)
	limiter.Allow("c")

	if removed := limiter.Prune(); removed != 2 {
		t.Fatalf("Prune removed %d keys, want 2", removed)
	}
}
