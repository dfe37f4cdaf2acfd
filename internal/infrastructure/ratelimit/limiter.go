package ratelimit

import (
	"sync"
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

// SlidingWindowLimiter throttles submissions per key over a rolling
// window. Timestamps are pruned on every touch, so memory stays bounded
// by the number of recently active keys.
type SlidingWindowLimiter struct {
	limit  int
	window time.Duration
	clock  domain.Clock

	mu      sync.Mutex
	entries map[string][]time.Time
}

func NewSlidingWindowLimiter(limit int, window time.Duration, clock domain.Clock) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		limit:   limit,
		window:  window,
		clock:   clock,
		entries: make(map[string][]time.Time),
	}
}

func (l *SlidingWindowLimiter) Allow(key string) domain.RateLimitDecision {
	now := l.clock.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.entries[key][:0]
	for _, ts := range l.entries[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	decision := domain.RateLimitDecision{Limit: l.limit}
	if len(recent) >= l.limit {
		l.entries[key] = recent
		decision.RetryAfter = recent[0].Add(l.window).Sub(now)
		return decision
	}

	recent = append(recent, now)
	l.entries[key] = recent
	decision.Allowed = true
	decision.Remaining = l.limit - len(recent)
	return decision
}

// Prune drops keys with no submissions inside the window. Called from the
// reclamation sweep.
func (l *SlidingWindowLimiter) Prune() int {
	cutoff := l.clock.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, stamps := range l.entries {
		live := false
		for _, ts := range stamps {
			if ts.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}
