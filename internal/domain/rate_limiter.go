package domain

import "time"

// RateLimitDecision reports whether a submission may proceed and, if not,
// when the caller should retry.
type RateLimitDecision struct {
	Allowed    bool
	Remaining  int
	Limit      int
	RetryAfter time.Duration
}

// RateLimiter throttles offer submissions per caller key. A denied
// submission must not consume a negotiation round.
type RateLimiter interface {
	Allow(key string) RateLimitDecision
}
