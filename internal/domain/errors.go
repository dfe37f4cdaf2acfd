package domain

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrRuleNotFound    = errors.New("negotiation rule not found")
	ErrRuleDisabled    = errors.New("negotiation rule is disabled")
	ErrRuleInUse       = errors.New("negotiation rule has active sessions")
	ErrSessionNotFound = errors.New("negotiation session not found")
	ErrSessionConflict = errors.New("concurrent session update conflict")
	ErrRateLimited     = errors.New("offer rate limit exceeded")
	ErrTokenNotFound   = errors.New("discount token not found")
	ErrTokenRedeemed   = errors.New("discount token already redeemed")
	ErrTokenExpired    = errors.New("discount token expired")
)
