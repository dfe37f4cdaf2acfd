package domain

import "time"

// DiscountToken is a single-use redemption voucher bound to the price an
// accepted negotiation closed at. Checkout consumes it; this service only
// issues, validates and flips it.
type DiscountToken struct {
	Token     string
	SKU       string
	SessionID string
	Price     float64
	IssuedAt  time.Time
	ExpiresAt time.Time
	Redeemed  bool
}

func (t *DiscountToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
