package kafka

import "time"

// NegotiationEvent is the JSON payload published per terminal session
// transition.
type NegotiationEvent struct {
	SessionID   string    `json:"session_id"`
	SKU         string    `json:"sku"`
	UserID      string    `json:"user_id"`
	Segment     string    `json:"segment"`
	Outcome     string    `json:"outcome"`
	Rounds      int       `json:"rounds"`
	FinalPrice  float64   `json:"final_price,omitempty"`
	DiscountPct float64   `json:"discount_pct,omitempty"`
	Revenue     float64   `json:"revenue,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
