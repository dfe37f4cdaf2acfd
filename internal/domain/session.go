package domain

import "time"

type SessionStatus string

const (
	SessionActive   SessionStatus = "ACTIVE"
	SessionAccepted SessionStatus = "ACCEPTED"
	SessionRejected SessionStatus = "REJECTED"
	SessionExpired  SessionStatus = "EXPIRED"
)

// Decision is the closed set of evaluator outcomes for a single offer.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionCounter Decision = "counter"
	DecisionFinal   Decision = "final"
	DecisionReject  Decision = "reject"
	DecisionExpired Decision = "expired"
)

// NegotiationSession tracks one haggling exchange for a (sku, user) pair.
// At most one active session exists per pair; terminal sessions are
// immutable and replayed as-is on repeat submissions.
type NegotiationSession struct {
	ID            string
	SKU           string
	UserID        string
	Segment       CustomerSegment
	Quantity      int
	CurrentRound  int
	MaxRounds     int
	Status        SessionStatus
	History       []Round
	CreatedAt     time.Time
	ExpiresAt     time.Time
	ClosedAt      *time.Time
	FinalPrice    *float64
	DiscountToken string
}

// Round is one history entry: the customer's offer and what the engine
// answered.
type Round struct {
	RoundNumber   int
	OfferPrice    float64
	Decision      Decision
	CounterPrice  *float64
	Justification string
	Timestamp     time.Time
}

func (s *NegotiationSession) IsTerminal() bool {
	return s.Status != SessionActive
}

func (s *NegotiationSession) IsExpired(now time.Time) bool {
	return s.Status == SessionActive && now.After(s.ExpiresAt)
}

// LastCounter returns the most recent counter price answered in this
// session, or 0 if the engine has not countered yet.
func (s *NegotiationSession) LastCounter() float64 {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].CounterPrice != nil {
			return *s.History[i].CounterPrice
		}
	}
	return 0
}
