package negotiationdto

import (
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

type SubmitOfferOutput struct {
	SessionID         string
	Status            domain.Decision
	CurrentRound      int
	MaxRounds         int
	ExpiresAt         time.Time
	CounterPrice      *float64
	Justification     string
	AltPerks          *domain.FallbackPerks
	BundleSuggestions []domain.BundlePair
	DiscountToken     string
}
