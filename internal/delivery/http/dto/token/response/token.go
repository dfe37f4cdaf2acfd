package response

import (
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

type TokenResponse struct {
	Token     string    `json:"token"`
	SKU       string    `json:"sku"`
	SessionID string    `json:"session_id"`
	Price     float64   `json:"price"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Redeemed  bool      `json:"redeemed"`
}

func FromToken(token *domain.DiscountToken) *TokenResponse {
	return &TokenResponse{
		Token:     token.Token,
		SKU:       token.SKU,
		SessionID: token.SessionID,
		Price:     token.Price,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt,
		Redeemed:  token.Redeemed,
	}
}
