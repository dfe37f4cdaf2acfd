package response

import (
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	negotiationdto "github.com/IGIHOZO/egura-negotiation-service/internal/usecase/dto/negotiation"
)

type OfferResponse struct {
	SessionID         string              `json:"session_id"`
	Status            domain.Decision     `json:"status"`
	CurrentRound      int                 `json:"current_round"`
	MaxRounds         int                 `json:"max_rounds"`
	ExpiresAt         time.Time           `json:"expires_at"`
	CounterPrice      *float64            `json:"counter_price,omitempty"`
	Justification     string              `json:"justification"`
	AltPerks          *PerksResponse      `json:"alt_perks,omitempty"`
	BundleSuggestions []BundleResponse    `json:"bundle_suggestions,omitempty"`
	DiscountToken     string              `json:"discount_token,omitempty"`
}

type PerksResponse struct {
	FreeShipping     *FreeShippingResponse     `json:"free_shipping,omitempty"`
	FreeGift         *FreeGiftResponse         `json:"free_gift,omitempty"`
	ExtendedWarranty *ExtendedWarrantyResponse `json:"extended_warranty,omitempty"`
}

type FreeShippingResponse struct {
	Threshold float64 `json:"threshold"`
}

type FreeGiftResponse struct {
	Description string `json:"description"`
}

type ExtendedWarrantyResponse struct {
	Months int `json:"months"`
}

type BundleResponse struct {
	MainSKU     string            `json:"main_sku,omitempty"`
	BundleSKU   string            `json:"bundle_sku"`
	BundlePrice float64           `json:"bundle_price"`
	Description map[string]string `json:"description,omitempty"`
}

type SessionResponse struct {
	SessionID     string               `json:"session_id"`
	SKU           string               `json:"sku"`
	UserID        string               `json:"user_id"`
	Segment       domain.CustomerSegment `json:"segment"`
	Quantity      int                  `json:"quantity"`
	CurrentRound  int                  `json:"current_round"`
	MaxRounds     int                  `json:"max_rounds"`
	Status        domain.SessionStatus `json:"status"`
	History       []RoundResponse      `json:"history"`
	CreatedAt     time.Time            `json:"created_at"`
	ExpiresAt     time.Time            `json:"expires_at"`
	ClosedAt      *time.Time           `json:"closed_at,omitempty"`
	FinalPrice    *float64             `json:"final_price,omitempty"`
	DiscountToken string               `json:"discount_token,omitempty"`
}

type RoundResponse struct {
	RoundNumber   int             `json:"round_number"`
	OfferPrice    float64         `json:"offer_price"`
	Decision      domain.Decision `json:"decision"`
	CounterPrice  *float64        `json:"counter_price,omitempty"`
	Justification string          `json:"justification"`
	Timestamp     time.Time       `json:"timestamp"`
}

func FromOfferOutput(out *negotiationdto.SubmitOfferOutput) *OfferResponse {
	resp := &OfferResponse{
		SessionID:     out.SessionID,
		Status:        out.Status,
		CurrentRound:  out.CurrentRound,
		MaxRounds:     out.MaxRounds,
		ExpiresAt:     out.ExpiresAt,
		CounterPrice:  out.CounterPrice,
		Justification: out.Justification,
		DiscountToken: out.DiscountToken,
	}
	if out.AltPerks != nil {
		resp.AltPerks = fromPerks(out.AltPerks)
	}
	for _, b := range out.BundleSuggestions {
		resp.BundleSuggestions = append(resp.BundleSuggestions, BundleResponse{
			MainSKU:     b.MainSKU,
			BundleSKU:   b.BundleSKU,
			BundlePrice: b.BundlePrice,
			Description: b.BundleDescription,
		})
	}
	return resp
}

func fromPerks(perks *domain.FallbackPerks) *PerksResponse {
	resp := &PerksResponse{}
	if perks.FreeShipping.Enabled {
		resp.FreeShipping = &FreeShippingResponse{Threshold: perks.FreeShipping.Threshold}
	}
	if perks.FreeGift.Enabled {
		resp.FreeGift = &FreeGiftResponse{Description: perks.FreeGift.Description}
	}
	if perks.ExtendedWarranty.Enabled {
		resp.ExtendedWarranty = &ExtendedWarrantyResponse{Months: perks.ExtendedWarranty.Months}
	}
	if resp.FreeShipping == nil && resp.FreeGift == nil && resp.ExtendedWarranty == nil {
		return nil
	}
	return resp
}

func FromSession(session *domain.NegotiationSession) *SessionResponse {
	resp := &SessionResponse{
		SessionID:     session.ID,
		SKU:           session.SKU,
		UserID:        session.UserID,
		Segment:       session.Segment,
		Quantity:      session.Quantity,
		CurrentRound:  session.CurrentRound,
		MaxRounds:     session.MaxRounds,
		Status:        session.Status,
		CreatedAt:     session.CreatedAt,
		ExpiresAt:     session.ExpiresAt,
		ClosedAt:      session.ClosedAt,
		FinalPrice:    session.FinalPrice,
		DiscountToken: session.DiscountToken,
	}
	for _, r := range session.History {
		resp.History = append(resp.History, RoundResponse{
			RoundNumber:   r.RoundNumber,
			OfferPrice:    r.OfferPrice,
			Decision:      r.Decision,
			CounterPrice:  r.CounterPrice,
			Justification: r.Justification,
			Timestamp:     r.Timestamp,
		})
	}
	return resp
}
