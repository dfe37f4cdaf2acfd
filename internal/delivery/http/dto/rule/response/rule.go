package response

import (
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

type RuleResponse struct {
	SKU            string                `json:"sku"`
	BasePrice      float64               `json:"base_price"`
	MinPrice       float64               `json:"min_price"`
	MaxDiscountPct float64               `json:"max_discount_pct"`
	MaxRounds      int                   `json:"max_rounds"`
	ClearanceFlag  bool                  `json:"clearance_flag"`
	StockLevel     int                   `json:"stock_level"`
	SegmentRules   []SegmentRuleResponse `json:"segment_rules,omitempty"`
	BundlePairs    []BundlePairResponse  `json:"bundle_pairs,omitempty"`
	FallbackPerks  FallbackPerksResponse `json:"fallback_perks"`
	Enabled        bool                  `json:"enabled"`
	Priority       int                   `json:"priority"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type SegmentRuleResponse struct {
	Segment          domain.CustomerSegment `json:"segment"`
	MaxDiscountPct   float64                `json:"max_discount_pct"`
	MinPurchaseCount int                    `json:"min_purchase_count"`
	MaxPurchaseCount *int                   `json:"max_purchase_count,omitempty"`
}

type BundlePairResponse struct {
	MainSKU           string            `json:"main_sku,omitempty"`
	BundleSKU         string            `json:"bundle_sku"`
	BundlePrice       float64           `json:"bundle_price"`
	BundleDescription map[string]string `json:"bundle_description,omitempty"`
}

type FallbackPerksResponse struct {
	FreeShipping struct {
		Enabled   bool    `json:"enabled"`
		Threshold float64 `json:"threshold"`
	} `json:"free_shipping"`
	FreeGift struct {
		Enabled     bool   `json:"enabled"`
		Description string `json:"description"`
	} `json:"free_gift"`
	ExtendedWarranty struct {
		Enabled bool `json:"enabled"`
		Months  int  `json:"months"`
	} `json:"extended_warranty"`
}

func FromRule(rule *domain.NegotiationRule) *RuleResponse {
	resp := &RuleResponse{
		SKU:            rule.SKU,
		BasePrice:      rule.BasePrice,
		MinPrice:       rule.MinPrice,
		MaxDiscountPct: rule.MaxDiscountPct,
		MaxRounds:      rule.MaxRounds,
		ClearanceFlag:  rule.ClearanceFlag,
		StockLevel:     rule.StockLevel,
		Enabled:        rule.Enabled,
		Priority:       rule.Priority,
		CreatedAt:      rule.CreatedAt,
		UpdatedAt:      rule.UpdatedAt,
	}
	for _, sr := range rule.SegmentRules {
		resp.SegmentRules = append(resp.SegmentRules, SegmentRuleResponse{
			Segment:          sr.Segment,
			MaxDiscountPct:   sr.MaxDiscountPct,
			MinPurchaseCount: sr.MinPurchaseCount,
			MaxPurchaseCount: sr.MaxPurchaseCount,
		})
	}
	for _, b := range rule.BundlePairs {
		resp.BundlePairs = append(resp.BundlePairs, BundlePairResponse{
			MainSKU:           b.MainSKU,
			BundleSKU:         b.BundleSKU,
			BundlePrice:       b.BundlePrice,
			BundleDescription: b.BundleDescription,
		})
	}
	resp.FallbackPerks.FreeShipping.Enabled = rule.FallbackPerks.FreeShipping.Enabled
	resp.FallbackPerks.FreeShipping.Threshold = rule.FallbackPerks.FreeShipping.Threshold
	resp.FallbackPerks.FreeGift.Enabled = rule.FallbackPerks.FreeGift.Enabled
	resp.FallbackPerks.FreeGift.Description = rule.FallbackPerks.FreeGift.Description
	resp.FallbackPerks.ExtendedWarranty.Enabled = rule.FallbackPerks.ExtendedWarranty.Enabled
	resp.FallbackPerks.ExtendedWarranty.Months = rule.FallbackPerks.ExtendedWarranty.Months
	return resp
}

func FromRules(rules []*domain.NegotiationRule) []*RuleResponse {
	out := make([]*RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, FromRule(r))
	}
	return out
}
