package request

import "github.com/IGIHOZO/egura-negotiation-service/internal/domain"

type UpsertRuleRequest struct {
	SKU            string               `json:"sku" binding:"required"`
	BasePrice      float64              `json:"base_price" binding:"required"`
	MinPrice       float64              `json:"min_price" binding:"required"`
	MaxDiscountPct float64              `json:"max_discount_pct"`
	MaxRounds      int                  `json:"max_rounds" binding:"required"`
	ClearanceFlag  bool                 `json:"clearance_flag"`
	StockLevel     int                  `json:"stock_level"`
	SegmentRules   []SegmentRuleRequest `json:"segment_rules"`
	BundlePairs    []BundlePairRequest  `json:"bundle_pairs"`
	FallbackPerks  FallbackPerksRequest `json:"fallback_perks"`
	Enabled        bool                 `json:"enabled"`
	Priority       int                  `json:"priority"`
}

type SegmentRuleRequest struct {
	Segment          string  `json:"segment"`
	MaxDiscountPct   float64 `json:"max_discount_pct"`
	MinPurchaseCount int     `json:"min_purchase_count"`
	MaxPurchaseCount *int    `json:"max_purchase_count"`
}

type BundlePairRequest struct {
	MainSKU           string            `json:"main_sku"`
	BundleSKU         string            `json:"bundle_sku"`
	BundlePrice       float64           `json:"bundle_price"`
	BundleDescription map[string]string `json:"bundle_description"`
}

type FallbackPerksRequest struct {
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

func (r *UpsertRuleRequest) ToDomain() *domain.NegotiationRule {
	rule := &domain.NegotiationRule{
		SKU:            r.SKU,
		BasePrice:      r.BasePrice,
		MinPrice:       r.MinPrice,
		MaxDiscountPct: r.MaxDiscountPct,
		MaxRounds:      r.MaxRounds,
		ClearanceFlag:  r.ClearanceFlag,
		StockLevel:     r.StockLevel,
		Enabled:        r.Enabled,
		Priority:       r.Priority,
	}
	for _, sr := range r.SegmentRules {
		rule.SegmentRules = append(rule.SegmentRules, domain.SegmentRule{
			Segment:          domain.CustomerSegment(sr.Segment),
			MaxDiscountPct:   sr.MaxDiscountPct,
			MinPurchaseCount: sr.MinPurchaseCount,
			MaxPurchaseCount: sr.MaxPurchaseCount,
		})
	}
	for _, b := range r.BundlePairs {
		rule.BundlePairs = append(rule.BundlePairs, domain.BundlePair{
			MainSKU:           b.MainSKU,
			BundleSKU:         b.BundleSKU,
			BundlePrice:       b.BundlePrice,
			BundleDescription: b.BundleDescription,
		})
	}
	rule.FallbackPerks = domain.FallbackPerks{
		FreeShipping: domain.FreeShippingPerk{
			Enabled:   r.FallbackPerks.FreeShipping.Enabled,
			Threshold: r.FallbackPerks.FreeShipping.Threshold,
		},
		FreeGift: domain.FreeGiftPerk{
			Enabled:     r.FallbackPerks.FreeGift.Enabled,
			Description: r.FallbackPerks.FreeGift.Description,
		},
		ExtendedWarranty: domain.ExtendedWarrantyPerk{
			Enabled: r.FallbackPerks.ExtendedWarranty.Enabled,
			Months:  r.FallbackPerks.ExtendedWarranty.Months,
		},
	}
	return rule
}
