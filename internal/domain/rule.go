package domain

import (
	"fmt"
	"sort"
	"time"
)

type CustomerSegment string

const (
	SegmentNew       CustomerSegment = "new"
	SegmentReturning CustomerSegment = "returning"
	SegmentVIP       CustomerSegment = "vip"
)

const (
	MinRounds = 1
	MaxRounds = 5
)

// NegotiationRule is the admin-managed haggling policy for one SKU.
// A rule is validated on write; the evaluator trusts a stored rule.
type NegotiationRule struct {
	SKU            string
	BasePrice      float64
	MinPrice       float64
	MaxDiscountPct float64
	MaxRounds      int
	ClearanceFlag  bool
	StockLevel     int
	SegmentRules   []SegmentRule
	BundlePairs    []BundlePair
	FallbackPerks  FallbackPerks
	Enabled        bool
	Priority       int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SegmentRule caps the discount for customers whose lifetime purchase count
// falls in [MinPurchaseCount, MaxPurchaseCount]. MaxPurchaseCount == nil
// means unbounded.
type SegmentRule struct {
	Segment          CustomerSegment
	MaxDiscountPct   float64
	MinPurchaseCount int
	MaxPurchaseCount *int
}

type BundlePair struct {
	MainSKU           string
	BundleSKU         string
	BundlePrice       float64
	BundleDescription map[string]string
}

type FreeShippingPerk struct {
	Enabled   bool
	Threshold float64
}

type FreeGiftPerk struct {
	Enabled     bool
	Description string
}

type ExtendedWarrantyPerk struct {
	Enabled bool
	Months  int
}

// FallbackPerks are the non-price concessions offered on the final round
// instead of any further discount.
type FallbackPerks struct {
	FreeShipping     FreeShippingPerk
	FreeGift         FreeGiftPerk
	ExtendedWarranty ExtendedWarrantyPerk
}

// Validate rejects any rule the evaluator could not trust at runtime:
// a floor above the discounted base price, a segment axis with gaps,
// or a round budget outside the allowed range.
func (r *NegotiationRule) Validate() error {
	if r.SKU == "" {
		return fmt.Errorf("%w: sku is required", ErrValidation)
	}
	if r.BasePrice <= 0 {
		return fmt.Errorf("%w: base_price must be positive", ErrValidation)
	}
	if r.MinPrice <= 0 {
		return fmt.Errorf("%w: min_price must be positive", ErrValidation)
	}
	if r.MinPrice > r.BasePrice {
		return fmt.Errorf("%w: min_price exceeds base_price", ErrValidation)
	}
	if r.MaxDiscountPct < 0 || r.MaxDiscountPct >= 100 {
		return fmt.Errorf("%w: max_discount_pct must be in [0, 100)", ErrValidation)
	}
	if discounted := r.BasePrice * (1 - r.MaxDiscountPct/100); r.MinPrice > discounted {
		return fmt.Errorf("%w: min_price %.2f exceeds base_price with max discount applied (%.2f)",
			ErrValidation, r.MinPrice, discounted)
	}
	if r.MaxRounds < MinRounds || r.MaxRounds > MaxRounds {
		return fmt.Errorf("%w: max_rounds must be in [%d, %d]", ErrValidation, MinRounds, MaxRounds)
	}
	if r.StockLevel < 0 {
		return fmt.Errorf("%w: stock_level must not be negative", ErrValidation)
	}
	if err := validateSegmentRules(r.SegmentRules); err != nil {
		return err
	}
	for _, bundle := range r.BundlePairs {
		if bundle.BundleSKU == "" {
			return fmt.Errorf("%w: bundle_sku is required", ErrValidation)
		}
		if bundle.BundlePrice <= 0 {
			return fmt.Errorf("%w: bundle_price must be positive", ErrValidation)
		}
	}
	return nil
}

// validateSegmentRules requires the purchase-count axis to be fully covered
// starting at zero, with no gaps and no overlaps, so classification is
// deterministic for every customer.
func validateSegmentRules(rules []SegmentRule) error {
	if len(rules) == 0 {
		return nil
	}
	sorted := make([]SegmentRule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinPurchaseCount < sorted[j].MinPurchaseCount
	})

	if sorted[0].MinPurchaseCount != 0 {
		return fmt.Errorf("%w: segment rules must cover purchase count 0", ErrValidation)
	}
	for i, sr := range sorted {
		switch sr.Segment {
		case SegmentNew, SegmentReturning, SegmentVIP:
		default:
			return fmt.Errorf("%w: unknown segment %q", ErrValidation, sr.Segment)
		}
		if sr.MaxDiscountPct < 0 || sr.MaxDiscountPct >= 100 {
			return fmt.Errorf("%w: segment %s max_discount_pct must be in [0, 100)", ErrValidation, sr.Segment)
		}
		if sr.MaxPurchaseCount != nil && *sr.MaxPurchaseCount < sr.MinPurchaseCount {
			return fmt.Errorf("%w: segment %s has inverted purchase count bounds", ErrValidation, sr.Segment)
		}
		if i < len(sorted)-1 {
			if sr.MaxPurchaseCount == nil {
				return fmt.Errorf("%w: segment %s is unbounded but not last", ErrValidation, sr.Segment)
			}
			next := sorted[i+1]
			if next.MinPurchaseCount != *sr.MaxPurchaseCount+1 {
				return fmt.Errorf("%w: segment rules leave a gap after purchase count %d",
					ErrValidation, *sr.MaxPurchaseCount)
			}
		}
	}
	if last := sorted[len(sorted)-1]; last.MaxPurchaseCount != nil {
		return fmt.Errorf("%w: segment rules must cover unbounded purchase counts", ErrValidation)
	}
	return nil
}

// ClassifySegment maps a customer's lifetime purchase count onto the rule's
// segment partition. Rules without segment rules treat everyone as new.
func (r *NegotiationRule) ClassifySegment(purchaseCount int) CustomerSegment {
	for _, sr := range r.SegmentRules {
		if purchaseCount < sr.MinPurchaseCount {
			continue
		}
		if sr.MaxPurchaseCount == nil || purchaseCount <= *sr.MaxPurchaseCount {
			return sr.Segment
		}
	}
	return SegmentNew
}

// SegmentCap returns the discount cap for the given segment, falling back to
// the rule-wide cap when the segment has no dedicated rule.
func (r *NegotiationRule) SegmentCap(segment CustomerSegment) float64 {
	for _, sr := range r.SegmentRules {
		if sr.Segment == segment {
			return sr.MaxDiscountPct
		}
	}
	return r.MaxDiscountPct
}

// BundlesFor returns the bundle suggestions attached to the rule for the
// negotiated SKU.
func (r *NegotiationRule) BundlesFor(sku string) []BundlePair {
	var bundles []BundlePair
	for _, b := range r.BundlePairs {
		if b.MainSKU == "" || b.MainSKU == sku {
			bundles = append(bundles, b)
		}
	}
	return bundles
}
