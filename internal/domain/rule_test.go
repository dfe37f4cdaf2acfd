package domain

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func validRule() *NegotiationRule {
	return &NegotiationRule{
		SKU:            "PHONE-X1",
		BasePrice:      45000,
		MinPrice:       38250,
		MaxDiscountPct: 15,
		MaxRounds:      3,
		Enabled:        true,
		SegmentRules: []SegmentRule{
			{Segment: SegmentNew, MaxDiscountPct: 8, MinPurchaseCount: 0, MaxPurchaseCount: intPtr(0)},
			{Segment: SegmentReturning, MaxDiscountPct: 12, MinPurchaseCount: 1, MaxPurchaseCount: intPtr(9)},
			{Segment: SegmentVIP, MaxDiscountPct: 15, MinPurchaseCount: 10},
		},
	}
}

func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*NegotiationRule)
		wantErr bool
	}{
		{"valid rule", func(r *NegotiationRule) {}, false},
		{"no segment rules", func(r *NegotiationRule) { r.SegmentRules = nil }, false},
		{"missing sku", func(r *NegotiationRule) { r.SKU = "" }, true},
		{"zero base price", func(r *NegotiationRule) { r.BasePrice = 0 }, true},
		{"zero min price", func(r *NegotiationRule) { r.MinPrice = 0 }, true},
		{"min above base", func(r *NegotiationRule) { r.MinPrice = 46000 }, true},
		{"min above discounted base", func(r *NegotiationRule) { r.MinPrice = 40000 }, true},
		{"min below discounted base", func(r *NegotiationRule) { r.MinPrice = 38000 }, false},
		{"max rounds too low", func(r *NegotiationRule) { r.MaxRounds = 0 }, true},
		{"max rounds too high", func(r *NegotiationRule) { r.MaxRounds = 6 }, true},
		{"discount pct out of range", func(r *NegotiationRule) { r.MaxDiscountPct = 100 }, true},
		{"negative stock", func(r *NegotiationRule) { r.StockLevel = -1 }, true},
		{"segment gap", func(r *NegotiationRule) {
			r.SegmentRules[1].MinPurchaseCount = 2
		}, true},
		{"segment not starting at zero", func(r *NegotiationRule) {
			r.SegmentRules[0].MinPurchaseCount = 1
			r.SegmentRules[1].MinPurchaseCount = 2
		}, true},
		{"last segment bounded", func(r *NegotiationRule) {
			r.SegmentRules[2].MaxPurchaseCount = intPtr(100)
		}, true},
		{"unbounded segment not last", func(r *NegotiationRule) {
			r.SegmentRules[0].MaxPurchaseCount = nil
		}, true},
		{"unknown segment", func(r *NegotiationRule) {
			r.SegmentRules[0].Segment = "platinum"
		}, true},
		{"bundle without price", func(r *NegotiationRule) {
			r.BundlePairs = []BundlePair{{MainSKU: "PHONE-X1", BundleSKU: "CASE-X1"}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validRule()
			tt.mutate(rule)
			err := rule.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestClassifySegment(t *testing.T) {
	rule := validRule()

	tests := []struct {
		count int
		want  CustomerSegment
	}{
		{0, SegmentNew},
		{1, SegmentReturning},
		{9, SegmentReturning},
		{10, SegmentVIP},
		{500, SegmentVIP},
	}
	for _, tt := range tests {
		if got := rule.ClassifySegment(tt.count); got != tt.want {
			t.Errorf("ClassifySegment(%d) = %s, want %s", tt.count, got, tt.want)
		}
	}

	// No segment rules at all: everyone is treated as new.
	bare := validRule()
	bare.SegmentRules = nil
	if got := bare.ClassifySegment(42); got != SegmentNew {
		t.Errorf("ClassifySegment without rules = %s, want %s", got, SegmentNew)
	}
}

func TestSegmentCap(t *testing.T) {
	rule := validRule()
	if got := rule.SegmentCap(SegmentReturning); got != 12 {
		t.Errorf("SegmentCap(returning) = %v, want 12", got)
	}
	// Segment without a rule falls back to the rule-wide cap.
	bare := validRule()
	bare.SegmentRules = bare.SegmentRules[:1]
	if got := bare.SegmentCap(SegmentVIP); got != bare.MaxDiscountPct {
		t.Errorf("SegmentCap fallback = %v, want %v", got, bare.MaxDiscountPct)
	}
}
