package pricing

import (
	"strings"
	"testing"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

func testEngine() *Engine {
	return NewEngine(50, 5, 0.5)
}

func intPtr(v int) *int { return &v }

func phoneRule() *domain.NegotiationRule {
	return &domain.NegotiationRule{
		SKU:            "PHONE-X1",
		BasePrice:      45000,
		MinPrice:       38250,
		MaxDiscountPct: 15,
		MaxRounds:      3,
		Enabled:        true,
		FallbackPerks: domain.FallbackPerks{
			FreeShipping: domain.FreeShippingPerk{Enabled: true, Threshold: 20000},
		},
		BundlePairs: []domain.BundlePair{
			{MainSKU: "PHONE-X1", BundleSKU: "CASE-X1", BundlePrice: 47000,
				BundleDescription: map[string]string{"en": "Phone + case"}},
		},
	}
}

func TestFloorBounds(t *testing.T) {
	e := testEngine()
	rules := []*domain.NegotiationRule{
		phoneRule(),
		{SKU: "A", BasePrice: 100, MinPrice: 95, MaxDiscountPct: 3, MaxRounds: 1},
		{SKU: "B", BasePrice: 100, MinPrice: 50, MaxDiscountPct: 40, MaxRounds: 5, ClearanceFlag: true},
	}
	for _, rule := range rules {
		for _, seg := range []domain.CustomerSegment{domain.SegmentNew, domain.SegmentReturning, domain.SegmentVIP} {
			floor := e.Floor(rule, seg)
			if floor > rule.BasePrice {
				t.Errorf("rule %s seg %s: floor %v above base %v", rule.SKU, seg, floor, rule.BasePrice)
			}
			if floor < rule.MinPrice {
				t.Errorf("rule %s seg %s: floor %v below min %v", rule.SKU, seg, floor, rule.MinPrice)
			}
		}
	}
}

func TestOfferAtOrAboveFloorAccepts(t *testing.T) {
	e := testEngine()
	rule := phoneRule()

	// Scenario: offer ~11% off on round 1 is accepted at the offer.
	res := e.Evaluate(EvalInput{Rule: rule, Segment: domain.SegmentNew, OfferPrice: 40000, Round: 1, Language: "en"})
	if res.Decision != domain.DecisionAccept {
		t.Fatalf("decision = %s, want accept", res.Decision)
	}
	if res.CounterPrice != 40000 {
		t.Fatalf("accepted price = %v, want offer price 40000", res.CounterPrice)
	}

	// Exactly the floor is a deal too, even deep in the session.
	res = e.Evaluate(EvalInput{Rule: rule, Segment: domain.SegmentNew, OfferPrice: 38250, Round: 4, PrevCounter: 38250})
	if res.Decision != domain.DecisionAccept || res.CounterPrice != 38250 {
		t.Fatalf("floor offer: got %s at %v, want accept at 38250", res.Decision, res.CounterPrice)
	}
}

func TestCounterSchedule(t *testing.T) {
	e := testEngine()
	rule := phoneRule()

	// Scenario: lowball 30000 on round 1 is countered roughly halfway
	// between base and floor, strictly above the floor.
	res := e.Evaluate(EvalInput{Rule: rule, Segment: domain.SegmentNew, OfferPrice: 30000, Round: 1})
	if res.Decision != domain.DecisionCounter {
		t.Fatalf("decision = %s, want counter", res.Decision)
	}
	if res.CounterPrice != 41625 {
		t.Fatalf("round 1 counter = %v, want 41625", res.CounterPrice)
	}

	// Round 2 narrows further and stays monotonic.
	res2 := e.Evaluate(EvalInput{Rule: rule, Segment: domain.SegmentNew, OfferPrice: 30000, Round: 2, PrevCounter: res.CounterPrice})
	if res2.Decision != domain.DecisionCounter {
		t.Fatalf("round 2 decision = %s, want counter", res2.Decision)
	}
	if res2.CounterPrice >= res.CounterPrice {
		t.Fatalf("round 2 counter %v not below round 1 counter %v", res2.CounterPrice, res.CounterPrice)
	}
	floor := e.Floor(rule, domain.SegmentNew)
	if res2.CounterPrice < floor {
		t.Fatalf("round 2 counter %v below floor %v", res2.CounterPrice, floor)
	}
}

func TestCounterMonotonicAcrossLongSession(t *testing.T) {
	e := testEngine()
	rule := phoneRule()
	rule.MaxRounds = 5
	floor := e.Floor(rule, domain.SegmentNew)

	prev := 0.0
	for round := 1; round < rule.MaxRounds; round++ {
		res := e.Evaluate(EvalInput{Rule: rule, Segment: domain.SegmentNew, OfferPrice: 30000, Round: round, PrevCounter: prev})
		if res.Decision != domain.DecisionCounter {
			t.Fatalf("round %d decision = %s, want counter", round, res.Decision)
		}
		if prev > 0 && res.CounterPrice >= prev {
			t.Fatalf("round %d counter %v not strictly below previous %v", round, res.CounterPrice, prev)
		}
		if res.CounterPrice < floor {
			t.Fatalf("round %d counter %v below floor %v", round, res.CounterPrice, floor)
		}
		prev = res.CounterPrice
	}
}

func TestFinalRound(t *testing.T) {
	e := testEngine()
	rule := phoneRule()

	// Scenario: lowball held through round maxRounds gets the floor
	// exactly, plus perks and bundles.
	res := e.Evaluate(EvalInput{Rule: rule, Segment: domain.SegmentNew, OfferPrice: 30000, Round: 3, PrevCounter: 40612, Language: "en"})
	if res.Decision != domain.DecisionFinal {
		t.Fatalf("decision = %s, want final", res.Decision)
	}
	if res.CounterPrice != 38250 {
		t.Fatalf("final counter = %v, want floor 38250 exactly", res.CounterPrice)
	}
	if res.AltPerks == nil || !res.AltPerks.FreeShipping.Enabled {
		t.Fatalf("final decision missing fallback perks")
	}
	if len(res.BundleSuggestions) != 1 || res.BundleSuggestions[0].BundleSKU != "CASE-X1" {
		t.Fatalf("final decision missing bundle suggestions: %+v", res.BundleSuggestions)
	}
}

func TestRejectAfterFinal(t *testing.T) {
	e := testEngine()
	rule := phoneRule()

	res := e.Evaluate(EvalInput{Rule: rule, Segment: domain.SegmentNew, OfferPrice: 30000, Round: 4, PrevCounter: 38250})
	if res.Decision != domain.DecisionReject {
		t.Fatalf("decision = %s, want reject after final round", res.Decision)
	}
}

func TestSegmentCapNeverExceeded(t *testing.T) {
	e := testEngine()
	rule := phoneRule()
	rule.SegmentRules = []domain.SegmentRule{
		{Segment: domain.SegmentNew, MaxDiscountPct: 5, MinPurchaseCount: 0, MaxPurchaseCount: intPtr(0)},
		{Segment: domain.SegmentReturning, MaxDiscountPct: 10, MinPurchaseCount: 1, MaxPurchaseCount: intPtr(9)},
		{Segment: domain.SegmentVIP, MaxDiscountPct: 15, MinPurchaseCount: 10},
	}

	// New customers floor at 5% off even though the rule allows 15%.
	floor := e.Floor(rule, domain.SegmentNew)
	if want := 45000 * 0.95; floor != want {
		t.Fatalf("new-segment floor = %v, want %v", floor, want)
	}

	// Clearance relaxes the segment cap but never past the rule cap.
	rule.ClearanceFlag = true
	floor = e.Floor(rule, domain.SegmentNew)
	if want := 45000 * 0.90; floor != want { // 5% + 5% bonus
		t.Fatalf("clearance new-segment floor = %v, want %v", floor, want)
	}
	vipFloor := e.Floor(rule, domain.SegmentVIP)
	if want := 45000 * 0.85; vipFloor != want { // capped at rule's 15%
		t.Fatalf("clearance vip floor = %v, want %v", vipFloor, want)
	}

	// Overstock triggers the same relaxation as the clearance flag.
	rule.ClearanceFlag = false
	rule.StockLevel = 80
	if got := e.Floor(rule, domain.SegmentNew); got != 45000*0.90 {
		t.Fatalf("overstock floor = %v, want %v", got, 45000*0.90)
	}
}

func TestJustificationsLocalized(t *testing.T) {
	for _, lang := range []string{"en", "fr", "rw"} {
		msg := Justify(domain.DecisionFinal, lang, 38250)
		if !strings.Contains(msg, "38,250") {
			t.Errorf("lang %s: final justification missing price: %q", lang, msg)
		}
	}
	// Unknown language falls back to English.
	if got, want := Justify(domain.DecisionAccept, "sw", 1000), Justify(domain.DecisionAccept, "en", 1000); got != want {
		t.Errorf("fallback justification = %q, want %q", got, want)
	}
	// Expired carries no price.
	if msg := Justify(domain.DecisionExpired, "en", 0); strings.Contains(msg, "%!") {
		t.Errorf("expired justification malformed: %q", msg)
	}
}
