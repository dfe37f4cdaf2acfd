package pricing

import (
	"math"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

// Engine is the pure offer evaluator. It holds only tuning parameters;
// every evaluation is a function of (rule, session state, offer) with no
// side effects, so the session manager can serialize and persist around it.
type Engine struct {
	// OverstockThreshold is the stock level at or above which a rule is
	// treated like clearance.
	OverstockThreshold int
	// ClearanceBonusPct is added to the segment cap on clearance or
	// overstock, still bounded by the rule's own MaxDiscountPct.
	ClearanceBonusPct float64
	// MinStepPct forces each counter below the previous one by at least
	// this percentage of the base price.
	MinStepPct float64
}

func NewEngine(overstockThreshold int, clearanceBonusPct, minStepPct float64) *Engine {
	return &Engine{
		OverstockThreshold: overstockThreshold,
		ClearanceBonusPct:  clearanceBonusPct,
		MinStepPct:         minStepPct,
	}
}

type EvalInput struct {
	Rule       *domain.NegotiationRule
	Segment    domain.CustomerSegment
	OfferPrice float64
	// Round is the 1-based number of the round this offer opens.
	Round int
	// PrevCounter is the engine's last counter in this session, 0 when
	// the engine has not countered yet.
	PrevCounter float64
	Language    string
}

type EvalResult struct {
	Decision          domain.Decision
	CounterPrice      float64
	Justification     string
	AltPerks          *domain.FallbackPerks
	BundleSuggestions []domain.BundlePair
}

// Concession schedule: fraction of the remaining anchor-to-floor gap
// conceded per round. Round 1 concedes half, round 2 less, later rounds
// trend toward the floor until the final round pins it exactly.
var concessionFractions = []float64{0.5, 0.3, 0.15}

func concessionFraction(round int) float64 {
	if round <= 0 {
		round = 1
	}
	if round > len(concessionFractions) {
		return concessionFractions[len(concessionFractions)-1]
	}
	return concessionFractions[round-1]
}

// EffectiveCap computes the discount ceiling for this evaluation:
// the tighter of the rule cap and the segment cap, relaxed by the
// clearance bonus when stock pressure applies, never past the rule's own
// MaxDiscountPct.
func (e *Engine) EffectiveCap(rule *domain.NegotiationRule, segment domain.CustomerSegment) float64 {
	cap := math.Min(rule.MaxDiscountPct, rule.SegmentCap(segment))
	if rule.ClearanceFlag || rule.StockLevel >= e.OverstockThreshold {
		cap = math.Min(rule.MaxDiscountPct, cap+e.ClearanceBonusPct)
	}
	return cap
}

// Floor is the lowest price any decision may reach for this rule and
// segment.
func (e *Engine) Floor(rule *domain.NegotiationRule, segment domain.CustomerSegment) float64 {
	cap := e.EffectiveCap(rule, segment)
	return math.Max(rule.MinPrice, rule.BasePrice*(1-cap/100))
}

// Evaluate runs the decision algorithm for one offer. The caller owns
// round accounting and persistence; Evaluate never mutates its input.
func (e *Engine) Evaluate(in EvalInput) EvalResult {
	rule := in.Rule
	floor := e.Floor(rule, in.Segment)

	// Any offer at or above the floor is a deal at the customer's price.
	if in.OfferPrice >= floor {
		return EvalResult{
			Decision:      domain.DecisionAccept,
			CounterPrice:  in.OfferPrice,
			Justification: Justify(domain.DecisionAccept, in.Language, in.OfferPrice),
		}
	}

	// Past the round budget the final take-it-or-leave-it has already
	// been answered; below-floor offers now close the session.
	if in.Round > rule.MaxRounds {
		return EvalResult{
			Decision:      domain.DecisionReject,
			Justification: Justify(domain.DecisionReject, in.Language, floor),
		}
	}

	// Final round: counter at the floor exactly, sweetened with perks
	// and bundles instead of any further discount.
	if in.Round == rule.MaxRounds {
		res := EvalResult{
			Decision:          domain.DecisionFinal,
			CounterPrice:      floor,
			Justification:     Justify(domain.DecisionFinal, in.Language, floor),
			BundleSuggestions: rule.BundlesFor(rule.SKU),
		}
		if perks := rule.FallbackPerks; perks.FreeShipping.Enabled || perks.FreeGift.Enabled || perks.ExtendedWarranty.Enabled {
			p := perks
			res.AltPerks = &p
		}
		return res
	}

	counter := e.nextCounter(rule, floor, in.PrevCounter, in.Round)
	return EvalResult{
		Decision:      domain.DecisionCounter,
		CounterPrice:  counter,
		Justification: Justify(domain.DecisionCounter, in.Language, counter),
	}
}

// nextCounter narrows the gap between the previous anchor and the floor
// by the round's concession fraction. Counters are monotonically
// non-increasing by at least the minimum step and never dip below the
// floor.
func (e *Engine) nextCounter(rule *domain.NegotiationRule, floor, prevCounter float64, round int) float64 {
	anchor := rule.BasePrice
	if prevCounter > 0 {
		anchor = prevCounter
	}

	counter := anchor - concessionFraction(round)*(anchor-floor)

	// Whole-unit rounding in the customer's favor, but never past the
	// floor.
	counter = math.Floor(counter)

	if prevCounter > 0 {
		minStep := rule.BasePrice * e.MinStepPct / 100
		if counter > prevCounter-minStep {
			counter = prevCounter - minStep
		}
	}
	if counter < floor {
		counter = floor
	}
	return counter
}
