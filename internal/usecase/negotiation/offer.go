package negotiation

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	negotiationdto "github.com/IGIHOZO/egura-negotiation-service/internal/usecase/dto/negotiation"
	"github.com/IGIHOZO/egura-negotiation-service/internal/usecase/pricing"
	"github.com/google/uuid"
)

// SubmitOffer runs one negotiation round: throttle, load or create the
// session, evaluate, persist, and mint a discount token on acceptance.
// Terminal sessions replay their stored result instead of re-evaluating.
func (uc *DefaultNegotiationUsecase) SubmitOffer(input *negotiationdto.SubmitOfferInput) (*negotiationdto.SubmitOfferOutput, error) {
	if input.SKU == "" || input.UserID == "" {
		return nil, fmt.Errorf("%w: sku and user_id are required", domain.ErrValidation)
	}
	if input.OfferPrice <= 0 {
		return nil, fmt.Errorf("%w: offer_price must be positive", domain.ErrValidation)
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}
	if input.Language == "" {
		input.Language = "en"
	}

	// Throttled submissions never reach the session, so they cannot
	// consume a round.
	if decision := uc.RateLimiter.Allow(sessionKey(input.SKU, input.UserID)); !decision.Allowed {
		if uc.Metrics != nil {
			uc.Metrics.RateLimitedTotal.WithLabelValues(input.SKU).Inc()
		}
		return nil, domain.ErrRateLimited
	}

	unlock := uc.locks.Lock(sessionKey(input.SKU, input.UserID))
	defer unlock()

	rule, err := uc.RuleRepo.GetRuleBySKU(input.SKU)
	if err != nil {
		return nil, err
	}
	if !rule.Enabled {
		return nil, domain.ErrRuleDisabled
	}

	now := uc.Clock.Now()
	session, replay, err := uc.resolveSession(input, rule, now)
	if err != nil {
		return nil, err
	}
	if replay != nil {
		return replay, nil
	}

	// One retry against the reloaded session covers a lost CAS race with
	// another instance; in-process contention is already serialized by
	// the keyed mutex.
	for attempt := 0; ; attempt++ {
		out, err := uc.evaluateRound(session, rule, input, now)
		if errors.Is(err, domain.ErrSessionConflict) && attempt == 0 {
			session, err = uc.SessionRepo.GetSessionByID(session.ID)
			if err != nil {
				return nil, err
			}
			if session.IsTerminal() {
				return uc.replayOutput(session, input.Language), nil
			}
			continue
		}
		return out, err
	}
}

// resolveSession finds the session this offer belongs to. It returns a
// ready replay response for terminal and just-expired sessions, and
// creates a fresh session when none is active.
func (uc *DefaultNegotiationUsecase) resolveSession(
	input *negotiationdto.SubmitOfferInput,
	rule *domain.NegotiationRule,
	now time.Time) (*domain.NegotiationSession, *negotiationdto.SubmitOfferOutput, error) {

	var session *domain.NegotiationSession
	var err error
	if input.SessionID != "" {
		session, err = uc.SessionRepo.GetSessionByID(input.SessionID)
		if err != nil {
			return nil, nil, err
		}
		if session.SKU != input.SKU || session.UserID != input.UserID {
			return nil, nil, fmt.Errorf("%w: session does not belong to this sku and user", domain.ErrValidation)
		}
	} else {
		session, err = uc.SessionRepo.GetLatestSession(input.SKU, input.UserID)
		if errors.Is(err, domain.ErrSessionNotFound) {
			session, err = uc.createSession(input, rule, now)
			return session, nil, err
		}
		if err != nil {
			return nil, nil, err
		}
	}

	if session.IsExpired(now) {
		if err := uc.expireSession(session, rule, now); err != nil {
			return nil, nil, err
		}
		return nil, uc.replayOutput(session, input.Language), nil
	}
	if session.IsTerminal() {
		// Without an explicit session reference a finished negotiation
		// does not block a new one.
		if input.SessionID == "" {
			session, err = uc.createSession(input, rule, now)
			return session, nil, err
		}
		return nil, uc.replayOutput(session, input.Language), nil
	}
	return session, nil, nil
}

func (uc *DefaultNegotiationUsecase) createSession(
	input *negotiationdto.SubmitOfferInput,
	rule *domain.NegotiationRule,
	now time.Time) (*domain.NegotiationSession, error) {

	purchaseCount, err := uc.Customers.PurchaseCount(input.UserID)
	if err != nil {
		slog.Warn("customer directory lookup failed, classifying as new",
			"user_id", input.UserID, "error", err.Error())
		purchaseCount = 0
	}

	session := &domain.NegotiationSession{
		ID:        uuid.New().String(),
		SKU:       input.SKU,
		UserID:    input.UserID,
		Segment:   rule.ClassifySegment(purchaseCount),
		Quantity:  input.Quantity,
		MaxRounds: rule.MaxRounds,
		Status:    domain.SessionActive,
		CreatedAt: now,
		// TTL is fixed at creation and never extended by later rounds,
		// bounding total negotiation wall-clock time.
		ExpiresAt: now.Add(uc.SessionTTL),
	}
	if err := uc.SessionRepo.CreateSession(session); err != nil {
		// A concurrent create on another instance trips the unique
		// active-session index; join the session that won.
		if errors.Is(err, domain.ErrSessionConflict) {
			return uc.SessionRepo.GetLatestSession(input.SKU, input.UserID)
		}
		return nil, fmt.Errorf("failed to create negotiation session: %w", err)
	}
	return session, nil
}

// evaluateRound runs the evaluator against the current rule snapshot and
// persists the round with a CAS on the round counter. The floor is
// re-derived from the freshly loaded rule on every round, so a session
// never straddles two rule versions in a way that violates it.
func (uc *DefaultNegotiationUsecase) evaluateRound(
	session *domain.NegotiationSession,
	rule *domain.NegotiationRule,
	input *negotiationdto.SubmitOfferInput,
	now time.Time) (*negotiationdto.SubmitOfferOutput, error) {

	started := time.Now()
	round := session.CurrentRound + 1
	result := uc.Engine.Evaluate(pricing.EvalInput{
		Rule:        rule,
		Segment:     session.Segment,
		OfferPrice:  input.OfferPrice,
		Round:       round,
		PrevCounter: session.LastCounter(),
		Language:    input.Language,
	})

	entry := domain.Round{
		RoundNumber:   round,
		OfferPrice:    input.OfferPrice,
		Decision:      result.Decision,
		Justification: result.Justification,
		Timestamp:     now,
	}
	if result.Decision == domain.DecisionCounter || result.Decision == domain.DecisionFinal {
		counter := result.CounterPrice
		entry.CounterPrice = &counter
	}

	session.CurrentRound = round
	session.History = append(session.History, entry)

	switch result.Decision {
	case domain.DecisionAccept:
		finalPrice := result.CounterPrice
		closedAt := now
		session.Status = domain.SessionAccepted
		session.FinalPrice = &finalPrice
		session.ClosedAt = &closedAt
	case domain.DecisionReject:
		closedAt := now
		session.Status = domain.SessionRejected
		session.ClosedAt = &closedAt
	}

	if err := uc.SessionRepo.AppendRound(session, round-1); err != nil {
		return nil, err
	}

	// The token is minted strictly after the round CAS; only the winning
	// submission reaches this point, never a lost race.
	if result.Decision == domain.DecisionAccept {
		token, err := uc.Tokens.Issue(session.SKU, session.ID, result.CounterPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to issue discount token: %w", err)
		}
		session.DiscountToken = token.Token
		if err := uc.SessionRepo.SetDiscountToken(session.ID, token.Token); err != nil {
			return nil, fmt.Errorf("failed to attach discount token: %w", err)
		}
	}

	if uc.Metrics != nil {
		uc.Metrics.OffersTotal.WithLabelValues(session.SKU, string(session.Segment), string(result.Decision)).Inc()
		uc.Metrics.OfferEvaluationDuration.WithLabelValues(string(result.Decision)).Observe(time.Since(started).Seconds())
		if result.Decision == domain.DecisionAccept && rule.BasePrice > 0 {
			discountPct := (rule.BasePrice - result.CounterPrice) / rule.BasePrice * 100
			uc.Metrics.AcceptedDiscountPct.Observe(discountPct)
		}
	}

	if session.IsTerminal() {
		uc.recordOutcomeAsync(session, rule)
	}

	out := &negotiationdto.SubmitOfferOutput{
		SessionID:         session.ID,
		Status:            result.Decision,
		CurrentRound:      session.CurrentRound,
		MaxRounds:         session.MaxRounds,
		ExpiresAt:         session.ExpiresAt,
		Justification:     result.Justification,
		AltPerks:          result.AltPerks,
		BundleSuggestions: result.BundleSuggestions,
		DiscountToken:     session.DiscountToken,
	}
	if result.Decision != domain.DecisionReject {
		counter := result.CounterPrice
		out.CounterPrice = &counter
	}
	return out, nil
}

// replayOutput rebuilds the stored terminal response without touching the
// evaluator.
func (uc *DefaultNegotiationUsecase) replayOutput(session *domain.NegotiationSession, language string) *negotiationdto.SubmitOfferOutput {
	out := &negotiationdto.SubmitOfferOutput{
		SessionID:     session.ID,
		CurrentRound:  session.CurrentRound,
		MaxRounds:     session.MaxRounds,
		ExpiresAt:     session.ExpiresAt,
		DiscountToken: session.DiscountToken,
	}
	switch session.Status {
	case domain.SessionAccepted:
		out.Status = domain.DecisionAccept
		out.CounterPrice = session.FinalPrice
	case domain.SessionRejected:
		out.Status = domain.DecisionReject
	case domain.SessionExpired:
		out.Status = domain.DecisionExpired
		out.Justification = pricing.Justify(domain.DecisionExpired, language, 0)
		return out
	}
	if n := len(session.History); n > 0 {
		out.Justification = session.History[n-1].Justification
		if out.CounterPrice == nil {
			out.CounterPrice = session.History[n-1].CounterPrice
		}
	}
	return out
}

func (uc *DefaultNegotiationUsecase) recordOutcomeAsync(session *domain.NegotiationSession, rule *domain.NegotiationRule) {
	snapshot := *session
	snapshot.History = append([]domain.Round(nil), session.History...)
	go uc.Outcomes.RecordOutcome(&snapshot, rule)
}
