package usecase

import (
	"fmt"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

type RuleUsecase interface {
	GetRule(sku string) (*domain.NegotiationRule, error)
	ListRules(enabledOnly bool) ([]*domain.NegotiationRule, error)
	UpsertRule(rule *domain.NegotiationRule) error
	DeleteRule(sku string) error
}

type DefaultRuleUsecase struct {
	RuleRepo    domain.RuleRepository
	SessionRepo domain.SessionRepository
	Clock       domain.Clock
}

func NewDefaultRuleUsecase(ruleRepo domain.RuleRepository, sessionRepo domain.SessionRepository, clock domain.Clock) *DefaultRuleUsecase {
	return &DefaultRuleUsecase{
		RuleRepo:    ruleRepo,
		SessionRepo: sessionRepo,
		Clock:       clock,
	}
}

func (uc *DefaultRuleUsecase) GetRule(sku string) (*domain.NegotiationRule, error) {
	return uc.RuleRepo.GetRuleBySKU(sku)
}

func (uc *DefaultRuleUsecase) ListRules(enabledOnly bool) ([]*domain.NegotiationRule, error) {
	return uc.RuleRepo.ListRules(enabledOnly)
}

// UpsertRule validates before writing. Invariant violations surface here,
// at admin time, never inside a live negotiation.
func (uc *DefaultRuleUsecase) UpsertRule(rule *domain.NegotiationRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	now := uc.Clock.Now()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now
	return uc.RuleRepo.UpsertRule(rule)
}

// DeleteRule refuses to pull a rule out from under an in-flight
// negotiation.
func (uc *DefaultRuleUsecase) DeleteRule(sku string) error {
	active, err := uc.SessionRepo.CountActiveBySKU(sku, uc.Clock.Now())
	if err != nil {
		return fmt.Errorf("failed to count active sessions for %s: %w", sku, err)
	}
	if active > 0 {
		return domain.ErrRuleInUse
	}
	return uc.RuleRepo.DeleteRule(sku)
}
