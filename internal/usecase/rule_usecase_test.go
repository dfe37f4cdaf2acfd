package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type memRuleRepo struct {
	rules map[string]*domain.NegotiationRule
}

func newMemRuleRepo() *memRuleRepo {
	return &memRuleRepo{rules: make(map[string]*domain.NegotiationRule)}
}

func (r *memRuleRepo) GetRuleBySKU(sku string) (*domain.NegotiationRule, error) {
	rule, ok := r.rules[sku]
	if !ok {
		return nil, domain.ErrRuleNotFound
	}
	return rule, nil
}

func (r *memRuleRepo) ListRules(enabledOnly bool) ([]*domain.NegotiationRule, error) {
	var rules []*domain.NegotiationRule
	for _, rule := range r.rules {
		if enabledOnly && !rule.Enabled {
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *memRuleRepo) UpsertRule(rule *domain.NegotiationRule) error {
	r.rules[rule.SKU] = rule
	return nil
}

func (r *memRuleRepo) DeleteRule(sku string) error {
	if _, ok := r.rules[sku]; !ok {
		return domain.ErrRuleNotFound
	}
	delete(r.rules, sku)
	return nil
}

// stubSessionCounter satisfies SessionRepository where only the active
// count matters to the rule lifecycle.
type stubSessionCounter struct {
	active int64
}

func (s *stubSessionCounter) CreateSession(*domain.NegotiationSession) error { return nil }
func (s *stubSessionCounter) GetSessionByID(string) (*domain.NegotiationSession, error) {
	return nil, domain.ErrSessionNotFound
}
func (s *stubSessionCounter) GetLatestSession(string, string) (*domain.NegotiationSession, error) {
	return nil, domain.ErrSessionNotFound
}
func (s *stubSessionCounter) AppendRound(*domain.NegotiationSession, int) error {
	return nil
}
func (s *stubSessionCounter) SetDiscountToken(string, string) error { return nil }
func (s *stubSessionCounter) CountActiveBySKU(string, time.Time) (int64, error) {
	return s.active, nil
}
func (s *stubSessionCounter) CountActive(time.Time) (int64, error) { return s.active, nil }
func (s *stubSessionCounter) FindExpiredSessions(time.Time, int) ([]*domain.NegotiationSession, error) {
	return nil, nil
}
func (s *stubSessionCounter) MarkExpired(string, time.Time) error { return nil }

func validTestRule() *domain.NegotiationRule {
	return &domain.NegotiationRule{
		SKU:            "PHONE-X1",
		BasePrice:      45000,
		MinPrice:       38250,
		MaxDiscountPct: 15,
		MaxRounds:      3,
		Enabled:        true,
	}
}

func TestUpsertRuleStampsTimestamps(t *testing.T) {
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := newMemRuleRepo()
	uc := NewDefaultRuleUsecase(repo, &stubSessionCounter{}, clock)

	rule := validTestRule()
	if err := uc.UpsertRule(rule); err != nil {
		t.Fatalf("UpsertRule: %v", err)
	}
	if !rule.CreatedAt.Equal(clock.now) || !rule.UpdatedAt.Equal(clock.now) {
		t.Errorf("expected both timestamps stamped at %v, got %v / %v", clock.now, rule.CreatedAt, rule.UpdatedAt)
	}

	created := rule.CreatedAt
	clock.now = clock.now.Add(time.Hour)
	if err := uc.UpsertRule(rule); err != nil {
		t.Fatalf("second UpsertRule: %v", err)
	}
	if !rule.CreatedAt.Equal(created) {
		t.Errorf("update must keep CreatedAt, got %v", rule.CreatedAt)
	}
	if !rule.UpdatedAt.Equal(clock.now) {
		t.Errorf("update must advance UpdatedAt, got %v", rule.UpdatedAt)
	}
}

func TestUpsertRuleRejectsInvalid(t *testing.T) {
	uc := NewDefaultRuleUsecase(newMemRuleRepo(), &stubSessionCounter{}, &fixedClock{now: time.Now()})

	rule := validTestRule()
	rule.MinPrice = 50000
	if err := uc.UpsertRule(rule); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestDeleteRuleRefusedWhileInUse(t *testing.T) {
	repo := newMemRuleRepo()
	sessions := &stubSessionCounter{active: 2}
	uc := NewDefaultRuleUsecase(repo, sessions, &fixedClock{now: time.Now()})

	if err := uc.UpsertRule(validTestRule()); err != nil {
		t.Fatalf("UpsertRule: %v", err)
	}
	if err := uc.DeleteRule("PHONE-X1"); !errors.Is(err, domain.ErrRuleInUse) {
		t.Fatalf("expected ErrRuleInUse, got %v", err)
	}

	sessions.active = 0
	if err := uc.DeleteRule("PHONE-X1"); err != nil {
		t.Fatalf("DeleteRule: %v", err)
	}
	if _, err := uc.GetRule("PHONE-X1"); !errors.Is(err, domain.ErrRuleNotFound) {
		t.Errorf("expected rule gone, got %v", err)
	}
}

func TestListRulesEnabledFilter(t *testing.T) {
	repo := newMemRuleRepo()
	uc := NewDefaultRuleUsecase(repo, &stubSessionCounter{}, &fixedClock{now: time.Now()})

	enabled := validTestRule()
	if err := uc.UpsertRule(enabled); err != nil {
		t.Fatalf("UpsertRule: %v", err)
	}
	disabled := validTestRule()
	disabled.SKU = "LAPTOP-B2"
	disabled.Enabled = false
	if err := uc.UpsertRule(disabled); err != nil {
		t.Fatalf("UpsertRule: %v", err)
	}

	all, err := uc.ListRules(false)
	if err != nil {
		t.Fatalf("ListRules: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 rules, got %d", len(all))
	}

	enabledOnly, err := uc.ListRules(true)
	if err != nil {
		t.Fatalf("ListRules enabled: %v", err)
	}
	if len(enabledOnly) != 1 || enabledOnly[0].SKU != "PHONE-X1" {
		t.Errorf("unexpected enabled-only result: %+v", enabledOnly)
	}
}
