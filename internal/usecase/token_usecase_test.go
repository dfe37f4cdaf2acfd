package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.DiscountToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*domain.DiscountToken)}
}

func (r *fakeTokenRepo) CreateToken(token *domain.DiscountToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *fakeTokenRepo) GetToken(token string) (*domain.DiscountToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	copied := *stored
	return &copied, nil
}

// RedeemToken mirrors the conditional update of the real repository:
// exactly one caller flips the flag, later callers see the loser errors.
func (r *fakeTokenRepo) RedeemToken(token string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return domain.ErrTokenNotFound
	}
	if stored.Redeemed {
		return domain.ErrTokenRedeemed
	}
	if stored.IsExpired(now) {
		return domain.ErrTokenExpired
	}
	stored.Redeemed = true
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for key, token := range r.tokens {
		if token.IsExpired(now) {
			delete(r.tokens, key)
			deleted++
		}
	}
	return deleted, nil
}

func newTokenUsecase(repo *fakeTokenRepo, clock *fixedClock) *DefaultTokenUsecase {
	return NewDefaultTokenUsecase(repo, clock, nil, 24*time.Hour)
}

func TestIssueToken(t *testing.T) {
	repo := newFakeTokenRepo()
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	uc := newTokenUsecase(repo, clock)

	token, err := uc.Issue("PHONE-X1", "sess-1", 41625)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(token.Token) != 21 {
		t.Errorf("expected 21-char token, got %q", token.Token)
	}
	if token.Price != 41625 || token.SKU != "PHONE-X1" || token.SessionID != "sess-1" {
		t.Errorf("unexpected token payload: %+v", token)
	}
	if want := clock.now.Add(24 * time.Hour); !token.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, token.ExpiresAt)
	}
	if _, err := repo.GetToken(token.Token); err != nil {
		t.Errorf("token not persisted: %v", err)
	}
}

func TestValidateToken(t *testing.T) {
	repo := newFakeTokenRepo()
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	uc := newTokenUsecase(repo, clock)

	token, err := uc.Issue("PHONE-X1", "sess-1", 41625)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := uc.Validate(token.Token); err != nil {
		t.Errorf("fresh token must validate, got %v", err)
	}
	if _, err := uc.Validate("missing"); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}

	if err := uc.Redeem(token.Token); err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if _, err := uc.Validate(token.Token); !errors.Is(err, domain.ErrTokenRedeemed) {
		t.Errorf("expected ErrTokenRedeemed, got %v", err)
	}

	fresh, _ := uc.Issue("PHONE-X1", "sess-2", 40000)
	clock.now = clock.now.Add(25 * time.Hour)
	if _, err := uc.Validate(fresh.Token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestRedeemExactlyOnce(t *testing.T) {
	repo := newFakeTokenRepo()
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	uc := newTokenUsecase(repo, clock)

	token, err := uc.Issue("PHONE-X1", "sess-1", 41625)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- uc.Redeem(token.Token)
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrTokenRedeemed):
			losses++
		default:
			t.Errorf("unexpected redeem error: %v", err)
		}
	}
	if wins != 1 || losses != attempts-1 {
		t.Errorf("expected exactly one winner, got %d wins and %d losses", wins, losses)
	}
}

func TestPurgeExpiredTokens(t *testing.T) {
	repo := newFakeTokenRepo()
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	uc := newTokenUsecase(repo, clock)

	if _, err := uc.Issue("PHONE-X1", "sess-1", 41625); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	clock.now = clock.now.Add(25 * time.Hour)
	fresh, err := uc.Issue("PHONE-X1", "sess-2", 40000)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	purged, err := uc.PurgeExpired()
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if purged != 1 {
		t.Errorf("expected 1 purged token, got %d", purged)
	}
	if _, err := repo.GetToken(fresh.Token); err != nil {
		t.Errorf("fresh token must survive the purge: %v", err)
	}
}
