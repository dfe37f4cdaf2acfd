package usecase

import (
	"fmt"
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/metrics"
	"github.com/jaevor/go-nanoid"
)

type TokenUsecase interface {
	Issue(sku, sessionID string, price float64) (*domain.DiscountToken, error)
	Validate(token string) (*domain.DiscountToken, error)
	Redeem(token string) error
	PurgeExpired() (int64, error)
}

type DefaultTokenUsecase struct {
	TokenRepo domain.TokenRepository
	Clock     domain.Clock
	Metrics   *metrics.NegotiationMetrics
	TokenTTL  time.Duration
}

func NewDefaultTokenUsecase(tokenRepo domain.TokenRepository, clock domain.Clock, negotiationMetrics *metrics.NegotiationMetrics, tokenTTL time.Duration) *DefaultTokenUsecase {
	return &DefaultTokenUsecase{
		TokenRepo: tokenRepo,
		Clock:     clock,
		Metrics:   negotiationMetrics,
		TokenTTL:  tokenTTL,
	}
}

// Issue mints a single-use token bound to the accepted price. The token
// carries its own short expiry, independent of the session TTL.
func (uc *DefaultTokenUsecase) Issue(sku, sessionID string, price float64) (*domain.DiscountToken, error) {
	idGenerator, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}
	now := uc.Clock.Now()
	token := &domain.DiscountToken{
		Token:     idGenerator(),
		SKU:       sku,
		SessionID: sessionID,
		Price:     price,
		IssuedAt:  now,
		ExpiresAt: now.Add(uc.TokenTTL),
	}
	if err := uc.TokenRepo.CreateToken(token); err != nil {
		return nil, fmt.Errorf("failed to store discount token: %w", err)
	}
	if uc.Metrics != nil {
		uc.Metrics.TokensIssuedTotal.Inc()
	}
	return token, nil
}

// Validate answers existence, expiry and redemption state for the
// checkout collaborator without consuming the token.
func (uc *DefaultTokenUsecase) Validate(token string) (*domain.DiscountToken, error) {
	stored, err := uc.TokenRepo.GetToken(token)
	if err != nil {
		return nil, err
	}
	if stored.Redeemed {
		return stored, domain.ErrTokenRedeemed
	}
	if stored.IsExpired(uc.Clock.Now()) {
		return stored, domain.ErrTokenExpired
	}
	return stored, nil
}

// Redeem consumes the token exactly once. Concurrent attempts are settled
// by the repository's conditional update: one wins, the rest fail.
func (uc *DefaultTokenUsecase) Redeem(token string) error {
	err := uc.TokenRepo.RedeemToken(token, uc.Clock.Now())
	if uc.Metrics != nil {
		switch err {
		case nil:
			uc.Metrics.TokensRedeemedTotal.Inc()
		case domain.ErrTokenRedeemed:
			uc.Metrics.TokensRejectedTotal.WithLabelValues("already_redeemed").Inc()
		case domain.ErrTokenExpired:
			uc.Metrics.TokensRejectedTotal.WithLabelValues("expired").Inc()
		case domain.ErrTokenNotFound:
			uc.Metrics.TokensRejectedTotal.WithLabelValues("not_found").Inc()
		}
	}
	return err
}

// PurgeExpired is the token-side reclamation sweep.
func (uc *DefaultTokenUsecase) PurgeExpired() (int64, error) {
	return uc.TokenRepo.DeleteExpired(uc.Clock.Now())
}
