package negotiation

import (
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/metrics"
	"github.com/IGIHOZO/egura-negotiation-service/internal/usecase/pricing"
	negotiationdto "github.com/IGIHOZO/egura-negotiation-service/internal/usecase/dto/negotiation"
)

type NegotiationUsecase interface {
	SubmitOffer(input *negotiationdto.SubmitOfferInput) (*negotiationdto.SubmitOfferOutput, error)
	GetSession(sessionID string) (*domain.NegotiationSession, error)
	ExpireStaleSessions() (int, error)
}

// TokenIssuer is the slice of the token usecase the session manager
// needs: minting on acceptance.
type TokenIssuer interface {
	Issue(sku, sessionID string, price float64) (*domain.DiscountToken, error)
}

// OutcomeRecorder receives every terminal session exactly once.
type OutcomeRecorder interface {
	RecordOutcome(session *domain.NegotiationSession, rule *domain.NegotiationRule)
}

type DefaultNegotiationUsecase struct {
	RuleRepo    domain.RuleRepository
	SessionRepo domain.SessionRepository
	Tokens      TokenIssuer
	Outcomes    OutcomeRecorder
	RateLimiter domain.RateLimiter
	Customers   domain.CustomerDirectory
	Engine      *pricing.Engine
	Clock       domain.Clock
	Metrics     *metrics.NegotiationMetrics
	SessionTTL  time.Duration

	locks *keyedMutex
}

func NewDefaultNegotiationUsecase(
	ruleRepo domain.RuleRepository,
	sessionRepo domain.SessionRepository,
	tokens TokenIssuer,
	outcomes OutcomeRecorder,
	rateLimiter domain.RateLimiter,
	customers domain.CustomerDirectory,
	engine *pricing.Engine,
	clock domain.Clock,
	negotiationMetrics *metrics.NegotiationMetrics,
	sessionTTL time.Duration) *DefaultNegotiationUsecase {

	return &DefaultNegotiationUsecase{
		RuleRepo:    ruleRepo,
		SessionRepo: sessionRepo,
		Tokens:      tokens,
		Outcomes:    outcomes,
		RateLimiter: rateLimiter,
		Customers:   customers,
		Engine:      engine,
		Clock:       clock,
		Metrics:     negotiationMetrics,
		SessionTTL:  sessionTTL,
		locks:       newKeyedMutex(),
	}
}

func sessionKey(sku, userID string) string {
	return sku + "|" + userID
}
