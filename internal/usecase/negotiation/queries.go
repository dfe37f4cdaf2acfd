package negotiation

import (
	"errors"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

// GetSession loads a session by ID, lazily expiring it first when its TTL
// has passed so no caller ever observes an overdue session as active.
func (uc *DefaultNegotiationUsecase) GetSession(sessionID string) (*domain.NegotiationSession, error) {
	session, err := uc.SessionRepo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(uc.Clock.Now()) {
		unlock := uc.locks.Lock(sessionKey(session.SKU, session.UserID))
		defer unlock()

		rule, err := uc.RuleRepo.GetRuleBySKU(session.SKU)
		if err != nil && !errors.Is(err, domain.ErrRuleNotFound) {
			return nil, err
		}
		if err := uc.expireSession(session, rule, uc.Clock.Now()); err != nil {
			return nil, err
		}
	}
	return session, nil
}
