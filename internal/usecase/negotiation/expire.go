package negotiation

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

// expireSession transitions an overdue active session to expired and
// hands it to the analytics recorder. Callers hold the session key lock.
func (uc *DefaultNegotiationUsecase) expireSession(session *domain.NegotiationSession, rule *domain.NegotiationRule, now time.Time) error {
	if err := uc.SessionRepo.MarkExpired(session.ID, now); err != nil {
		return fmt.Errorf("failed to expire session %s: %w", session.ID, err)
	}
	closedAt := now
	session.Status = domain.SessionExpired
	session.ClosedAt = &closedAt

	if uc.Metrics != nil {
		uc.Metrics.SessionsExpiredTotal.Inc()
	}
	uc.recordOutcomeAsync(session, rule)
	return nil
}

// ExpireStaleSessions is the periodic reclamation sweep. Correctness does
// not depend on it: expiry is detected lazily on every session touch, the
// sweep just converts abandoned sessions into analytics records without
// waiting for the next touch.
func (uc *DefaultNegotiationUsecase) ExpireStaleSessions() (int, error) {
	now := uc.Clock.Now()
	sessions, err := uc.SessionRepo.FindExpiredSessions(now, 100)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired sessions: %w", err)
	}

	expired := 0
	for _, session := range sessions {
		unlock := uc.locks.Lock(sessionKey(session.SKU, session.UserID))

		rule, err := uc.RuleRepo.GetRuleBySKU(session.SKU)
		if err != nil && !errors.Is(err, domain.ErrRuleNotFound) {
			unlock()
			continue
		}
		if err := uc.expireSession(session, rule, now); err != nil {
			slog.Error("session sweep failed", "session_id", session.ID, "error", err.Error())
			unlock()
			continue
		}
		expired++
		unlock()
	}
	return expired, nil
}
