package domain

import "time"

type SessionRepository interface {
	CreateSession(session *NegotiationSession) error
	GetSessionByID(sessionID string) (*NegotiationSession, error)
	// GetLatestSession returns the most recent session for the pair
	// regardless of status, or ErrSessionNotFound.
	GetLatestSession(sku, userID string) (*NegotiationSession, error)

	// AppendRound persists the session state after a round has been
	// appended to its history. The update is conditional on expectedRound
	// matching the stored current_round; a lost race returns
	// ErrSessionConflict.
	AppendRound(session *NegotiationSession, expectedRound int) error

	// SetDiscountToken attaches the minted token to an accepted session.
	SetDiscountToken(sessionID, token string) error

	// Active counts ignore sessions whose TTL has already passed, even
	// when the sweep has not reclaimed them yet.
	CountActiveBySKU(sku string, now time.Time) (int64, error)
	CountActive(now time.Time) (int64, error)
	// FindExpiredSessions returns active sessions whose expires_at has
	// passed, for the reclamation sweep.
	FindExpiredSessions(now time.Time, limit int) ([]*NegotiationSession, error)
	MarkExpired(sessionID string, closedAt time.Time) error
}
