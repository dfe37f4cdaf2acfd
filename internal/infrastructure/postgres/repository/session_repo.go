package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/mappers"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultSessionRepository struct {
	DB *gorm.DB
}

func NewDefaultSessionRepository(db *gorm.DB) *DefaultSessionRepository {
	return &DefaultSessionRepository{DB: db}
}

// CreateSession inserts a fresh session. The partial unique index allows
// one active session per (sku, user); a duplicate key means another
// instance created it first.
func (r *DefaultSessionRepository) CreateSession(session *domain.NegotiationSession) error {
	model, err := mappers.ToGORMSession(session)
	if err != nil {
		return err
	}
	if err := r.DB.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrSessionConflict
		}
		return err
	}
	return nil
}

func (r *DefaultSessionRepository) GetSessionByID(sessionID string) (*domain.NegotiationSession, error) {
	var model models.NegotiationSessionModel
	if err := r.DB.First(&model, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return mappers.ToDomainSession(&model)
}

func (r *DefaultSessionRepository) GetLatestSession(sku, userID string) (*domain.NegotiationSession, error) {
	var model models.NegotiationSessionModel
	err := r.DB.
		Where("sku = ? AND user_id = ?", sku, userID).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return mappers.ToDomainSession(&model)
}

// AppendRound persists the evaluated round with a compare-and-swap on
// current_round. Two racing submissions for the same session cannot both
// win the same concession step: the loser sees ErrSessionConflict.
func (r *DefaultSessionRepository) AppendRound(session *domain.NegotiationSession, expectedRound int) error {
	history, err := json.Marshal(session.History)
	if err != nil {
		return fmt.Errorf("failed to encode session history: %w", err)
	}

	result := r.DB.Model(&models.NegotiationSessionModel{}).
		Where("id = ? AND current_round = ? AND status = ?", session.ID, expectedRound, domain.SessionActive).
		Updates(map[string]interface{}{
			"current_round":  session.CurrentRound,
			"status":         session.Status,
			"history_json":   string(history),
			"closed_at":      session.ClosedAt,
			"final_price":    session.FinalPrice,
			"discount_token": session.DiscountToken,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.DB.Model(&models.NegotiationSessionModel{}).
			Where("id = ?", session.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrSessionNotFound
		}
		return domain.ErrSessionConflict
	}
	return nil
}

// SetDiscountToken runs outside the round CAS, after the winning
// submission has already closed the session as accepted.
func (r *DefaultSessionRepository) SetDiscountToken(sessionID, token string) error {
	result := r.DB.Model(&models.NegotiationSessionModel{}).
		Where("id = ?", sessionID).
		Update("discount_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *DefaultSessionRepository) CountActiveBySKU(sku string, now time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&models.NegotiationSessionModel{}).
		Where("sku = ? AND status = ? AND expires_at > ?", sku, domain.SessionActive, now).
		Count(&count).Error
	return count, err
}

func (r *DefaultSessionRepository) CountActive(now time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&models.NegotiationSessionModel{}).
		Where("status = ? AND expires_at > ?", domain.SessionActive, now).
		Count(&count).Error
	return count, err
}

func (r *DefaultSessionRepository) FindExpiredSessions(now time.Time, limit int) ([]*domain.NegotiationSession, error) {
	var sessionModels []models.NegotiationSessionModel
	err := r.DB.
		Where("status = ? AND expires_at <= ?", domain.SessionActive, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&sessionModels).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*domain.NegotiationSession, 0, len(sessionModels))
	for i := range sessionModels {
		session, err := mappers.ToDomainSession(&sessionModels[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *DefaultSessionRepository) MarkExpired(sessionID string, closedAt time.Time) error {
	return r.DB.Model(&models.NegotiationSessionModel{}).
		Where("id = ? AND status = ?", sessionID, domain.SessionActive).
		Updates(map[string]interface{}{
			"status":    domain.SessionExpired,
			"closed_at": closedAt,
		}).Error
}
