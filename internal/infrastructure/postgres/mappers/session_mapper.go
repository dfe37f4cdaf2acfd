package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/models"
)

func ToGORMSession(session *domain.NegotiationSession) (*models.NegotiationSessionModel, error) {
	history, err := json.Marshal(session.History)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session history: %w", err)
	}
	return &models.NegotiationSessionModel{
		ID:            session.ID,
		SKU:           session.SKU,
		UserID:        session.UserID,
		Segment:       string(session.Segment),
		Quantity:      session.Quantity,
		CurrentRound:  session.CurrentRound,
		MaxRounds:     session.MaxRounds,
		Status:        session.Status,
		HistoryJSON:   string(history),
		CreatedAt:     session.CreatedAt,
		ExpiresAt:     session.ExpiresAt,
		ClosedAt:      session.ClosedAt,
		FinalPrice:    session.FinalPrice,
		DiscountToken: session.DiscountToken,
	}, nil
}

func ToDomainSession(model *models.NegotiationSessionModel) (*domain.NegotiationSession, error) {
	session := &domain.NegotiationSession{
		ID:            model.ID,
		SKU:           model.SKU,
		UserID:        model.UserID,
		Segment:       domain.CustomerSegment(model.Segment),
		Quantity:      model.Quantity,
		CurrentRound:  model.CurrentRound,
		MaxRounds:     model.MaxRounds,
		Status:        model.Status,
		CreatedAt:     model.CreatedAt,
		ExpiresAt:     model.ExpiresAt,
		ClosedAt:      model.ClosedAt,
		FinalPrice:    model.FinalPrice,
		DiscountToken: model.DiscountToken,
	}
	if model.HistoryJSON != "" {
		if err := json.Unmarshal([]byte(model.HistoryJSON), &session.History); err != nil {
			return nil, fmt.Errorf("failed to decode history for session %s: %w", model.ID, err)
		}
	}
	return session, nil
}
