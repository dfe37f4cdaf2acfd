package mappers

import (
	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/models"
)

func ToGORMToken(token *domain.DiscountToken) *models.DiscountTokenModel {
	return &models.DiscountTokenModel{
		Token:     token.Token,
		SKU:       token.SKU,
		SessionID: token.SessionID,
		Price:     token.Price,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt,
		Redeemed:  token.Redeemed,
	}
}

func ToDomainToken(model *models.DiscountTokenModel) *domain.DiscountToken {
	return &domain.DiscountToken{
		Token:     model.Token,
		SKU:       model.SKU,
		SessionID: model.SessionID,
		Price:     model.Price,
		IssuedAt:  model.IssuedAt,
		ExpiresAt: model.ExpiresAt,
		Redeemed:  model.Redeemed,
	}
}
