package repository

import (
	"errors"
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/mappers"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTokenRepository struct {
	DB *gorm.DB
}

func NewDefaultTokenRepository(db *gorm.DB) *DefaultTokenRepository {
	return &DefaultTokenRepository{DB: db}
}

func (r *DefaultTokenRepository) CreateToken(token *domain.DiscountToken) error {
	return r.DB.Create(mappers.ToGORMToken(token)).Error
}

func (r *DefaultTokenRepository) GetToken(token string) (*domain.DiscountToken, error) {
	var model models.DiscountTokenModel
	if err := r.DB.First(&model, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	return mappers.ToDomainToken(&model), nil
}

// RedeemToken is a single conditional UPDATE: only one concurrent caller
// can flip redeemed, everyone else is told exactly why they lost.
func (r *DefaultTokenRepository) RedeemToken(token string, now time.Time) error {
	result := r.DB.Model(&models.DiscountTokenModel{}).
		Where("token = ? AND redeemed = ? AND expires_at > ?", token, false, now).
		Update("redeemed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var model models.DiscountTokenModel
	if err := r.DB.First(&model, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTokenNotFound
		}
		return err
	}
	if model.Redeemed {
		return domain.ErrTokenRedeemed
	}
	return domain.ErrTokenExpired
}

func (r *DefaultTokenRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.DB.Delete(&models.DiscountTokenModel{}, "expires_at <= ?", now)
	return result.RowsAffected, result.Error
}
