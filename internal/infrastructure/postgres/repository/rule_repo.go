package repository

import (
	"errors"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/mappers"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultRuleRepository struct {
	DB *gorm.DB
}

func NewDefaultRuleRepository(db *gorm.DB) *DefaultRuleRepository {
	return &DefaultRuleRepository{DB: db}
}

func (r *DefaultRuleRepository) GetRuleBySKU(sku string) (*domain.NegotiationRule, error) {
	var model models.NegotiationRuleModel
	if err := r.DB.First(&model, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRuleNotFound
		}
		return nil, err
	}
	return mappers.ToDomainRule(&model)
}

func (r *DefaultRuleRepository) ListRules(enabledOnly bool) ([]*domain.NegotiationRule, error) {
	query := r.DB.Model(&models.NegotiationRuleModel{}).
		Order("priority DESC, sku ASC")
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var ruleModels []models.NegotiationRuleModel
	if err := query.Find(&ruleModels).Error; err != nil {
		return nil, err
	}

	rules := make([]*domain.NegotiationRule, 0, len(ruleModels))
	for i := range ruleModels {
		rule, err := mappers.ToDomainRule(&ruleModels[i])
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *DefaultRuleRepository) UpsertRule(rule *domain.NegotiationRule) error {
	model, err := mappers.ToGORMRule(rule)
	if err != nil {
		return err
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku"}},
		UpdateAll: true,
	}).Create(model).Error
}

func (r *DefaultRuleRepository) DeleteRule(sku string) error {
	result := r.DB.Delete(&models.NegotiationRuleModel{}, "sku = ?", sku)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}
