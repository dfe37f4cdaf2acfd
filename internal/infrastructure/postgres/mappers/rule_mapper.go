package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/models"
)

func ToGORMRule(rule *domain.NegotiationRule) (*models.NegotiationRuleModel, error) {
	segmentRules, err := json.Marshal(rule.SegmentRules)
	if err != nil {
		return nil, fmt.Errorf("failed to encode segment rules: %w", err)
	}
	bundles, err := json.Marshal(rule.BundlePairs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bundle pairs: %w", err)
	}
	perks, err := json.Marshal(rule.FallbackPerks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fallback perks: %w", err)
	}

	return &models.NegotiationRuleModel{
		SKU:               rule.SKU,
		BasePrice:         rule.BasePrice,
		MinPrice:          rule.MinPrice,
		MaxDiscountPct:    rule.MaxDiscountPct,
		MaxRounds:         rule.MaxRounds,
		ClearanceFlag:     rule.ClearanceFlag,
		StockLevel:        rule.StockLevel,
		SegmentRulesJSON:  string(segmentRules),
		BundlePairsJSON:   string(bundles),
		FallbackPerksJSON: string(perks),
		Enabled:           rule.Enabled,
		Priority:          rule.Priority,
		CreatedAt:         rule.CreatedAt,
		UpdatedAt:         rule.UpdatedAt,
	}, nil
}

func ToDomainRule(model *models.NegotiationRuleModel) (*domain.NegotiationRule, error) {
	rule := &domain.NegotiationRule{
		SKU:            model.SKU,
		BasePrice:      model.BasePrice,
		MinPrice:       model.MinPrice,
		MaxDiscountPct: model.MaxDiscountPct,
		MaxRounds:      model.MaxRounds,
		ClearanceFlag:  model.ClearanceFlag,
		StockLevel:     model.StockLevel,
		Enabled:        model.Enabled,
		Priority:       model.Priority,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
	if model.SegmentRulesJSON != "" {
		if err := json.Unmarshal([]byte(model.SegmentRulesJSON), &rule.SegmentRules); err != nil {
			return nil, fmt.Errorf("failed to decode segment rules for %s: %w", model.SKU, err)
		}
	}
	if model.BundlePairsJSON != "" {
		if err := json.Unmarshal([]byte(model.BundlePairsJSON), &rule.BundlePairs); err != nil {
			return nil, fmt.Errorf("failed to decode bundle pairs for %s: %w", model.SKU, err)
		}
	}
	if model.FallbackPerksJSON != "" {
		if err := json.Unmarshal([]byte(model.FallbackPerksJSON), &rule.FallbackPerks); err != nil {
			return nil, fmt.Errorf("failed to decode fallback perks for %s: %w", model.SKU, err)
		}
	}
	return rule, nil
}
