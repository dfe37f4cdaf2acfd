package mappers

import (
	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/models"
)

func ToGORMAnalyticsRecord(record *domain.AnalyticsRecord) *models.AnalyticsRecordModel {
	return &models.AnalyticsRecordModel{
		ID:                    record.ID,
		Date:                  record.Date,
		SKU:                   record.SKU,
		Segment:               string(record.Segment),
		Outcome:               string(record.Outcome),
		Rounds:                record.Rounds,
		DiscountPct:           record.DiscountPct,
		TimeToDecisionSeconds: record.TimeToDecisionSeconds,
		Revenue:               record.Revenue,
		MarginImpact:          record.MarginImpact,
		CreatedAt:             record.CreatedAt,
	}
}
