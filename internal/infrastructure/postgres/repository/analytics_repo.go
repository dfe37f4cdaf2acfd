package repository

import (
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/mappers"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAnalyticsRepository struct {
	DB *gorm.DB
}

func NewDefaultAnalyticsRepository(db *gorm.DB) *DefaultAnalyticsRepository {
	return &DefaultAnalyticsRepository{DB: db}
}

func (r *DefaultAnalyticsRepository) AppendRecord(record *domain.AnalyticsRecord) error {
	return r.DB.Create(mappers.ToGORMAnalyticsRecord(record)).Error
}

type rollupScan struct {
	Date              string
	SKU               string
	Segment           string
	Sessions          int64
	Accepted          int64
	AvgDiscountPct    float64
	AvgRounds         float64
	AvgTimeToDecision float64
	Revenue           float64
	MarginImpact      float64
}

func (r *DefaultAnalyticsRepository) filtered(filter domain.AnalyticsFilter) *gorm.DB {
	query := r.DB.Model(&models.AnalyticsRecordModel{})
	if filter.StartDate != "" {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("date <= ?", filter.EndDate)
	}
	if filter.SKU != "" {
		query = query.Where("sku = ?", filter.SKU)
	}
	return query
}

func (r *DefaultAnalyticsRepository) Rollup(filter domain.AnalyticsFilter) ([]*domain.RollupRow, error) {
	var scans []rollupScan
	err := r.filtered(filter).
		Select(`date, sku, segment,
			COUNT(*) AS sessions,
			COUNT(*) FILTER (WHERE outcome = 'ACCEPTED') AS accepted,
			COALESCE(AVG(discount_pct) FILTER (WHERE outcome = 'ACCEPTED'), 0) AS avg_discount_pct,
			COALESCE(AVG(rounds), 0) AS avg_rounds,
			COALESCE(AVG(time_to_decision_seconds), 0) AS avg_time_to_decision,
			COALESCE(SUM(revenue), 0) AS revenue,
			COALESCE(SUM(margin_impact), 0) AS margin_impact`).
		Group("date, sku, segment").
		Order("date ASC, sku ASC, segment ASC").
		Scan(&scans).Error
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.RollupRow, 0, len(scans))
	for _, s := range scans {
		row := &domain.RollupRow{
			Date:              s.Date,
			SKU:               s.SKU,
			Segment:           domain.CustomerSegment(s.Segment),
			Sessions:          s.Sessions,
			Accepted:          s.Accepted,
			AvgDiscountPct:    s.AvgDiscountPct,
			AvgRounds:         s.AvgRounds,
			AvgTimeToDecision: s.AvgTimeToDecision,
			Revenue:           s.Revenue,
			MarginImpact:      s.MarginImpact,
		}
		if s.Sessions > 0 {
			row.ConversionRate = float64(s.Accepted) / float64(s.Sessions)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type totalsScan struct {
	Sessions          int64
	Accepted          int64
	Rejected          int64
	Expired           int64
	AvgDiscountPct    float64
	AvgRounds         float64
	AvgTimeToDecision float64
	Revenue           float64
	MarginImpact      float64
}

func (r *DefaultAnalyticsRepository) Totals(filter domain.AnalyticsFilter) (*domain.RollupTotals, error) {
	var scan totalsScan
	err := r.filtered(filter).
		Select(`COUNT(*) AS sessions,
			COUNT(*) FILTER (WHERE outcome = 'ACCEPTED') AS accepted,
			COUNT(*) FILTER (WHERE outcome = 'REJECTED') AS rejected,
			COUNT(*) FILTER (WHERE outcome = 'EXPIRED') AS expired,
			COALESCE(AVG(discount_pct) FILTER (WHERE outcome = 'ACCEPTED'), 0) AS avg_discount_pct,
			COALESCE(AVG(rounds), 0) AS avg_rounds,
			COALESCE(AVG(time_to_decision_seconds), 0) AS avg_time_to_decision,
			COALESCE(SUM(revenue), 0) AS revenue,
			COALESCE(SUM(margin_impact), 0) AS margin_impact`).
		Scan(&scan).Error
	if err != nil {
		return nil, err
	}

	totals := &domain.RollupTotals{
		Sessions:          scan.Sessions,
		Accepted:          scan.Accepted,
		Rejected:          scan.Rejected,
		Expired:           scan.Expired,
		AvgDiscountPct:    scan.AvgDiscountPct,
		AvgRounds:         scan.AvgRounds,
		AvgTimeToDecision: scan.AvgTimeToDecision,
		Revenue:           scan.Revenue,
		MarginImpact:      scan.MarginImpact,
	}
	if scan.Sessions > 0 {
		totals.ConversionRate = float64(scan.Accepted) / float64(scan.Sessions)
	}
	return totals, nil
}

func (r *DefaultAnalyticsRepository) AcceptedSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&models.AnalyticsRecordModel{}).
		Where("outcome = ? AND created_at >= ?", domain.SessionAccepted, since).
		Count(&count).Error
	return count, err
}

func (r *DefaultAnalyticsRepository) AvgDecisionSecondsSince(since time.Time) (float64, error) {
	var avg float64
	err := r.DB.Model(&models.AnalyticsRecordModel{}).
		Where("created_at >= ?", since).
		Select("COALESCE(AVG(time_to_decision_seconds), 0)").
		Scan(&avg).Error
	return avg, err
}
