package models

import "time"

type AnalyticsRecordModel struct {
	ID                    string `gorm:"primaryKey;type:uuid"`
	Date                  string `gorm:"index:idx_analytics_date_sku"`
	SKU                   string `gorm:"index:idx_analytics_date_sku"`
	Segment               string
	Outcome               string
	Rounds                int
	DiscountPct           float64
	TimeToDecisionSeconds float64
	Revenue               float64
	MarginImpact          float64
	CreatedAt             time.Time `gorm:"index"`
}
