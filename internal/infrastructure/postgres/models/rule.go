package models

import "time"

type NegotiationRuleModel struct {
	SKU               string `gorm:"primaryKey"`
	BasePrice         float64
	MinPrice          float64
	MaxDiscountPct    float64
	MaxRounds         int
	ClearanceFlag     bool
	StockLevel        int
	SegmentRulesJSON  string `gorm:"type:jsonb"`
	BundlePairsJSON   string `gorm:"type:jsonb"`
	FallbackPerksJSON string `gorm:"type:jsonb"`
	Enabled           bool   `gorm:"index"`
	Priority          int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
