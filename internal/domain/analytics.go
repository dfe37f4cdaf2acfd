package domain

import "time"

// AnalyticsRecord is the append-only trace of one terminal session
// transition. Sessions are discarded after conversion; these records are
// what the admin reporting queries read.
type AnalyticsRecord struct {
	ID                    string
	Date                  string // YYYY-MM-DD
	SKU                   string
	Segment               CustomerSegment
	Outcome               SessionStatus
	Rounds                int
	DiscountPct           float64
	TimeToDecisionSeconds float64
	Revenue               float64
	MarginImpact          float64
	CreatedAt             time.Time
}

// RollupRow is one grouped aggregate line of the date-ranged report.
type RollupRow struct {
	Date              string
	SKU               string
	Segment           CustomerSegment
	Sessions          int64
	Accepted          int64
	ConversionRate    float64
	AvgDiscountPct    float64
	AvgRounds         float64
	AvgTimeToDecision float64
	Revenue           float64
	MarginImpact      float64
}

// RollupTotals aggregates the whole filtered range.
type RollupTotals struct {
	Sessions          int64
	Accepted          int64
	Rejected          int64
	Expired           int64
	ConversionRate    float64
	AvgDiscountPct    float64
	AvgRounds         float64
	AvgTimeToDecision float64
	Revenue           float64
	MarginImpact      float64
}

// RealtimeView is the last-24h operational snapshot.
type RealtimeView struct {
	ActiveSessions     int64
	Accepted24h        int64
	AvgDecisionSeconds float64
	GeneratedAt        time.Time
}

type AnalyticsFilter struct {
	StartDate string
	EndDate   string
	SKU       string
}
