package domain

import "time"

type AnalyticsRepository interface {
	AppendRecord(record *AnalyticsRecord) error
	Rollup(filter AnalyticsFilter) ([]*RollupRow, error)
	Totals(filter AnalyticsFilter) (*RollupTotals, error)
	AcceptedSince(since time.Time) (int64, error)
	AvgDecisionSecondsSince(since time.Time) (float64, error)
}
