package analyticsdto

import "github.com/IGIHOZO/egura-negotiation-service/internal/domain"

type ReportOutput struct {
	Rows   []*domain.RollupRow
	Totals *domain.RollupTotals
	// BaselineConversionRate is the non-negotiated conversion baseline
	// the lift is computed against; supplied externally.
	BaselineConversionRate float64
	ConversionLift         float64
}
