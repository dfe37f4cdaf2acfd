package response

import (
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	analyticsdto "github.com/IGIHOZO/egura-negotiation-service/internal/usecase/dto/analytics"
)

type ReportResponse struct {
	Rows                   []RollupRowResponse `json:"rows"`
	Totals                 TotalsResponse      `json:"totals"`
	BaselineConversionRate float64             `json:"baseline_conversion_rate"`
	ConversionLift         float64             `json:"conversion_lift"`
}

type RollupRowResponse struct {
	Date              string                 `json:"date"`
	SKU               string                 `json:"sku"`
	Segment           domain.CustomerSegment `json:"segment"`
	Sessions          int64                  `json:"sessions"`
	Accepted          int64                  `json:"accepted"`
	ConversionRate    float64                `json:"conversion_rate"`
	AvgDiscountPct    float64                `json:"avg_discount_pct"`
	AvgRounds         float64                `json:"avg_rounds"`
	AvgTimeToDecision float64                `json:"avg_time_to_decision_s"`
	Revenue           float64                `json:"revenue"`
	MarginImpact      float64                `json:"margin_impact"`
}

type TotalsResponse struct {
	Sessions          int64   `json:"sessions"`
	Accepted          int64   `json:"accepted"`
	Rejected          int64   `json:"rejected"`
	Expired           int64   `json:"expired"`
	ConversionRate    float64 `json:"conversion_rate"`
	AvgDiscountPct    float64 `json:"avg_discount_pct"`
	AvgRounds         float64 `json:"avg_rounds"`
	AvgTimeToDecision float64 `json:"avg_time_to_decision_s"`
	Revenue           float64 `json:"revenue"`
	MarginImpact      float64 `json:"margin_impact"`
}

type RealtimeResponse struct {
	ActiveSessions     int64     `json:"active_sessions"`
	Accepted24h        int64     `json:"accepted_24h"`
	AvgDecisionSeconds float64   `json:"avg_decision_seconds"`
	GeneratedAt        time.Time `json:"generated_at"`
}

func FromReport(report *analyticsdto.ReportOutput) *ReportResponse {
	resp := &ReportResponse{
		Rows:                   make([]RollupRowResponse, 0, len(report.Rows)),
		BaselineConversionRate: report.BaselineConversionRate,
		ConversionLift:         report.ConversionLift,
	}
	for _, row := range report.Rows {
		resp.Rows = append(resp.Rows, RollupRowResponse{
			Date:              row.Date,
			SKU:               row.SKU,
			Segment:           row.Segment,
			Sessions:          row.Sessions,
			Accepted:          row.Accepted,
			ConversionRate:    row.ConversionRate,
			AvgDiscountPct:    row.AvgDiscountPct,
			AvgRounds:         row.AvgRounds,
			AvgTimeToDecision: row.AvgTimeToDecision,
			Revenue:           row.Revenue,
			MarginImpact:      row.MarginImpact,
		})
	}
	if report.Totals != nil {
		resp.Totals = TotalsResponse{
			Sessions:          report.Totals.Sessions,
			Accepted:          report.Totals.Accepted,
			Rejected:          report.Totals.Rejected,
			Expired:           report.Totals.Expired,
			ConversionRate:    report.Totals.ConversionRate,
			AvgDiscountPct:    report.Totals.AvgDiscountPct,
			AvgRounds:         report.Totals.AvgRounds,
			AvgTimeToDecision: report.Totals.AvgTimeToDecision,
			Revenue:           report.Totals.Revenue,
			MarginImpact:      report.Totals.MarginImpact,
		}
	}
	return resp
}

func FromRealtime(view *domain.RealtimeView) *RealtimeResponse {
	return &RealtimeResponse{
		ActiveSessions:     view.ActiveSessions,
		Accepted24h:        view.Accepted24h,
		AvgDecisionSeconds: view.AvgDecisionSeconds,
		GeneratedAt:        view.GeneratedAt,
	}
}
