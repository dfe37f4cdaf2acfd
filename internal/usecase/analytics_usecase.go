package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	publisher "github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/kafka"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/metrics"
	analyticsdto "github.com/IGIHOZO/egura-negotiation-service/internal/usecase/dto/analytics"
	"github.com/google/uuid"
)

type AnalyticsUsecase interface {
	RecordOutcome(session *domain.NegotiationSession, rule *domain.NegotiationRule)
	GetReport(filter domain.AnalyticsFilter, baselineRate float64) (*analyticsdto.ReportOutput, error)
	GetRealtime() (*domain.RealtimeView, error)
	ExportCSV(filter domain.AnalyticsFilter) ([]byte, error)
}

// NegotiationEventPublisher is the outbound stream of terminal events for
// the storefront's BI pipeline.
type NegotiationEventPublisher interface {
	PublishNegotiation(event publisher.NegotiationEvent) error
}

type DefaultAnalyticsUsecase struct {
	AnalyticsRepo domain.AnalyticsRepository
	SessionRepo   domain.SessionRepository
	Publisher     NegotiationEventPublisher
	Clock         domain.Clock
	Metrics       *metrics.NegotiationMetrics
}

func NewDefaultAnalyticsUsecase(
	analyticsRepo domain.AnalyticsRepository,
	sessionRepo domain.SessionRepository,
	eventPublisher NegotiationEventPublisher,
	clock domain.Clock,
	negotiationMetrics *metrics.NegotiationMetrics) *DefaultAnalyticsUsecase {

	return &DefaultAnalyticsUsecase{
		AnalyticsRepo: analyticsRepo,
		SessionRepo:   sessionRepo,
		Publisher:     eventPublisher,
		Clock:         clock,
		Metrics:       negotiationMetrics,
	}
}

// RecordOutcome converts one terminal session into its append-only
// analytics record and emits the matching kafka event. Called off the
// offer path; failures are logged, never propagated to the shopper.
func (uc *DefaultAnalyticsUsecase) RecordOutcome(session *domain.NegotiationSession, rule *domain.NegotiationRule) {
	closedAt := uc.Clock.Now()
	if session.ClosedAt != nil {
		closedAt = *session.ClosedAt
	}

	record := &domain.AnalyticsRecord{
		ID:                    uuid.New().String(),
		Date:                  closedAt.Format("2006-01-02"),
		SKU:                   session.SKU,
		Segment:               session.Segment,
		Outcome:               session.Status,
		Rounds:                session.CurrentRound,
		TimeToDecisionSeconds: closedAt.Sub(session.CreatedAt).Seconds(),
		CreatedAt:             closedAt,
	}
	if session.Status == domain.SessionAccepted && session.FinalPrice != nil {
		finalPrice := *session.FinalPrice
		quantity := float64(session.Quantity)
		if quantity <= 0 {
			quantity = 1
		}
		record.Revenue = finalPrice * quantity
		if rule != nil && rule.BasePrice > 0 {
			record.DiscountPct = (rule.BasePrice - finalPrice) / rule.BasePrice * 100
			record.MarginImpact = (finalPrice - rule.BasePrice) * quantity
		}
	}

	if err := uc.AnalyticsRepo.AppendRecord(record); err != nil {
		slog.Error("failed to append analytics record",
			"session_id", session.ID, "error", err.Error())
	}

	if uc.Publisher != nil {
		event := publisher.NegotiationEvent{
			SessionID:   session.ID,
			SKU:         session.SKU,
			UserID:      session.UserID,
			Segment:     string(session.Segment),
			Outcome:     string(session.Status),
			Rounds:      session.CurrentRound,
			DiscountPct: record.DiscountPct,
			Revenue:     record.Revenue,
			OccurredAt:  closedAt,
		}
		if session.FinalPrice != nil {
			event.FinalPrice = *session.FinalPrice
		}
		if err := uc.Publisher.PublishNegotiation(event); err != nil {
			slog.Error("failed to publish negotiation event",
				"session_id", session.ID, "error", err.Error())
		}
	}
}

// GetReport returns the date-ranged rollup plus range totals and the
// conversion lift against the externally supplied baseline.
func (uc *DefaultAnalyticsUsecase) GetReport(filter domain.AnalyticsFilter, baselineRate float64) (*analyticsdto.ReportOutput, error) {
	rows, err := uc.AnalyticsRepo.Rollup(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build rollup: %w", err)
	}
	totals, err := uc.AnalyticsRepo.Totals(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build totals: %w", err)
	}

	out := &analyticsdto.ReportOutput{
		Rows:                   rows,
		Totals:                 totals,
		BaselineConversionRate: baselineRate,
	}
	if baselineRate > 0 {
		out.ConversionLift = totals.ConversionRate - baselineRate
	}
	return out, nil
}

func (uc *DefaultAnalyticsUsecase) GetRealtime() (*domain.RealtimeView, error) {
	now := uc.Clock.Now()
	since := now.Add(-24 * time.Hour)

	active, err := uc.SessionRepo.CountActive(now)
	if err != nil {
		return nil, fmt.Errorf("failed to count active sessions: %w", err)
	}
	accepted, err := uc.AnalyticsRepo.AcceptedSince(since)
	if err != nil {
		return nil, fmt.Errorf("failed to count accepted sessions: %w", err)
	}
	avgSeconds, err := uc.AnalyticsRepo.AvgDecisionSecondsSince(since)
	if err != nil {
		return nil, fmt.Errorf("failed to compute decision latency: %w", err)
	}

	return &domain.RealtimeView{
		ActiveSessions:     active,
		Accepted24h:        accepted,
		AvgDecisionSeconds: avgSeconds,
		GeneratedAt:        now,
	}, nil
}

// ExportCSV renders the rollup with the same filters as the report.
func (uc *DefaultAnalyticsUsecase) ExportCSV(filter domain.AnalyticsFilter) ([]byte, error) {
	rows, err := uc.AnalyticsRepo.Rollup(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build rollup: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"date", "sku", "segment", "sessions", "accepted", "conversion_rate",
		"avg_discount_pct", "avg_rounds", "avg_time_to_decision_s", "revenue", "margin_impact",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		rec := []string{
			row.Date,
			row.SKU,
			string(row.Segment),
			strconv.FormatInt(row.Sessions, 10),
			strconv.FormatInt(row.Accepted, 10),
			strconv.FormatFloat(row.ConversionRate, 'f', 4, 64),
			strconv.FormatFloat(row.AvgDiscountPct, 'f', 2, 64),
			strconv.FormatFloat(row.AvgRounds, 'f', 2, 64),
			strconv.FormatFloat(row.AvgTimeToDecision, 'f', 1, 64),
			strconv.FormatFloat(row.Revenue, 'f', 2, 64),
			strconv.FormatFloat(row.MarginImpact, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
