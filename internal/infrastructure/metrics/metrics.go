package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NegotiationMetrics bundles every prometheus vector the engine reports.
type NegotiationMetrics struct {
	// Offer flow
	OffersTotal             prometheus.CounterVec
	OfferEvaluationDuration prometheus.HistogramVec
	RateLimitedTotal        prometheus.CounterVec

	// Session lifecycle
	SessionsExpiredTotal prometheus.Counter
	ActiveSessions       prometheus.Gauge

	// Accepted deals
	AcceptedDiscountPct prometheus.Histogram

	// Discount tokens
	TokensIssuedTotal   prometheus.Counter
	TokensRedeemedTotal prometheus.Counter
	TokensRejectedTotal prometheus.CounterVec
}

func NewNegotiationMetrics() *NegotiationMetrics {
	return &NegotiationMetrics{
		OffersTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "negotiation_offers_total",
				Help: "Offers evaluated, by SKU, segment and decision",
			},
			[]string{"sku", "segment", "decision"},
		),

		OfferEvaluationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "negotiation_offer_duration_seconds",
				Help:    "End-to-end offer handling time",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"decision"},
		),

		RateLimitedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "negotiation_rate_limited_total",
				Help: "Offers refused by the rate limiter, by SKU",
			},
			[]string{"sku"},
		),

		SessionsExpiredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "negotiation_sessions_expired_total",
				Help: "Sessions transitioned to expired, lazily or by sweep",
			},
		),

		ActiveSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "negotiation_sessions_active",
				Help: "Currently active negotiation sessions",
			},
		),

		AcceptedDiscountPct: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "negotiation_accepted_discount_pct",
				Help:    "Discount given on accepted negotiations, percent of base price",
				Buckets: prometheus.LinearBuckets(0, 2.5, 12),
			},
		),

		TokensIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "negotiation_tokens_issued_total",
				Help: "Discount tokens minted",
			},
		),

		TokensRedeemedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "negotiation_tokens_redeemed_total",
				Help: "Discount tokens redeemed successfully",
			},
		),

		TokensRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "negotiation_tokens_rejected_total",
				Help: "Redemption attempts refused, by reason",
			},
			[]string{"reason"},
		),
	}
}
