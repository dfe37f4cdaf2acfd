package main

import (
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/IGIHOZO/egura-negotiation-service/internal/config"
	httpdelivery "github.com/IGIHOZO/egura-negotiation-service/internal/delivery/http"
	"github.com/IGIHOZO/egura-negotiation-service/internal/delivery/http/handlers"
	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/kafka"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/metrics"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/migrate"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/repository"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/ratelimit"
	"github.com/IGIHOZO/egura-negotiation-service/internal/usecase"
	"github.com/IGIHOZO/egura-negotiation-service/internal/usecase/negotiation"
	"github.com/IGIHOZO/egura-negotiation-service/internal/usecase/pricing"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.NegotiationDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.NegotiationDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repositories
	ruleRepo := repository.NewDefaultRuleRepository(db)
	sessionRepo := repository.NewDefaultSessionRepository(db)
	tokenRepo := repository.NewDefaultTokenRepository(db)
	analyticsRepo := repository.NewDefaultAnalyticsRepository(db)

	negotiationMetrics := metrics.NewNegotiationMetrics()
	clock := domain.RealClock{}
	limiter := ratelimit.NewSlidingWindowLimiter(cfg.Negotiation.OfferLimit, cfg.Negotiation.OfferWindow, clock)

	// Kafka publisher for the BI pipeline; analytics degrades to
	// DB-only recording when disabled.
	var eventPublisher usecase.NegotiationEventPublisher
	if cfg.KafkaService.Enabled {
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		kafkaPublisher := kafka.NewKafkaPublisher(brokers, kafka.NegotiationTopic)
		defer kafkaPublisher.Close()
		eventPublisher = kafkaPublisher
	}

	// Init token usecase
	tokenUsecase := usecase.NewDefaultTokenUsecase(tokenRepo, clock, negotiationMetrics, cfg.Negotiation.TokenTTL)
	// Init analytics usecase
	analyticsUsecase := usecase.NewDefaultAnalyticsUsecase(analyticsRepo, sessionRepo, eventPublisher, clock, negotiationMetrics)
	// Init rule usecase
	ruleUsecase := usecase.NewDefaultRuleUsecase(ruleRepo, sessionRepo, clock)
	// Init negotiation usecase
	engine := pricing.NewEngine(cfg.Negotiation.OverstockThreshold, cfg.Negotiation.ClearanceBonusPct, cfg.Negotiation.MinCounterStepPct)
	negotiationUsecase := negotiation.NewDefaultNegotiationUsecase(
		ruleRepo,
		sessionRepo,
		tokenUsecase,
		analyticsUsecase,
		limiter,
		&domain.StaticCustomerDirectory{},
		engine,
		clock,
		negotiationMetrics,
		cfg.Negotiation.SessionTTL,
	)

	router := httpdelivery.NewRouter(
		handlers.NewNegotiationHandler(negotiationUsecase),
		handlers.NewRuleHandler(ruleUsecase),
		handlers.NewTokenHandler(tokenUsecase),
		handlers.NewAnalyticsHandler(analyticsUsecase, cfg.Negotiation.BaselineConversion),
	)

	// Expiry sweep: lazy expiry on read already protects correctness,
	// the sweep reclaims sessions nobody touches again.
	go func() {
		ticker := time.NewTicker(cfg.Negotiation.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			expired, err := negotiationUsecase.ExpireStaleSessions()
			if err != nil {
				slog.Error("session expiry sweep failed", "error", err.Error())
				continue
			}
			if expired > 0 {
				slog.Info("expired stale sessions", "count", expired)
			}
			if active, err := sessionRepo.CountActive(clock.Now()); err == nil {
				negotiationMetrics.ActiveSessions.Set(float64(active))
			}
			limiter.Prune()
		}
	}()

	// Token purge runs on a slower cadence than the session sweep.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			purged, err := tokenUsecase.PurgeExpired()
			if err != nil {
				slog.Error("token purge failed", "error", err.Error())
				continue
			}
			if purged > 0 {
				slog.Info("purged expired tokens", "count", purged)
			}
		}
	}()

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("negotiation service listening", "addr", addr, "env", cfg.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("http server stopped: %v", err)
	}
}
