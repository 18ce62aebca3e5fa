package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/brightlms/commission-service/internal/commission"
	"github.com/brightlms/commission-service/internal/config"
	httpdelivery "github.com/brightlms/commission-service/internal/delivery/http"
	"github.com/brightlms/commission-service/internal/delivery/http/handlers"
	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/kafka"
	"github.com/brightlms/commission-service/internal/infrastructure/metrics"
	"github.com/brightlms/commission-service/internal/infrastructure/migrate"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/repository"
	"github.com/brightlms/commission-service/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	setupLogger(cfg)

	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.CommissionDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.CommissionDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Event publisher
	var publisher domain.EventPublisher = kafka.NopEventPublisher{}
	if cfg.KafkaService.Enabled {
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		publisher = kafka.NewCommissionEventPublisher(brokers, cfg.KafkaService.EventsTopic)
	}

	schedule := commission.Schedule{
		BaseRate:          cfg.Commission.BaseRate,
		ElevatedRate:      cfg.Commission.ElevatedRate,
		ElevatedThreshold: cfg.Commission.ElevatedThreshold,
		CMOOverrideRate:   cfg.Commission.CMOOverrideRate,
	}

	// Init repositories
	attributionRepo := repository.NewDefaultAttributionRepository(db)
	userAttributionRepo := repository.NewDefaultUserAttributionRepository(db)
	creatorRepo := repository.NewDefaultCreatorRepository(db)
	cmoRepo := repository.NewDefaultCMORepository(db)
	payoutRepo := repository.NewDefaultPayoutRepository(db)
	discountRepo := repository.NewDefaultDiscountCodeRepository(db)
	rawPaymentRepo := repository.NewDefaultRawPaymentRepository(db)

	// Reconcile All and Recalculate All rewrite the same cache rows, so
	// they share one guard.
	guard := usecase.NewBulkOpGuard()

	// Init usecases
	attributionUC := usecase.NewDefaultAttributionUsecase(
		attributionRepo,
		userAttributionRepo,
		creatorRepo,
		discountRepo,
		publisher,
		schedule,
	)
	orphanUC := usecase.NewDefaultOrphanUsecase(rawPaymentRepo, attributionRepo, attributionUC, guard)
	recalcUC := usecase.NewDefaultRecalcUsecase(attributionRepo, creatorRepo, payoutRepo, schedule, guard)
	payoutUC := usecase.NewDefaultPayoutUsecase(
		payoutRepo,
		publisher,
		cfg.PayoutPolicy.ConfirmationThreshold,
		cfg.PayoutPolicy.ConfirmationTTL,
	)
	creatorUC := usecase.NewDefaultCreatorUsecase(creatorRepo, cmoRepo, discountRepo, schedule)

	commissionMetrics := metrics.NewCommissionMetrics()

	// Metrics listener
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		slog.Info("metrics server started", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatalf("metrics server failed: %v", err)
		}
	}()

	// HTTP server
	app := fiber.New(fiber.Config{AppName: "commission-service"})
	paymentHandler := handlers.NewPaymentHandler(attributionUC, commissionMetrics)
	adminHandler := handlers.NewAdminHandler(orphanUC, recalcUC, payoutUC, creatorUC, commissionMetrics)
	httpdelivery.SetupRoutes(app, paymentHandler, adminHandler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("commission service started", "addr", addr, "env", cfg.Env)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

func setupLogger(cfg *config.CommissionConfig) {
	var level slog.Level
	switch cfg.LogConfig.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogConfig.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
