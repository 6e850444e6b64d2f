package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/coastwatch/hazard-service/internal/api/http"
	"github.com/coastwatch/hazard-service/internal/api/http/handlers"
	"github.com/coastwatch/hazard-service/internal/auth"
	"github.com/coastwatch/hazard-service/internal/config"
	"github.com/coastwatch/hazard-service/internal/events"
	"github.com/coastwatch/hazard-service/internal/observability"
	"github.com/coastwatch/hazard-service/internal/persistence"
	"github.com/coastwatch/hazard-service/internal/repository"
	"github.com/coastwatch/hazard-service/internal/service"
	"github.com/coastwatch/hazard-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool, redis.ClientHandle(), logger)
	reportRepo := repository.NewHazardReportRepository(pool)
	advisoryRepo := repository.NewAdvisoryRepository(pool)
	summaryRepo := repository.NewAnalystSummaryRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
	})
	reportService := service.NewReportService(reportRepo, dispatcher)
	advisoryService := service.NewAdvisoryService(service.AdvisoryDependencies{
		AdvisoryRepo: advisoryRepo,
		SummaryRepo:  summaryRepo,
		ReportRepo:   reportRepo,
		Dispatcher:   dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.Auth.TrustedOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Reports:        handlers.NewReportsHandler(reportService),
		Advisories:     handlers.NewAdvisoriesHandler(advisoryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
