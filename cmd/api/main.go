package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/leads-enricher/internal/app"
	"github.com/octobees/leads-enricher/internal/auth"
	"github.com/octobees/leads-enricher/internal/config"
	"github.com/octobees/leads-enricher/internal/database"
	"github.com/octobees/leads-enricher/internal/handler"
	"github.com/octobees/leads-enricher/internal/logging"
	"github.com/octobees/leads-enricher/internal/metrics"
	middlewarepkg "github.com/octobees/leads-enricher/internal/middleware"
	"github.com/octobees/leads-enricher/internal/repository"
	"github.com/octobees/leads-enricher/internal/router"
	"github.com/octobees/leads-enricher/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if err := database.Migrate(cfg.DatabaseURL, database.Up); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL,
		database.WithMaxConns(cfg.DBMaxConns),
		database.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	reg := metrics.New()
	pipeline, err := app.NewPipeline(ctx, cfg, logger, reg)
	if err != nil {
		logger.Fatal("failed to build enrichment pipeline", zap.Error(err))
	}
	defer pipeline.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	leadsRepo := repository.NewPGXLeadsRepository(pool)
	companiesRepo := repository.NewPGXCompaniesRepository(pool)
	competitorsRepo := repository.NewPGXCompetitorsRepository(pool)

	authService := service.NewAuthService(cfg.Operator, jwtManager)
	leadService := service.NewLeadService(leadsRepo, companiesRepo, pipeline.Scrape, pipeline.Summarizer, pipeline.Contacts,
		service.WithLeadLogger(logger))
	competitorService := service.NewCompetitorService(companiesRepo, competitorsRepo, pipeline.Scrape, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger, reg))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Scrape:      handler.NewScrapeHandler(pipeline.Scrape),
		Leads:       handler.NewLeadsHandler(leadService),
		Competitors: handler.NewCompetitorsHandler(competitorService),
		Metrics:     reg.Handler(),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("api listening", zap.String("port", cfg.Port))
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
