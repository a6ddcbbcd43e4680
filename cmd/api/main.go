package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/config"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/handler"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/metrics"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/middleware"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/repository/file"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/repository/memory"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/repository/postgres"
	redisrepo "github.com/dafibh/mortgagefree/mortgagefree-backend/internal/repository/redis"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/repository/storage"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/service"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Mortgage-free Planner API
// @version 1.0
// @description Amortization engine, overpayment comparison and the stored mortgage settings.
// @BasePath /api/v1
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Open the settings store
	settingsRepo, closeRepo, err := openSettingsRepository(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.SettingsStore).Msg("Failed to open settings store")
	}
	defer closeRepo()
	log.Info().Str("store", cfg.SettingsStore).Msg("Settings store ready")

	// Initialize metrics and the WebSocket hub
	m := metrics.New()
	hub := websocket.NewHub()
	m.RegisterGauge("websocket_clients", "Number of connected websocket clients", func() float64 {
		return float64(hub.ClientCount())
	})

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo)
	settingsService.SetEventPublisher(hub)
	settingsService.SetRecorder(m)
	if err := settingsService.Load(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to load settings")
	}

	planService := service.NewPlanService(settingsService, cfg.PenaltyFreePercent)
	planService.SetRecorder(m)
	reportService := service.NewReportService()

	// Initialize handlers
	handlers := handler.Handlers{
		Plan:      handler.NewPlanHandler(planService),
		Dashboard: handler.NewDashboardHandler(planService, reportService),
		Settings:  handler.NewSettingsHandler(settingsService),
		WebSocket: handler.NewWebSocketHandler(hub, cfg.CORSOrigins),
		OpenAPI:   handler.NewOpenAPIHandler(cfg.PublicURL),
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	e.Use(m.Middleware())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	// Register API routes
	handler.RegisterRoutes(e, rateLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openSettingsRepository connects the configured settings store. The returned
// func releases its connections.
func openSettingsRepository(ctx context.Context, cfg *config.Config) (domain.SettingsRepository, func(), error) {
	noop := func() {}

	switch cfg.SettingsStore {
	case config.StoreMemory:
		log.Warn().Msg("Using the in-memory settings store; settings are lost on restart")
		return memory.NewSettingsRepository(), noop, nil

	case config.StorePostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, noop, err
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("failed to ping database: %w", err)
		}
		return postgres.NewSettingsRepository(pool), pool.Close, nil

	case config.StoreRedis:
		client, err := redisrepo.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		return redisrepo.NewSettingsRepository(client), func() { _ = client.Close() }, nil

	case config.StoreS3:
		client, err := storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		repo, err := storage.NewS3SettingsRepository(ctx, client, cfg.S3.Bucket)
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil

	default:
		return file.NewSettingsRepository(cfg.SettingsFile), noop, nil
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
