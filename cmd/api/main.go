package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/smeflowhq/leadbot-platform/internal/api/router"
	"github.com/smeflowhq/leadbot-platform/internal/broadcast"
	"github.com/smeflowhq/leadbot-platform/internal/chat"
	appconfig "github.com/smeflowhq/leadbot-platform/internal/config"
	"github.com/smeflowhq/leadbot-platform/internal/dialogue"
	"github.com/smeflowhq/leadbot-platform/internal/leads"
	"github.com/smeflowhq/leadbot-platform/internal/notify"
	"github.com/smeflowhq/leadbot-platform/internal/observability/metrics"
	"github.com/smeflowhq/leadbot-platform/internal/session"
	"github.com/smeflowhq/leadbot-platform/internal/strategy"
	"github.com/smeflowhq/leadbot-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadbot-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Session store: Redis when configured, in-memory otherwise.
	var sessionStore session.Store
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		sessionStore = session.NewRedisStore(redis.NewClient(opts), nil)
	} else {
		logger.Warn("REDIS_ADDR not set, sessions will not survive restarts")
		sessionStore = session.NewMemoryStore()
	}

	// Leads repository: Postgres when configured, in-memory otherwise.
	var leadsRepo leads.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		leadsRepo = leads.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, leads will not survive restarts")
		leadsRepo = leads.NewInMemoryRepository()
	}

	convMetrics := metrics.NewConversationMetrics(prometheus.DefaultRegisterer)

	// Operator notifications: SendGrid when configured, log-only otherwise.
	var notifier notify.Notifier
	if sg := notify.NewSendGridNotifier(notify.SendGridConfig{
		APIKey:     cfg.SendGridAPIKey,
		FromEmail:  cfg.SendGridFromEmail,
		FromName:   cfg.SendGridFromName,
		Recipients: cfg.NotifyRecipients,
	}, logger); sg != nil {
		notifier = sg
	} else {
		notifier = notify.NewStubNotifier(logger)
	}
	notifyService := notify.NewService(notifier, convMetrics, cfg.NotifyTimeout, logger)

	hub := broadcast.NewHub(logger)
	defer hub.Close()

	engine := dialogue.NewEngine(sessionStore, leadsRepo, notifyService, hub, convMetrics, logger)

	// Strategy briefs: Gemini when configured, canned fallback otherwise.
	var generator strategy.Generator = strategy.FallbackGenerator{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := strategy.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModelID, cfg.StrategyTimeout)
		if err != nil {
			logger.Error("failed to create gemini generator", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()
		generator = strategy.WithFallback{Primary: gemini, Logger: logger}
	}

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		ChatHandler:        chat.NewHandler(engine, logger),
		LeadsHandler:       leads.NewHandler(leadsRepo, logger),
		StrategyHandler:    strategy.NewHandler(generator, logger),
		Hub:                hub,
		MetricsHandler:     promhttp.Handler(),
		AdminJWTSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight operator notifications finish.
	notifyService.Wait()

	logger.Info("server stopped")
}
