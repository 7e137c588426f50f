package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/docubot/docubot/internal/api"
	"github.com/docubot/docubot/internal/config"
	"github.com/docubot/docubot/internal/docs"
	"github.com/docubot/docubot/internal/security"
	"github.com/docubot/docubot/internal/service"
	"github.com/docubot/docubot/internal/slack"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize pipeline components
	limiter := security.NewRateLimiter(cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests)
	fetcher := docs.NewFetcher(logger, cfg.Docs.Timeout(), cfg.Docs.PageCharLimit, cfg.Docs.TotalCharLimit)
	webhook := slack.NewWebhook(10 * time.Second)

	askService := service.NewAskService(cfg, logger, limiter, fetcher, webhook, nil)

	// Setup router
	router := api.SetupRouter(askService, logger, api.RouterConfig{
		SigningSecret: cfg.Slack.SigningSecret,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting DocuBot server",
			zap.String("address", cfg.Address()),
			zap.String("docs_base_url", cfg.Docs.BaseURL),
			zap.String("docs_name", cfg.Docs.Name),
			zap.String("llm_api_key", security.MaskValue(cfg.LLM.APIKey)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown. In-flight deferred deliveries are best effort and
	// may be cut off here.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = lvl
	return zapCfg.Build()
}
