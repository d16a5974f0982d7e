package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/user/build-triage/internal/adapter/api"
	"github.com/user/build-triage/internal/adapter/api/middleware"
	"github.com/user/build-triage/internal/adapter/github"
	"github.com/user/build-triage/internal/adapter/llm"
	"github.com/user/build-triage/internal/adapter/metrics"
	"github.com/user/build-triage/internal/adapter/repository/postgres"
	redisrepo "github.com/user/build-triage/internal/adapter/repository/redis"
	"github.com/user/build-triage/internal/adapter/slack"
	"github.com/user/build-triage/internal/analysis"
	"github.com/user/build-triage/internal/domain"
	"github.com/user/build-triage/internal/pkg/config"
	"github.com/user/build-triage/internal/pkg/logger"
	"github.com/user/build-triage/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.NewTriageMetrics()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Collaborator Backend ---
	generator, err := llm.New(cfg.LLMBackend, llm.Options{
		Model:         cfg.LLMModel,
		OllamaURL:     cfg.OllamaURL,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
	})
	if err != nil {
		logger.Error("failed to initialize llm backend", "error", err)
		os.Exit(1)
	}
	logger.Info("llm backend ready", "backend", generator.Backend(), "model", generator.Model())

	notifier := slack.NewClient("", cfg.SlackBotToken, logger)
	prFetcher := github.NewClient(cfg.GitHubToken, logger)

	// --- Optional Persistence ---
	var usageRepo domain.UsageRepository
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo, err := postgres.NewUsageRepository(db, logger)
		if err != nil {
			logger.Error("failed to initialize usage repository", "error", err)
			os.Exit(1)
		}
		usageRepo = repo
		logger.Info("usage tracking enabled")
	}

	var deliveryRepo domain.DeliveryRepository
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("could not connect to redis, webhook dedup degraded", "error", err)
		}
		defer redisClient.Close()
		deliveryRepo = redisrepo.NewDeliveryRepository(redisClient, logger)
		logger.Info("webhook delivery dedup enabled")
	}

	// --- Use Cases ---
	analyzer := analysis.New(analysis.Options{
		Window:      cfg.ClusterWindow,
		Context:     cfg.ContextLines,
		MaxSections: cfg.MaxSections,
		MaxChars:    cfg.MaxPromptChars,
	})
	triageUC := usecase.NewTriageBuildUseCase(analyzer, generator, usageRepo, m, logger, cfg.GenerateTimeout)
	summarizeUC := usecase.NewSummarizePRUseCase(generator, prFetcher, usageRepo, logger, cfg.GenerateTimeout)
	chatUC := usecase.NewChatUseCase(generator, usageRepo, logger, cfg.GenerateTimeout)

	// --- Admin and Metrics Server ---
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())

	var usageReportUC *usecase.UsageReportUseCase
	if usageRepo != nil {
		usageReportUC = usecase.NewUsageReportUseCase(usageRepo, logger)
	}
	adminMux.Handle("/", api.NewAdminRouter(usageReportUC, logger))

	adminServer := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: adminMux,
	}

	go func() {
		logger.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Triage Server ---
	router := api.NewRouter(cfg, logger, triageUC, summarizeUC, chatUC, notifier, deliveryRepo, m)
	server := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: middleware.Logging(logger)(router),
		// Triage requests hold the connection for the full collaborator
		// call, so the write timeout must exceed the generate timeout.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.GenerateTimeout + time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting triage server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("triage server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("triage server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
