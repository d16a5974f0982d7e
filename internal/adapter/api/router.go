package api

import (
	"log/slog"
	"net/http"

	"github.com/user/build-triage/internal/adapter/api/handler"
	"github.com/user/build-triage/internal/adapter/api/middleware"
	"github.com/user/build-triage/internal/adapter/metrics"
	"github.com/user/build-triage/internal/domain"
	"github.com/user/build-triage/internal/pkg/config"
	"github.com/user/build-triage/internal/usecase"
)

// NewRouter creates and configures the main HTTP router for the triage service.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	triageUC *usecase.TriageBuildUseCase,
	summarizeUC *usecase.SummarizePRUseCase,
	chatUC *usecase.ChatUseCase,
	notifier domain.Notifier,
	deliveries domain.DeliveryRepository,
	m *metrics.TriageMetrics,
) http.Handler {
	mux := http.NewServeMux()

	buildFailureHandler := handler.NewBuildFailureHandler(
		triageUC, notifier, cfg.SlackDefaultChannel, m, logger, cfg.MaxBodySize)
	webhookHandler := handler.NewGitHubWebhookHandler(
		summarizeUC, notifier, deliveries, cfg.SlackDefaultChannel, cfg.DeliveryDedupTTL, m, logger)
	chatHandler := handler.NewChatHandler(chatUC, logger)

	// Middleware
	signature := middleware.Signature(cfg.GitHubWebhookSecret, logger)
	rateLimit := middleware.RateLimit(cfg.WebhookRPS, cfg.WebhookBurst, logger)

	// Routes
	mux.Handle("POST /build/failure", buildFailureHandler)
	mux.Handle("POST /github/webhook", rateLimit(signature(webhookHandler)))
	mux.Handle("POST /llm/chat", chatHandler)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}
