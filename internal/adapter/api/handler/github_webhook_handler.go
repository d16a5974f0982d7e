package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/user/build-triage/internal/adapter/github"
	"github.com/user/build-triage/internal/adapter/metrics"
	"github.com/user/build-triage/internal/adapter/slack"
	"github.com/user/build-triage/internal/domain"
	"github.com/user/build-triage/internal/usecase"
)

// summaryDeadline bounds the detached PR summarization, independent of the
// webhook request lifetime.
const summaryDeadline = 5 * time.Minute

// GitHubWebhookHandler handles GitHub webhook deliveries. Signature
// verification happens in middleware before this handler runs.
type GitHubWebhookHandler struct {
	summarize  *usecase.SummarizePRUseCase
	notifier   domain.Notifier           // optional
	deliveries domain.DeliveryRepository // optional
	channel    string
	dedupTTL   time.Duration
	metrics    *metrics.TriageMetrics // optional
	logger     *slog.Logger
}

// NewGitHubWebhookHandler creates a new GitHubWebhookHandler.
func NewGitHubWebhookHandler(
	summarize *usecase.SummarizePRUseCase,
	notifier domain.Notifier,
	deliveries domain.DeliveryRepository,
	channel string,
	dedupTTL time.Duration,
	m *metrics.TriageMetrics,
	logger *slog.Logger,
) *GitHubWebhookHandler {
	return &GitHubWebhookHandler{
		summarize:  summarize,
		notifier:   notifier,
		deliveries: deliveries,
		channel:    channel,
		dedupTTL:   dedupTTL,
		metrics:    m,
		logger:     logger.With("component", "github_webhook_handler"),
	}
}

// ServeHTTP acknowledges the delivery fast and runs summarization detached.
// GitHub times webhook requests out after ten seconds; the collaborator can
// take far longer than that.
func (h *GitHubWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	event := r.Header.Get(github.EventHeader)
	deliveryID := r.Header.Get(github.DeliveryHeader)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if h.isDuplicate(r.Context(), deliveryID) {
		h.logger.Info("duplicate delivery acknowledged", "delivery_id", deliveryID)
		h.countWebhook(event, "duplicate")
		h.respond(w, http.StatusOK, map[string]string{"status": "duplicate"})
		return
	}

	if event == "ping" {
		h.countWebhook(event, "processed")
		h.respond(w, http.StatusOK, map[string]string{"status": "pong"})
		return
	}
	if event != "pull_request" {
		h.countWebhook(event, "ignored")
		h.respond(w, http.StatusAccepted, map[string]string{"status": "ignored"})
		return
	}

	ev, err := github.ParseWebhook(payload)
	if err != nil {
		h.logger.Warn("failed to parse webhook payload", "error", err)
		http.Error(w, "Bad request: invalid payload", http.StatusBadRequest)
		return
	}

	if ev.PullRequest == nil || ev.PullRequest.Draft || !github.SummarizedActions[ev.Action] {
		h.countWebhook(event, "ignored")
		h.respond(w, http.StatusAccepted, map[string]string{"status": "ignored", "action": ev.Action})
		return
	}

	pr := *ev.PullRequest
	go h.summarizeAndPost(pr)

	h.countWebhook(event, "processed")
	h.respond(w, http.StatusAccepted, map[string]string{"status": "summarizing", "action": ev.Action})
}

func (h *GitHubWebhookHandler) summarizeAndPost(pr domain.PullRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), summaryDeadline)
	defer cancel()

	summary, err := h.summarize.Summarize(ctx, pr)
	if err != nil {
		h.logger.Error("PR summarization failed", "pr", pr.Number, "error", err)
		return
	}

	if h.notifier == nil {
		h.logger.Info("no notifier configured, dropping PR summary", "pr", pr.Number)
		return
	}
	if _, err := h.notifier.PostMessage(ctx, h.channel, slack.FormatPRSummary(pr, summary)); err != nil {
		h.logger.Error("failed to post PR summary", "pr", pr.Number, "error", err)
		h.countNotification("error")
		return
	}
	h.countNotification("ok")
}

// isDuplicate reports whether this delivery was already processed. Dedup is
// best-effort: with no repository, or a failing one, every delivery is
// treated as new.
func (h *GitHubWebhookHandler) isDuplicate(ctx context.Context, deliveryID string) bool {
	if h.deliveries == nil || deliveryID == "" {
		return false
	}
	seen, err := h.deliveries.MarkSeen(ctx, deliveryID, h.dedupTTL)
	if err != nil {
		h.logger.Warn("delivery dedup unavailable", "error", err)
		return false
	}
	return seen
}

func (h *GitHubWebhookHandler) respond(w http.ResponseWriter, code int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func (h *GitHubWebhookHandler) countWebhook(event, outcome string) {
	if h.metrics != nil {
		if event == "" {
			event = "unknown"
		}
		h.metrics.WebhooksTotal.WithLabelValues(event, outcome).Inc()
	}
}

func (h *GitHubWebhookHandler) countNotification(status string) {
	if h.metrics != nil {
		h.metrics.NotificationsTotal.WithLabelValues(status).Inc()
	}
}
