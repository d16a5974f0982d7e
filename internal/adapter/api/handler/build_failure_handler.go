package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/user/build-triage/internal/adapter/metrics"
	"github.com/user/build-triage/internal/adapter/slack"
	"github.com/user/build-triage/internal/domain"
	"github.com/user/build-triage/internal/usecase"
)

// BuildFailureHandler handles build-failure notifications from CI.
type BuildFailureHandler struct {
	triage      *usecase.TriageBuildUseCase
	notifier    domain.Notifier // optional
	channel     string
	metrics     *metrics.TriageMetrics // optional
	logger      *slog.Logger
	maxBodySize int64
}

// NewBuildFailureHandler creates a new BuildFailureHandler.
func NewBuildFailureHandler(
	triage *usecase.TriageBuildUseCase,
	notifier domain.Notifier,
	channel string,
	m *metrics.TriageMetrics,
	logger *slog.Logger,
	maxBodySize int64,
) *BuildFailureHandler {
	return &BuildFailureHandler{
		triage:      triage,
		notifier:    notifier,
		channel:     channel,
		metrics:     m,
		logger:      logger.With("component", "build_failure_handler"),
		maxBodySize: maxBodySize,
	}
}

// ServeHTTP runs triage over the submitted log and reports the outcome.
// The response is the full triage outcome; a fallback is still a 200.
func (h *BuildFailureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var failure domain.BuildFailure
	if err := json.NewDecoder(r.Body).Decode(&failure); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "Payload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Bad request: invalid JSON body", http.StatusBadRequest)
		return
	}

	logText := failure.Log
	if logText == "" && failure.LogPath != "" {
		data, err := os.ReadFile(failure.LogPath)
		if err != nil {
			h.logger.Warn("failed to read log file", "path", failure.LogPath, "error", err)
			http.Error(w, "Bad request: log file not readable", http.StatusBadRequest)
			return
		}
		logText = string(data)
	}
	if logText == "" {
		http.Error(w, "Bad request: log or log_path is required", http.StatusBadRequest)
		return
	}

	outcome := h.triage.Triage(r.Context(), logText, failure.Overrides())
	h.notify(r, failure, outcome)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(outcome); err != nil {
		h.logger.Error("failed to encode triage response", "error", err)
	}
}

// notify posts the triage result to chat. Failures are logged, never
// surfaced to the CI caller.
func (h *BuildFailureHandler) notify(r *http.Request, failure domain.BuildFailure, outcome domain.TriageOutcome) {
	if h.notifier == nil || outcome.Status == domain.StatusNoFailures {
		return
	}

	text := slack.FormatBuildFailure(failure, outcome.Result)
	ts, err := h.notifier.PostMessage(r.Context(), h.channel, text)
	if err != nil {
		h.logger.Error("failed to post build failure notification", "error", err)
		h.countNotification("error")
		return
	}
	h.logger.Info("posted build failure notification", "channel", h.channel, "ts", ts)
	h.countNotification("ok")
}

func (h *BuildFailureHandler) countNotification(status string) {
	if h.metrics != nil {
		h.metrics.NotificationsTotal.WithLabelValues(status).Inc()
	}
}
