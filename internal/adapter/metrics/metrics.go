package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TriageMetrics holds all Prometheus metrics for the triage service.
type TriageMetrics struct {
	AnalysesTotal      *prometheus.CounterVec
	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestSeconds  prometheus.Histogram
	FallbacksTotal     *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	WebhooksTotal      *prometheus.CounterVec
}

// NewTriageMetrics initializes and registers the Prometheus metrics.
func NewTriageMetrics() *TriageMetrics {
	return &TriageMetrics{
		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "build_triage",
			Subsystem: "pipeline",
			Name:      "analyses_total",
			Help:      "Total number of triage runs by terminal status.",
		}, []string{"status"}), // status: analyzed, fallback, no_failures, input_error
		LLMRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "build_triage",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Total number of collaborator calls by backend and status.",
		}, []string{"backend", "status"}), // status: ok, error, empty
		LLMRequestSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "build_triage",
			Subsystem: "llm",
			Name:      "request_seconds",
			Help:      "Collaborator call latency in seconds.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 180},
		}),
		FallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "build_triage",
			Subsystem: "pipeline",
			Name:      "fallbacks_total",
			Help:      "Total number of deterministic fallbacks by reason class.",
		}, []string{"reason"}), // reason: generate_error, empty_response, invalid_response
		NotificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "build_triage",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Total number of chat notifications by status.",
		}, []string{"status"}), // status: ok, error
		WebhooksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "build_triage",
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Total number of received webhook events by type and outcome.",
		}, []string{"event", "outcome"}), // outcome: processed, ignored, duplicate, invalid_signature
	}
}
