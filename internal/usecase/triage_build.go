package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/user/build-triage/internal/adapter/metrics"
	"github.com/user/build-triage/internal/analysis"
	"github.com/user/build-triage/internal/domain"
)

// TriageBuildUseCase runs the full triage pipeline for one build log: the
// deterministic analysis pass, a single collaborator call, response
// validation, and the deterministic fallback when the collaborator cannot
// deliver a valid result.
type TriageBuildUseCase struct {
	analyzer  *analysis.Analyzer
	generator domain.Generator
	usage     domain.UsageRepository // optional
	metrics   *metrics.TriageMetrics // optional
	logger    *slog.Logger
	timeout   time.Duration
}

// NewTriageBuildUseCase creates a new TriageBuildUseCase. The usage
// repository and metrics may be nil; recording is skipped in that case.
func NewTriageBuildUseCase(
	analyzer *analysis.Analyzer,
	generator domain.Generator,
	usage domain.UsageRepository,
	m *metrics.TriageMetrics,
	logger *slog.Logger,
	timeout time.Duration,
) *TriageBuildUseCase {
	return &TriageBuildUseCase{
		analyzer:  analyzer,
		generator: generator,
		usage:     usage,
		metrics:   m,
		logger:    logger.With("component", "triage_build"),
		timeout:   timeout,
	}
}

// Triage analyzes the raw log text and returns the outcome. It never returns
// an error for collaborator failures; those degrade to a fallback outcome.
// A log with zero flagged lines is a valid no_failures terminal state.
func (uc *TriageBuildUseCase) Triage(ctx context.Context, logText string, overrides map[string]string) domain.TriageOutcome {
	art := uc.analyzer.Run(logText, overrides)
	meta := art.Metadata(uc.generator.Backend(), uc.generator.Model())

	if len(art.ErrorLines) == 0 {
		uc.logger.Info("no failure lines detected, skipping collaborator")
		uc.countAnalysis(string(domain.StatusNoFailures))
		return domain.TriageOutcome{
			Status:   domain.StatusNoFailures,
			Result:   analysis.NoFailuresResult(),
			Metadata: meta,
			Sections: art.Sections,
		}
	}

	uc.logger.Info("analysis complete",
		"error_lines", len(art.ErrorLines),
		"clusters", len(art.Clusters),
		"sections", len(art.Sections),
		"prompt_chars", art.PromptChars,
		"estimated_token_savings", meta.EstimatedTokenSavings,
	)

	raw, reason := uc.generate(ctx, art.Prompt)
	uc.recordUsage(ctx, "build_triage", art.Prompt, raw)

	outcome := domain.TriageOutcome{
		Metadata: meta,
		Sections: art.Sections,
		Prompt:   art.Prompt,
	}

	if reason == "" {
		var result domain.AnalysisResult
		result, reason = analysis.ParseResponse(raw)
		if reason == "" {
			outcome.Status = domain.StatusAnalyzed
			outcome.Result = result
			uc.countAnalysis(string(domain.StatusAnalyzed))
			return outcome
		}
		uc.countFallback("invalid_response")
	}

	uc.logger.Warn("falling back to deterministic synthesis", "reason", reason)
	outcome.Status = domain.StatusFallback
	outcome.FallbackReason = reason
	outcome.Result = analysis.Synthesize(art.Sections, reason)
	uc.countAnalysis(string(domain.StatusFallback))
	return outcome
}

// generate performs the single collaborator attempt. A non-empty reason
// means the attempt failed and the caller must synthesize.
func (uc *TriageBuildUseCase) generate(ctx context.Context, prompt string) (string, string) {
	genCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	raw, err := uc.generator.Generate(genCtx, prompt)
	elapsed := time.Since(start)

	if uc.metrics != nil {
		uc.metrics.LLMRequestSeconds.Observe(elapsed.Seconds())
	}

	if err != nil {
		uc.countLLMRequest("error")
		uc.countFallback("generate_error")
		return "", fmt.Sprintf("generation failed: %v", err)
	}
	if raw == "" {
		uc.countLLMRequest("empty")
		uc.countFallback("empty_response")
		return "", "empty response"
	}
	uc.countLLMRequest("ok")
	uc.logger.Info("collaborator responded", "response_chars", len(raw), "duration_ms", elapsed.Milliseconds())
	return raw, ""
}

func (uc *TriageBuildUseCase) recordUsage(ctx context.Context, operation, prompt, response string) {
	if uc.usage == nil {
		return
	}
	rec := domain.UsageRecord{
		ID:              uuid.NewString(),
		Operation:       operation,
		Backend:         uc.generator.Backend(),
		Model:           uc.generator.Model(),
		PromptChars:     len(prompt),
		ResponseChars:   len(response),
		EstimatedTokens: analysis.EstimateTokens(len(prompt) + len(response)),
		CreatedAt:       time.Now().UTC(),
	}
	if err := uc.usage.Record(ctx, rec); err != nil {
		// Usage tracking is never load-bearing.
		uc.logger.Warn("failed to record usage", "error", err)
	}
}

func (uc *TriageBuildUseCase) countAnalysis(status string) {
	if uc.metrics != nil {
		uc.metrics.AnalysesTotal.WithLabelValues(status).Inc()
	}
}

func (uc *TriageBuildUseCase) countLLMRequest(status string) {
	if uc.metrics != nil {
		uc.metrics.LLMRequestsTotal.WithLabelValues(uc.generator.Backend(), status).Inc()
	}
}

func (uc *TriageBuildUseCase) countFallback(reason string) {
	if uc.metrics != nil {
		uc.metrics.FallbacksTotal.WithLabelValues(reason).Inc()
	}
}
