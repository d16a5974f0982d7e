package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/build-triage/internal/analysis"
	"github.com/user/build-triage/internal/domain"
)

const maxPRBodyChars = 4000

// ChangedFilesFetcher returns a human-readable listing of a PR's changed
// files, or an empty string when enrichment is unavailable.
type ChangedFilesFetcher interface {
	FetchChangedFiles(ctx context.Context, prURL string) string
}

// SummarizePRUseCase produces a short review summary for a pull request.
type SummarizePRUseCase struct {
	generator domain.Generator
	files     ChangedFilesFetcher    // optional
	usage     domain.UsageRepository // optional
	logger    *slog.Logger
	timeout   time.Duration
}

// NewSummarizePRUseCase creates a new SummarizePRUseCase. The fetcher and
// usage repository may be nil.
func NewSummarizePRUseCase(
	generator domain.Generator,
	files ChangedFilesFetcher,
	usage domain.UsageRepository,
	logger *slog.Logger,
	timeout time.Duration,
) *SummarizePRUseCase {
	return &SummarizePRUseCase{
		generator: generator,
		files:     files,
		usage:     usage,
		logger:    logger.With("component", "summarize_pr"),
		timeout:   timeout,
	}
}

// Summarize builds the PR prompt, invokes the collaborator once, and returns
// its free-form summary. Unlike build triage there is no deterministic
// fallback; a failed call is an error and no summary is posted.
func (uc *SummarizePRUseCase) Summarize(ctx context.Context, pr domain.PullRequest) (string, error) {
	prompt := uc.buildPrompt(ctx, pr)

	genCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	summary, err := uc.generator.Generate(genCtx, prompt)
	uc.recordUsage(ctx, prompt, summary)
	if err != nil {
		return "", fmt.Errorf("summarizing PR #%d: %w", pr.Number, err)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", domain.ErrEmptyResponse
	}
	return summary, nil
}

func (uc *SummarizePRUseCase) buildPrompt(ctx context.Context, pr domain.PullRequest) string {
	var b strings.Builder
	b.WriteString("You are a senior engineer reviewing a pull request.\n")
	b.WriteString("Write a concise summary (3-5 sentences) of what this PR changes and why,\n")
	b.WriteString("followed by up to 3 bullet points of things a reviewer should look at.\n\n")

	fmt.Fprintf(&b, "PR #%d: %s\n", pr.Number, pr.Title)
	fmt.Fprintf(&b, "Author: %s\n", pr.Author)
	fmt.Fprintf(&b, "Branch: %s -> %s\n", pr.HeadRef, pr.BaseRef)

	body := strings.TrimSpace(pr.Body)
	if len(body) > maxPRBodyChars {
		body = body[:maxPRBodyChars]
	}
	if body != "" {
		b.WriteString("\nDescription:\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	if uc.files != nil {
		if listing := uc.files.FetchChangedFiles(ctx, pr.URL); listing != "" {
			b.WriteString("\nChanged files:\n")
			b.WriteString(listing)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (uc *SummarizePRUseCase) recordUsage(ctx context.Context, prompt, response string) {
	if uc.usage == nil {
		return
	}
	rec := domain.UsageRecord{
		ID:              uuid.NewString(),
		Operation:       "pr_summary",
		Backend:         uc.generator.Backend(),
		Model:           uc.generator.Model(),
		PromptChars:     len(prompt),
		ResponseChars:   len(response),
		EstimatedTokens: analysis.EstimateTokens(len(prompt) + len(response)),
		CreatedAt:       time.Now().UTC(),
	}
	if err := uc.usage.Record(ctx, rec); err != nil {
		uc.logger.Warn("failed to record usage", "error", err)
	}
}
