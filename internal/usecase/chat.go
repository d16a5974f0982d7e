package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/build-triage/internal/analysis"
	"github.com/user/build-triage/internal/domain"
)

// ChatUseCase forwards a free-form message to the collaborator. It exists so
// operators can probe the configured backend through the service itself.
type ChatUseCase struct {
	generator domain.Generator
	usage     domain.UsageRepository // optional
	logger    *slog.Logger
	timeout   time.Duration
}

// NewChatUseCase creates a new ChatUseCase.
func NewChatUseCase(generator domain.Generator, usage domain.UsageRepository, logger *slog.Logger, timeout time.Duration) *ChatUseCase {
	return &ChatUseCase{
		generator: generator,
		usage:     usage,
		logger:    logger.With("component", "chat"),
		timeout:   timeout,
	}
}

// Send forwards the message and returns the raw response text.
func (uc *ChatUseCase) Send(ctx context.Context, message string) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	response, err := uc.generator.Generate(genCtx, message)
	if uc.usage != nil {
		rec := domain.UsageRecord{
			ID:              uuid.NewString(),
			Operation:       "chat",
			Backend:         uc.generator.Backend(),
			Model:           uc.generator.Model(),
			PromptChars:     len(message),
			ResponseChars:   len(response),
			EstimatedTokens: analysis.EstimateTokens(len(message) + len(response)),
			CreatedAt:       time.Now().UTC(),
		}
		if recErr := uc.usage.Record(ctx, rec); recErr != nil {
			uc.logger.Warn("failed to record usage", "error", recErr)
		}
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(response) == "" {
		return "", domain.ErrEmptyResponse
	}
	return response, nil
}
