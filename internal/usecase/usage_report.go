package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/user/build-triage/internal/domain"
)

// ErrInvalidPeriod marks a period string the report cannot interpret.
var ErrInvalidPeriod = errors.New("invalid usage period")

// UsageReportUseCase aggregates collaborator usage over a lookback period.
type UsageReportUseCase struct {
	repo   domain.UsageRepository
	logger *slog.Logger
}

// NewUsageReportUseCase creates a new UsageReportUseCase.
func NewUsageReportUseCase(repo domain.UsageRepository, logger *slog.Logger) *UsageReportUseCase {
	return &UsageReportUseCase{
		repo:   repo,
		logger: logger.With("component", "usage_report"),
	}
}

// Report summarizes usage for the given period. Periods accept Go duration
// syntax plus a day suffix, e.g. "24h", "30m", "7d". An empty period
// defaults to 24h.
func (uc *UsageReportUseCase) Report(ctx context.Context, period string) (domain.UsageSummary, error) {
	if period == "" {
		period = "24h"
	}
	d, err := parsePeriod(period)
	if err != nil {
		return domain.UsageSummary{}, err
	}

	summary, err := uc.repo.Summarize(ctx, time.Now().UTC().Add(-d))
	if err != nil {
		return domain.UsageSummary{}, fmt.Errorf("summarizing usage: %w", err)
	}
	summary.Period = period
	return summary, nil
}

func parsePeriod(period string) (time.Duration, error) {
	if strings.HasSuffix(period, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(period, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(period)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	return d, nil
}
