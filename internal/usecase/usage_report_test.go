package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/user/build-triage/internal/domain"
	"github.com/user/build-triage/internal/domain/mocks"
)

func TestUsageReport(t *testing.T) {
	repo := &mocks.MockUsageRepository{
		Summary: domain.UsageSummary{
			Operations:      12,
			EstimatedTokens: 34000,
			ByOperation:     []domain.UsageStats{{Key: "build_triage", Operations: 12, EstimatedTokens: 34000}},
		},
	}
	uc := NewUsageReportUseCase(repo, testLogger())

	summary, err := uc.Report(context.Background(), "7d")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if summary.Period != "7d" {
		t.Errorf("period = %q", summary.Period)
	}
	if summary.Operations != 12 || summary.EstimatedTokens != 34000 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestUsageReport_DefaultPeriod(t *testing.T) {
	uc := NewUsageReportUseCase(&mocks.MockUsageRepository{}, testLogger())

	summary, err := uc.Report(context.Background(), "")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if summary.Period != "24h" {
		t.Errorf("period = %q, want 24h", summary.Period)
	}
}

func TestUsageReport_InvalidPeriod(t *testing.T) {
	uc := NewUsageReportUseCase(&mocks.MockUsageRepository{}, testLogger())

	for _, period := range []string{"yesterday", "-1h", "0d", "xd"} {
		if _, err := uc.Report(context.Background(), period); err == nil {
			t.Errorf("period %q accepted", period)
		}
	}
}

func TestChat(t *testing.T) {
	gen := &mocks.MockGenerator{Response: "pong"}
	usage := &mocks.MockUsageRepository{}
	uc := NewChatUseCase(gen, usage, testLogger(), time.Minute)

	got, err := uc.Send(context.Background(), "ping")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if got != "pong" {
		t.Errorf("response = %q", got)
	}
	if len(usage.Records) != 1 || usage.Records[0].Operation != "chat" {
		t.Errorf("usage records = %+v", usage.Records)
	}
}
