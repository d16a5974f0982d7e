package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/build-triage/internal/domain"
	"github.com/user/build-triage/internal/domain/mocks"
)

type stubFetcher struct {
	listing string
	urls    []string
}

func (f *stubFetcher) FetchChangedFiles(ctx context.Context, prURL string) string {
	f.urls = append(f.urls, prURL)
	return f.listing
}

func samplePR() domain.PullRequest {
	return domain.PullRequest{
		URL:     "https://api.github.com/repos/org/repo/pulls/7",
		Number:  7,
		Title:   "Harden retry logic",
		Body:    "Adds jittered backoff.",
		Author:  "octocat",
		BaseRef: "main",
		HeadRef: "fix/retries",
	}
}

func TestSummarizePR(t *testing.T) {
	gen := &mocks.MockGenerator{Response: "This PR hardens retry logic."}
	fetcher := &stubFetcher{listing: "- retry.go (modified, +20/-4)"}
	usage := &mocks.MockUsageRepository{}
	uc := NewSummarizePRUseCase(gen, fetcher, usage, testLogger(), time.Minute)

	summary, err := uc.Summarize(context.Background(), samplePR())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != "This PR hardens retry logic." {
		t.Errorf("summary = %q", summary)
	}

	if len(gen.Prompts) != 1 {
		t.Fatalf("collaborator called %d times", len(gen.Prompts))
	}
	prompt := gen.Prompts[0]
	for _, want := range []string{"PR #7: Harden retry logic", "Author: octocat", "fix/retries -> main", "retry.go (modified, +20/-4)"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if len(fetcher.urls) != 1 || fetcher.urls[0] != samplePR().URL {
		t.Errorf("fetcher urls = %v", fetcher.urls)
	}
	if len(usage.Records) != 1 || usage.Records[0].Operation != "pr_summary" {
		t.Errorf("usage records = %+v", usage.Records)
	}
}

func TestSummarizePR_GeneratorError(t *testing.T) {
	gen := &mocks.MockGenerator{Err: errors.New("backend down")}
	uc := NewSummarizePRUseCase(gen, nil, nil, testLogger(), time.Minute)

	if _, err := uc.Summarize(context.Background(), samplePR()); err == nil {
		t.Error("expected error when the collaborator fails")
	}
}

func TestSummarizePR_EmptyResponse(t *testing.T) {
	gen := &mocks.MockGenerator{Response: "  \n"}
	uc := NewSummarizePRUseCase(gen, nil, nil, testLogger(), time.Minute)

	if _, err := uc.Summarize(context.Background(), samplePR()); !errors.Is(err, domain.ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestSummarizePR_TruncatesLongBody(t *testing.T) {
	pr := samplePR()
	pr.Body = strings.Repeat("x", maxPRBodyChars+500)
	gen := &mocks.MockGenerator{Response: "ok"}
	uc := NewSummarizePRUseCase(gen, nil, nil, testLogger(), time.Minute)

	if _, err := uc.Summarize(context.Background(), pr); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if strings.Contains(gen.Prompts[0], strings.Repeat("x", maxPRBodyChars+1)) {
		t.Error("body was not truncated")
	}
}
