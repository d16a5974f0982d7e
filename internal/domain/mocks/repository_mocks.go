package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/user/build-triage/internal/domain"
)

// MockGenerator is a mock implementation of domain.Generator for testing.
type MockGenerator struct {
	mu           sync.Mutex
	Response     string
	Err          error
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	Prompts      []string
	BackendName  string
	ModelName    string
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockGenerator) Backend() string {
	if m.BackendName == "" {
		return "mock"
	}
	return m.BackendName
}

func (m *MockGenerator) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// MockNotifier is a mock implementation of domain.Notifier for testing.
type MockNotifier struct {
	mu       sync.Mutex
	Messages []string
	Channels []string
	TS       string
	Err      error
}

func (m *MockNotifier) PostMessage(ctx context.Context, channel, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Channels = append(m.Channels, channel)
	m.Messages = append(m.Messages, text)
	if m.TS == "" {
		return "0000.0000", nil
	}
	return m.TS, nil
}

// Sent returns a copy of the messages posted so far. Safe to call while
// other goroutines are still posting.
func (m *MockNotifier) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Messages))
	copy(out, m.Messages)
	return out
}

// MockUsageRepository is a mock implementation of domain.UsageRepository.
type MockUsageRepository struct {
	mu      sync.Mutex
	Records []domain.UsageRecord
	Summary domain.UsageSummary
	Err     error
}

func (m *MockUsageRepository) Record(ctx context.Context, rec domain.UsageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Records = append(m.Records, rec)
	return nil
}

func (m *MockUsageRepository) Summarize(ctx context.Context, cutoff time.Time) (domain.UsageSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return domain.UsageSummary{}, m.Err
	}
	return m.Summary, nil
}

// MockDeliveryRepository is a mock implementation of domain.DeliveryRepository.
type MockDeliveryRepository struct {
	mu   sync.Mutex
	Seen map[string]bool
	Err  error
}

func (m *MockDeliveryRepository) MarkSeen(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if m.Seen == nil {
		m.Seen = make(map[string]bool)
	}
	seen := m.Seen[deliveryID]
	m.Seen[deliveryID] = true
	return seen, nil
}
