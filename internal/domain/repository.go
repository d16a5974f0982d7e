package domain

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyResponse marks a collaborator call that returned no text.
var ErrEmptyResponse = errors.New("collaborator returned empty response")

// Generator is the collaborator boundary: one prompt in, free-form text out.
// Implementations own their wire format and HTTP envelope; callers own the
// timeout via ctx and treat any error identically to a validation failure.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// Backend and Model identify the implementation for run metadata.
	Backend() string
	Model() string
}

// Notifier posts human-facing messages to a chat channel.
type Notifier interface {
	// PostMessage returns the message timestamp assigned by the service.
	PostMessage(ctx context.Context, channel, text string) (string, error)
}

// UsageRepository persists collaborator usage records for cost reporting.
type UsageRepository interface {
	Record(ctx context.Context, rec UsageRecord) error

	// Summarize aggregates records created at or after the cutoff.
	Summarize(ctx context.Context, cutoff time.Time) (UsageSummary, error)
}

// DeliveryRepository tracks processed webhook delivery IDs so redelivered
// events are acknowledged without re-running analysis.
type DeliveryRepository interface {
	// MarkSeen records the delivery ID and reports whether it was already
	// marked before this call.
	MarkSeen(ctx context.Context, deliveryID string, ttl time.Duration) (seen bool, err error)
}
