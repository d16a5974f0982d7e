package domain

import "time"

// UsageRecord is one logged collaborator invocation, kept for cost reporting.
type UsageRecord struct {
	ID              string    `json:"id"`
	Operation       string    `json:"operation"` // e.g. build_triage, pr_summary, chat
	Backend         string    `json:"backend"`
	Model           string    `json:"model"`
	PromptChars     int       `json:"prompt_chars"`
	ResponseChars   int       `json:"response_chars"`
	EstimatedTokens int       `json:"estimated_tokens"`
	CreatedAt       time.Time `json:"created_at"`
}

// UsageStats aggregates usage records for one grouping key.
type UsageStats struct {
	Key             string `json:"key"`
	Operations      int    `json:"operations"`
	EstimatedTokens int    `json:"estimated_tokens"`
}

// UsageSummary is a period report over the usage log.
type UsageSummary struct {
	Period          string       `json:"period"`
	Operations      int          `json:"operations"`
	EstimatedTokens int          `json:"estimated_tokens"`
	ByOperation     []UsageStats `json:"by_operation"`
	ByModel         []UsageStats `json:"by_model"`
}
