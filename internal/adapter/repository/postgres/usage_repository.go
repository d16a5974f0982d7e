package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	_ "github.com/lib/pq"

	"github.com/user/build-triage/internal/domain"
)

// UsageRepository implements the domain.UsageRepository interface using
// PostgreSQL. Every collaborator call is recorded so estimated token spend
// can be reported per operation and per model.
type UsageRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewUsageRepository creates a new PostgreSQL usage repository and ensures
// the backing table exists.
func NewUsageRepository(db *sql.DB, logger *slog.Logger) (*UsageRepository, error) {
	r := &UsageRepository{
		db:     db,
		logger: logger.With("component", "usage_repository"),
	}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *UsageRepository) ensureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS llm_usage (
			id               UUID PRIMARY KEY,
			operation        TEXT NOT NULL,
			backend          TEXT NOT NULL,
			model            TEXT NOT NULL,
			prompt_chars     BIGINT NOT NULL,
			response_chars   BIGINT NOT NULL,
			estimated_tokens BIGINT NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_llm_usage_created_at ON llm_usage (created_at);`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring llm_usage schema: %w", err)
	}
	return nil
}

// Record persists a single usage record.
func (r *UsageRepository) Record(ctx context.Context, rec domain.UsageRecord) error {
	const query = `
		INSERT INTO llm_usage (id, operation, backend, model, prompt_chars, response_chars, estimated_tokens, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Operation, rec.Backend, rec.Model,
		rec.PromptChars, rec.ResponseChars, rec.EstimatedTokens, rec.CreatedAt)
	if err != nil {
		r.logger.Error("failed to record usage", "operation", rec.Operation, "error", err)
		return fmt.Errorf("inserting usage record: %w", err)
	}
	return nil
}

// Summarize aggregates usage since the cutoff, grouped by operation and by model.
func (r *UsageRepository) Summarize(ctx context.Context, cutoff time.Time) (domain.UsageSummary, error) {
	const query = `
		SELECT operation, model, COUNT(*), COALESCE(SUM(estimated_tokens), 0)
		FROM llm_usage
		WHERE created_at >= $1
		GROUP BY operation, model`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return domain.UsageSummary{}, fmt.Errorf("querying usage summary: %w", err)
	}
	defer rows.Close()

	var summary domain.UsageSummary
	byOperation := make(map[string]domain.UsageStats)
	byModel := make(map[string]domain.UsageStats)
	for rows.Next() {
		var (
			operation string
			model     string
			count     int
			tokens    int
		)
		if err := rows.Scan(&operation, &model, &count, &tokens); err != nil {
			return domain.UsageSummary{}, fmt.Errorf("scanning usage row: %w", err)
		}

		op := byOperation[operation]
		op.Key = operation
		op.Operations += count
		op.EstimatedTokens += tokens
		byOperation[operation] = op

		md := byModel[model]
		md.Key = model
		md.Operations += count
		md.EstimatedTokens += tokens
		byModel[model] = md

		summary.Operations += count
		summary.EstimatedTokens += tokens
	}
	if err := rows.Err(); err != nil {
		return domain.UsageSummary{}, fmt.Errorf("iterating usage rows: %w", err)
	}

	summary.ByOperation = sortedStats(byOperation)
	summary.ByModel = sortedStats(byModel)
	return summary, nil
}

func sortedStats(m map[string]domain.UsageStats) []domain.UsageStats {
	stats := make([]domain.UsageStats, 0, len(m))
	for _, s := range m {
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Key < stats[j].Key })
	return stats
}
