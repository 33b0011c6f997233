package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loomworks/loomai/internal/service"
)

// SearchLogRepository stores search logs for evaluation/feedback loops.
type SearchLogRepository struct {
	pool *pgxpool.Pool
}

func NewSearchLogRepository(pool *pgxpool.Pool) *SearchLogRepository {
	return &SearchLogRepository{pool: pool}
}

func (r *SearchLogRepository) CreateSearchLog(ctx context.Context, entry service.SearchLogEntry) (string, error) {
	resultsJSON, _ := json.Marshal(entry.Results)

	var topConfidence *float64
	if len(entry.Results) > 0 {
		topConfidence = &entry.Results[0].Confidence
	}

	var id string
	err := r.pool.QueryRow(ctx,
		`INSERT INTO search_logs (query, results, result_count, top_confidence, duration_ms)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		entry.Query,
		resultsJSON,
		len(entry.Results),
		topConfidence,
		entry.DurationMs,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
