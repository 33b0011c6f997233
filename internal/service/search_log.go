package service

import (
	"context"

	"github.com/loomworks/loomai/internal/domain"
)

// SearchLogEntry captures a search request and its scored results.
type SearchLogEntry struct {
	Query      string
	DurationMs int
	Results    []domain.ScoredResult
}

// SearchLogRepository persists search logs for later evaluation.
type SearchLogRepository interface {
	CreateSearchLog(ctx context.Context, entry SearchLogEntry) (string, error)
}
