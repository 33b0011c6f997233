package service

import (
	"context"
	"fmt"

	"github.com/loomworks/loomai/internal/domain"
)

// PageSummarizer produces a semantic summary and embedding for a text.
type PageSummarizer interface {
	Summarize(ctx context.Context, text string) (string, []float32, error)
}

// IndexPageRepository defines the repository interface for indexing operations
type IndexPageRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Page, error)
	MarkIndexed(ctx context.Context, id, summary string, embedding []float32) error
}

// IndexerService generates and stores the embedding for a single page.
// Called by the background worker.
type IndexerService struct {
	summarizer PageSummarizer
	repo       IndexPageRepository
}

func NewIndexerService(summarizer PageSummarizer, repo IndexPageRepository) *IndexerService {
	return &IndexerService{summarizer: summarizer, repo: repo}
}

func (s *IndexerService) IndexPage(ctx context.Context, pageID string) error {
	page, err := s.repo.GetByID(ctx, pageID)
	if err != nil {
		return err
	}
	if page.Status == domain.PageStatusSkipped {
		return fmt.Errorf("page %s is excluded from indexing", pageID)
	}

	summary, embedding, err := s.summarizer.Summarize(ctx, page.Content)
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}

	if err := s.repo.MarkIndexed(ctx, pageID, summary, embedding); err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}
	return nil
}
