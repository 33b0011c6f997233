package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/loomworks/loomai/internal/domain"
	"github.com/loomworks/loomai/internal/telemetry"
)

const DefaultSearchLimit = 5

// PageRepositoryInterface defines the repository interface for page persistence
type PageRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Page) error
	GetByURL(ctx context.Context, url string) (*domain.Page, error)
	Update(ctx context.Context, p *domain.Page) error
	UpdateStatus(ctx context.Context, id string, status domain.PageStatus) error
	SearchNearest(ctx context.Context, embedding []float32, limit int) ([]domain.RawResult, error)
	CountIndexed(ctx context.Context) (int64, error)
}

// EmbeddingJobRepositoryInterface defines the repository interface for embedding job persistence
type EmbeddingJobRepositoryInterface interface {
	Create(ctx context.Context, job *domain.EmbeddingJob) error
	DeleteByPage(ctx context.Context, pageID string) error
}

// QueryEmbedder turns text into index-width vectors.
type QueryEmbedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Snapshotter stores raw page captures. Optional.
type Snapshotter interface {
	PutSnapshot(ctx context.Context, key string, body []byte) error
}

// UUIDGenerator defines interface for UUID generation (for testing)
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator is the default UUID generator using google/uuid
type DefaultUUIDGenerator struct{}

func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}

// PageService handles page ingestion and semantic search.
type PageService struct {
	pageRepo   PageRepositoryInterface
	jobRepo    EmbeddingJobRepositoryInterface
	embedder   QueryEmbedder
	searchLogs SearchLogRepository
	snapshots  Snapshotter
	uuidGen    UUIDGenerator
}

func NewPageService(
	pageRepo PageRepositoryInterface,
	jobRepo EmbeddingJobRepositoryInterface,
	embedder QueryEmbedder,
) *PageService {
	return &PageService{
		pageRepo: pageRepo,
		jobRepo:  jobRepo,
		embedder: embedder,
		uuidGen:  &DefaultUUIDGenerator{},
	}
}

// WithSearchLogs enables best-effort search logging.
func (s *PageService) WithSearchLogs(repo SearchLogRepository) *PageService {
	s.searchLogs = repo
	return s
}

// WithSnapshots enables raw HTML snapshot storage.
func (s *PageService) WithSnapshots(store Snapshotter) *PageService {
	s.snapshots = store
	return s
}

// WithUUIDGen overrides UUID generation (for testing).
func (s *PageService) WithUUIDGen(gen UUIDGenerator) *PageService {
	s.uuidGen = gen
	return s
}

// ProcessInput represents a page capture submitted for indexing.
type ProcessInput struct {
	URL     string
	Content string
}

// ProcessOutput reports what happened to a submitted page.
type ProcessOutput struct {
	PageID string            `json:"page_id,omitempty"`
	URL    string            `json:"url"`
	Status domain.PageStatus `json:"status"`
	Queued bool              `json:"queued"`
	Reason string            `json:"reason,omitempty"`
}

// ProcessPage validates a capture, applies the indexing policy, upserts
// the page, and queues an embedding job. Pages failing the policy are
// recorded as skipped rather than rejected so the extension can stop
// resubmitting them.
func (s *PageService) ProcessPage(ctx context.Context, input ProcessInput) (*ProcessOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "PageService.ProcessPage", telemetry.SpanAttributes{
		URL:       input.URL,
		Operation: "process",
	})
	defer span.End()

	if strings.TrimSpace(input.URL) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, domain.ErrMissingRequiredField
	}

	text := ExtractText(input.Content)

	indexable, reason := ShouldIndex(input.URL, text)
	status := domain.PageStatusPending
	if !indexable {
		status = domain.PageStatusSkipped
	}

	page, err := s.upsertPage(ctx, input.URL, text, status)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if !indexable {
		return &ProcessOutput{
			PageID: page.ID,
			URL:    page.URL,
			Status: domain.PageStatusSkipped,
			Reason: reason,
		}, nil
	}

	if s.snapshots != nil {
		key := "snapshots/" + page.ID + ".html"
		if err := s.snapshots.PutSnapshot(ctx, key, []byte(input.Content)); err != nil {
			log.Printf("page service: snapshot upload failed for %s: %v", page.ID, err)
		} else if page.SnapshotKey != key {
			page.SnapshotKey = key
			if err := s.pageRepo.Update(ctx, page); err != nil {
				log.Printf("page service: failed to record snapshot key for %s: %v", page.ID, err)
			}
		}
	}

	// Drop stale queued work before enqueueing the fresh capture.
	if err := s.jobRepo.DeleteByPage(ctx, page.ID); err != nil {
		span.SetError(err)
		return nil, err
	}
	job := domain.NewEmbeddingJob(s.uuidGen.NewString(), page.ID, time.Now().UTC())
	if err := s.jobRepo.Create(ctx, job); err != nil {
		span.SetError(err)
		return nil, err
	}

	return &ProcessOutput{
		PageID: page.ID,
		URL:    page.URL,
		Status: domain.PageStatusPending,
		Queued: true,
	}, nil
}

func (s *PageService) upsertPage(ctx context.Context, url, text string, status domain.PageStatus) (*domain.Page, error) {
	existing, err := s.pageRepo.GetByURL(ctx, url)
	if err == nil {
		existing.Content = text
		existing.Status = status
		if err := s.pageRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if err != domain.ErrPageNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	page := &domain.Page{
		ID:        s.uuidGen.NewString(),
		URL:       url,
		Content:   text,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.pageRepo.Create(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// SearchOutput is the ranked answer to a search query.
type SearchOutput struct {
	Query      string                `json:"query"`
	Results    []domain.ScoredResult `json:"results"`
	Count      int                   `json:"count"`
	DurationMs int                   `json:"duration_ms"`
}

// Search embeds the query, finds the nearest indexed pages, and scores
// them for the extension.
func (s *PageService) Search(ctx context.Context, query string, limit int) (*SearchOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "PageService.Search", telemetry.SpanAttributes{
		Query:     query,
		Operation: "search",
	})
	defer span.End()

	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	start := time.Now()

	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	raw, err := s.pageRepo.SearchNearest(ctx, embedding, limit)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	for i := range raw {
		raw[i].Query = query
	}

	scored := ScoreResults(query, raw)
	duration := int(time.Since(start).Milliseconds())

	if s.searchLogs != nil {
		if _, err := s.searchLogs.CreateSearchLog(ctx, SearchLogEntry{
			Query:      query,
			DurationMs: duration,
			Results:    scored,
		}); err != nil {
			log.Printf("page service: search log write failed: %v", err)
		}
	}

	return &SearchOutput{
		Query:      query,
		Results:    scored,
		Count:      len(scored),
		DurationMs: duration,
	}, nil
}

// Stats reports index size for the health endpoint.
func (s *PageService) Stats(ctx context.Context) (int64, error) {
	return s.pageRepo.CountIndexed(ctx)
}
