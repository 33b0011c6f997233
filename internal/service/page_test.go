package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/loomai/internal/domain"
)

// MockPageRepository is a mock implementation of PageRepositoryInterface
type MockPageRepository struct {
	mock.Mock
}

func (m *MockPageRepository) Create(ctx context.Context, p *domain.Page) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPageRepository) GetByURL(ctx context.Context, url string) (*domain.Page, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *MockPageRepository) Update(ctx context.Context, p *domain.Page) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPageRepository) UpdateStatus(ctx context.Context, id string, status domain.PageStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPageRepository) SearchNearest(ctx context.Context, embedding []float32, limit int) ([]domain.RawResult, error) {
	args := m.Called(ctx, embedding, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawResult), args.Error(1)
}

func (m *MockPageRepository) CountIndexed(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmbeddingJobRepository is a mock implementation of EmbeddingJobRepositoryInterface
type MockEmbeddingJobRepository struct {
	mock.Mock
}

func (m *MockEmbeddingJobRepository) Create(ctx context.Context, job *domain.EmbeddingJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockEmbeddingJobRepository) DeleteByPage(ctx context.Context, pageID string) error {
	args := m.Called(ctx, pageID)
	return args.Error(0)
}

type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return s.vec, s.err
}

type stubUUIDGen struct {
	next string
}

func (g *stubUUIDGen) NewString() string { return g.next }

func pageContent() string {
	return "<html><body><p>" + strings.Repeat("semantic search content ", 10) + "</p></body></html>"
}

func TestProcessPage_NewPageQueuesJob(t *testing.T) {
	pageRepo := new(MockPageRepository)
	jobRepo := new(MockEmbeddingJobRepository)

	pageRepo.On("GetByURL", mock.Anything, "https://example.com/post").Return(nil, domain.ErrPageNotFound)
	pageRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Page) bool {
		return p.URL == "https://example.com/post" && p.Status == domain.PageStatusPending
	})).Return(nil)
	jobRepo.On("DeleteByPage", mock.Anything, "page-1").Return(nil)
	jobRepo.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.EmbeddingJob) bool {
		return j.PageID == "page-1" && j.Status == domain.EmbeddingJobStatusPending
	})).Return(nil)

	svc := NewPageService(pageRepo, jobRepo, &stubEmbedder{}).WithUUIDGen(&stubUUIDGen{next: "page-1"})

	out, err := svc.ProcessPage(context.Background(), ProcessInput{
		URL:     "https://example.com/post",
		Content: pageContent(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PageStatusPending, out.Status)
	assert.True(t, out.Queued)
	pageRepo.AssertExpectations(t)
	jobRepo.AssertExpectations(t)
}

func TestProcessPage_ExistingPageIsUpdated(t *testing.T) {
	pageRepo := new(MockPageRepository)
	jobRepo := new(MockEmbeddingJobRepository)

	existing := &domain.Page{ID: "page-1", URL: "https://example.com/post", Status: domain.PageStatusIndexed}
	pageRepo.On("GetByURL", mock.Anything, "https://example.com/post").Return(existing, nil)
	pageRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Page) bool {
		return p.ID == "page-1" && p.Status == domain.PageStatusPending
	})).Return(nil)
	jobRepo.On("DeleteByPage", mock.Anything, "page-1").Return(nil)
	jobRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewPageService(pageRepo, jobRepo, &stubEmbedder{})

	out, err := svc.ProcessPage(context.Background(), ProcessInput{
		URL:     "https://example.com/post",
		Content: pageContent(),
	})
	require.NoError(t, err)
	assert.Equal(t, "page-1", out.PageID)
	assert.True(t, out.Queued)
	pageRepo.AssertExpectations(t)
}

func TestProcessPage_SensitiveURLIsSkipped(t *testing.T) {
	pageRepo := new(MockPageRepository)
	jobRepo := new(MockEmbeddingJobRepository)

	pageRepo.On("GetByURL", mock.Anything, "https://gmail.com/inbox").Return(nil, domain.ErrPageNotFound)
	pageRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Page) bool {
		return p.Status == domain.PageStatusSkipped
	})).Return(nil)

	svc := NewPageService(pageRepo, jobRepo, &stubEmbedder{})

	out, err := svc.ProcessPage(context.Background(), ProcessInput{
		URL:     "https://gmail.com/inbox",
		Content: pageContent(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PageStatusSkipped, out.Status)
	assert.False(t, out.Queued)
	assert.Equal(t, "sensitive url", out.Reason)
	jobRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcessPage_ShortContentIsSkipped(t *testing.T) {
	pageRepo := new(MockPageRepository)
	jobRepo := new(MockEmbeddingJobRepository)

	pageRepo.On("GetByURL", mock.Anything, mock.Anything).Return(nil, domain.ErrPageNotFound)
	pageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewPageService(pageRepo, jobRepo, &stubEmbedder{})

	out, err := svc.ProcessPage(context.Background(), ProcessInput{
		URL:     "https://example.com/tiny",
		Content: "<p>tiny</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PageStatusSkipped, out.Status)
	assert.Equal(t, "content too short", out.Reason)
}

func TestProcessPage_MissingFields(t *testing.T) {
	svc := NewPageService(new(MockPageRepository), new(MockEmbeddingJobRepository), &stubEmbedder{})

	_, err := svc.ProcessPage(context.Background(), ProcessInput{URL: "", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)

	_, err = svc.ProcessPage(context.Background(), ProcessInput{URL: "https://example.com", Content: "  "})
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
}

func TestSearch_ScoresAndRanks(t *testing.T) {
	pageRepo := new(MockPageRepository)
	embedder := &stubEmbedder{vec: make([]float32, 64)}

	pageRepo.On("SearchNearest", mock.Anything, embedder.vec, 5).Return([]domain.RawResult{
		{URL: "blog.example.com/golang-concurrency", Distance: 0.3},
	}, nil)

	svc := NewPageService(pageRepo, new(MockEmbeddingJobRepository), embedder)

	out, err := svc.Search(context.Background(), "golang concurrency", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, "blog.example.com/golang-concurrency", out.Results[0].URL)
	pageRepo.AssertExpectations(t)
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := NewPageService(new(MockPageRepository), new(MockEmbeddingJobRepository), &stubEmbedder{})

	_, err := svc.Search(context.Background(), "   ", 5)
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestSearch_NoMatchesYieldsEmptyResults(t *testing.T) {
	pageRepo := new(MockPageRepository)
	embedder := &stubEmbedder{vec: make([]float32, 64)}

	pageRepo.On("SearchNearest", mock.Anything, mock.Anything, 3).Return([]domain.RawResult{}, nil)

	svc := NewPageService(pageRepo, new(MockEmbeddingJobRepository), embedder)

	out, err := svc.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, out.Results)
	assert.Zero(t, out.Count)
}
