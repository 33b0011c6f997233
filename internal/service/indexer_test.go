package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/loomai/internal/domain"
)

type MockIndexPageRepository struct {
	mock.Mock
}

func (m *MockIndexPageRepository) GetByID(ctx context.Context, id string) (*domain.Page, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *MockIndexPageRepository) MarkIndexed(ctx context.Context, id, summary string, embedding []float32) error {
	args := m.Called(ctx, id, summary, embedding)
	return args.Error(0)
}

type stubSummarizer struct {
	summary string
	vec     []float32
	err     error
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string) (string, []float32, error) {
	return s.summary, s.vec, s.err
}

func TestIndexPage(t *testing.T) {
	repo := new(MockIndexPageRepository)
	vec := []float32{0.5, 0.5}

	repo.On("GetByID", mock.Anything, "page-1").Return(&domain.Page{
		ID: "page-1", Content: "page text", Status: domain.PageStatusPending,
	}, nil)
	repo.On("MarkIndexed", mock.Anything, "page-1", "a summary", vec).Return(nil)

	svc := NewIndexerService(&stubSummarizer{summary: "a summary", vec: vec}, repo)

	require.NoError(t, svc.IndexPage(context.Background(), "page-1"))
	repo.AssertExpectations(t)
}

func TestIndexPage_SkippedPage(t *testing.T) {
	repo := new(MockIndexPageRepository)
	repo.On("GetByID", mock.Anything, "page-1").Return(&domain.Page{
		ID: "page-1", Status: domain.PageStatusSkipped,
	}, nil)

	svc := NewIndexerService(&stubSummarizer{}, repo)

	err := svc.IndexPage(context.Background(), "page-1")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "MarkIndexed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIndexPage_SummarizerError(t *testing.T) {
	repo := new(MockIndexPageRepository)
	repo.On("GetByID", mock.Anything, "page-1").Return(&domain.Page{
		ID: "page-1", Status: domain.PageStatusPending,
	}, nil)

	svc := NewIndexerService(&stubSummarizer{err: errors.New("boom")}, repo)

	err := svc.IndexPage(context.Background(), "page-1")
	assert.ErrorContains(t, err, "failed to generate embedding")
}

func TestIndexPage_NotFound(t *testing.T) {
	repo := new(MockIndexPageRepository)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrPageNotFound)

	svc := NewIndexerService(&stubSummarizer{}, repo)

	assert.ErrorIs(t, svc.IndexPage(context.Background(), "missing"), domain.ErrPageNotFound)
}
