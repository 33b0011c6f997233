package embedding

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummarizer struct {
	summary string
	err     error
}

func (f *fakeSummarizer) GenerateBounded(_ context.Context, _ string, _ int32, _ float32) (string, error) {
	return f.summary, f.err
}

func TestHashVector_Deterministic(t *testing.T) {
	a := HashVector("machine learning fundamentals")
	b := HashVector("machine learning fundamentals")
	assert.Equal(t, a, b)
}

func TestHashVector_UnitNorm(t *testing.T) {
	vec := HashVector("distributed systems and consensus protocols")
	require.Len(t, vec, Dimension)

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestHashVector_CaseInsensitive(t *testing.T) {
	assert.Equal(t, HashVector("Machine Learning"), HashVector("machine learning"))
}

func TestHashVector_PositionWeighting(t *testing.T) {
	// Word order changes the weights, so the vectors differ.
	a := HashVector("alpha beta")
	b := HashVector("beta alpha")
	assert.NotEqual(t, a, b)
}

func TestHashVector_Empty(t *testing.T) {
	vec := HashVector("")
	require.Len(t, vec, Dimension)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestGenerateEmbedding(t *testing.T) {
	e := NewEmbedder(&fakeSummarizer{summary: "vector search over web pages"})

	vec, err := e.GenerateEmbedding(context.Background(), "some long page content")
	require.NoError(t, err)
	assert.Equal(t, HashVector("vector search over web pages"), vec)
}

func TestGenerateEmbedding_LLMFailureYieldsZeroVector(t *testing.T) {
	e := NewEmbedder(&fakeSummarizer{err: errors.New("upstream down")})

	vec, err := e.GenerateEmbedding(context.Background(), "content")
	require.NoError(t, err)
	require.Len(t, vec, Dimension)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestGenerateEmbedding_NoSummarizerHashesRawText(t *testing.T) {
	e := NewEmbedder(nil)

	vec, err := e.GenerateEmbedding(context.Background(), "machine learning basics")
	require.NoError(t, err)
	assert.Equal(t, HashVector("machine learning basics"), vec)
}

func TestEnsureDimension(t *testing.T) {
	short := EnsureDimension([]float32{1, 2, 3})
	require.Len(t, short, Dimension)
	assert.Equal(t, float32(1), short[0])
	assert.Zero(t, short[Dimension-1])

	long := make([]float32, Dimension+10)
	assert.Len(t, EnsureDimension(long), Dimension)

	exact := make([]float32, Dimension)
	assert.Len(t, EnsureDimension(exact), Dimension)
}
