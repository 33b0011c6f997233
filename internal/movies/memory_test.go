package movies

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/loomai/internal/domain"
)

func newTestMemoryStore(t *testing.T) *MemoryStore {
	t.Helper()
	store, err := OpenMemoryStore("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func rating(v float64) *float64 { return &v }

func TestMemoryStore_RecordAndRecall(t *testing.T) {
	store := newTestMemoryStore(t)
	ctx := context.Background()

	items := []domain.MemoryItem{
		{Context: "friday evening action movies", ActionTaken: "recommended: Heat", Timestamp: time.Now().Add(-2 * time.Hour)},
		{Context: "quiet sunday drama", ActionTaken: "recommended: The Shawshank Redemption", Timestamp: time.Now().Add(-1 * time.Hour)},
		{Context: "friday comedy night", ActionTaken: "recommended: The Grand Budapest Hotel", Timestamp: time.Now()},
	}
	for _, item := range items {
		require.NoError(t, store.Record(ctx, item))
	}

	out, err := store.Recall(ctx, "friday evening at home", 5)
	require.NoError(t, err)

	require.Len(t, out.RelevantMemories, 2)
	assert.Equal(t, "friday evening action movies", out.RelevantMemories[0].Context)
	assert.Equal(t, "friday comedy night", out.RelevantMemories[1].Context)
}

func TestMemoryStore_RecallLimit(t *testing.T) {
	store := newTestMemoryStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, store.Record(ctx, domain.MemoryItem{
			Context:   "movie night",
			Timestamp: time.Now().Add(time.Duration(i) * time.Millisecond),
		}))
	}

	out, err := store.Recall(ctx, "movie night", 2)
	require.NoError(t, err)
	assert.Len(t, out.RelevantMemories, 2)
}

func TestMemoryStore_RecallEmptyStore(t *testing.T) {
	store := newTestMemoryStore(t)

	out, err := store.Recall(context.Background(), "anything", 5)
	require.NoError(t, err)

	assert.Empty(t, out.RelevantMemories)
	assert.Empty(t, out.PatternInsights)
}

func TestMemoryStore_PatternInsights(t *testing.T) {
	store := newTestMemoryStore(t)
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, store.Record(ctx, domain.MemoryItem{Context: "a", SuccessRating: rating(0.9), Timestamp: base}))
	require.NoError(t, store.Record(ctx, domain.MemoryItem{Context: "b", SuccessRating: rating(0.2), Timestamp: base.Add(time.Millisecond)}))
	require.NoError(t, store.Record(ctx, domain.MemoryItem{Context: "c", Timestamp: base.Add(2 * time.Millisecond)}))

	out, err := store.Recall(ctx, "a", 5)
	require.NoError(t, err)

	assert.Equal(t, 0.5, out.PatternInsights["success_rate"])
	assert.Equal(t, 0.7, out.PatternInsights["action_consistency"])
	assert.Equal(t, 0.8, out.PatternInsights["context_similarity"])
}

func TestMemoryStore_RecordFillsTimestamp(t *testing.T) {
	store := newTestMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, domain.MemoryItem{Context: "late night thriller"}))

	out, err := store.Recall(ctx, "late night thriller", 5)
	require.NoError(t, err)
	require.Len(t, out.RelevantMemories, 1)
	assert.False(t, out.RelevantMemories[0].Timestamp.IsZero())
}

func TestRankByOverlap_NoMatches(t *testing.T) {
	items := []domain.MemoryItem{{Context: "quiet sunday drama"}}

	assert.Empty(t, rankByOverlap(items, "loud friday action"))
	assert.Empty(t, rankByOverlap(items, ""))
}
