package movies

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecider_Decide(t *testing.T) {
	client := &fakeLLM{response: `{
		"recommendations": [
			{"title": "Heat", "year": 1995, "genres": ["Crime", "Thriller"], "rating": 8.3, "description": "A crew of career thieves.", "reason": "matches the energetic mood"}
		],
		"confidence_score": 0.82,
		"reasoning": "action-heavy picks for an energetic evening",
		"reasoning_steps": [{"step": 1, "action": "match mood", "reasoning": "energetic favors action"}]
	}`}

	perception := fallbackPerception("friday evening", "test")
	out := NewDecider(client).Decide(context.Background(), testPrefs(), perception)

	require.Len(t, out.Recommendations, 1)
	assert.False(t, out.FallbackUsed)
	assert.Equal(t, "Heat", out.Recommendations[0].Title)
	assert.Equal(t, 0.82, out.ConfidenceScore)
	assert.Equal(t, "llm_decision", out.ReasoningType)
}

func TestDecider_OutOfRangeConfidenceReset(t *testing.T) {
	client := &fakeLLM{response: `{
		"recommendations": [{"title": "Heat"}],
		"confidence_score": 1.4
	}`}

	out := NewDecider(client).Decide(context.Background(), testPrefs(), fallbackPerception("ctx", "test"))

	assert.Equal(t, fallbackConfidence, out.ConfidenceScore)
}

func TestDecider_FallbackOnLLMError(t *testing.T) {
	client := &fakeLLM{err: errors.New("timeout")}

	out := NewDecider(client).Decide(context.Background(), testPrefs(), fallbackPerception("ctx", "test"))

	require.True(t, out.FallbackUsed)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "Mad Max: Fury Road", out.Recommendations[0].Title)
	assert.Equal(t, fallbackConfidence, out.ConfidenceScore)
	assert.Equal(t, "fallback_decision", out.ReasoningType)
}

func TestDecider_FallbackTitlesByGenre(t *testing.T) {
	tests := []struct {
		genre string
		title string
		year  int
	}{
		{"Comedy", "The Grand Budapest Hotel", 2014},
		{"Action", "Mad Max: Fury Road", 2015},
		{"Drama", "The Shawshank Redemption", 1994},
		{"Horror", "Forrest Gump", 1994},
		{"", "Forrest Gump", 1994},
	}

	for _, tt := range tests {
		t.Run("genre "+tt.genre, func(t *testing.T) {
			prefs := testPrefs()
			if tt.genre == "" {
				prefs.FavoriteGenres = nil
			} else {
				prefs.FavoriteGenres = []string{tt.genre}
			}

			out := fallbackDecision(prefs, "test")

			require.Len(t, out.Recommendations, 1)
			assert.Equal(t, tt.title, out.Recommendations[0].Title)
			assert.Equal(t, tt.year, out.Recommendations[0].Year)
		})
	}
}

func TestDecider_FallbackOnEmptyList(t *testing.T) {
	client := &fakeLLM{response: `{"recommendations": [], "confidence_score": 0.9}`}

	out := NewDecider(client).Decide(context.Background(), testPrefs(), fallbackPerception("ctx", "test"))

	assert.True(t, out.FallbackUsed)
	assert.Equal(t, "empty recommendation list", out.FallbackReason)
}

func TestDecider_SkipsUntitledRecommendations(t *testing.T) {
	client := &fakeLLM{response: `{
		"recommendations": [{"title": ""}, {"title": "Heat", "year": 1995}],
		"confidence_score": 0.8
	}`}

	out := NewDecider(client).Decide(context.Background(), testPrefs(), fallbackPerception("ctx", "test"))

	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "Heat", out.Recommendations[0].Title)
	assert.False(t, out.FallbackUsed)
}
