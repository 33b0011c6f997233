package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/loomai/internal/domain"
)

func TestScoreResults_WorkedExample(t *testing.T) {
	results := ScoreResults("machine learning", []domain.RawResult{
		{URL: "site.com/blog/machine-learning-basics", Distance: 0.5},
	})

	require.Len(t, results, 1)
	r := results[0]

	// semantic = 1/(1+0.5) = 0.6667
	// "learning" is an exact URL term; both terms are substrings,
	// so term = (1 + 0.5*2) / 2 = 1.0
	// confidence = 0.7*0.6667 + 0.3*1.0 = 0.7667
	assert.Equal(t, 0.667, r.SemanticScore)
	assert.Equal(t, 1.0, r.TermScore)
	assert.Equal(t, 0.767, r.Confidence)
	assert.Equal(t, "semantic_highlight", r.Highlight.Method)
	assert.InDelta(t, 0.76667, r.Highlight.ConfidenceThreshold, 1e-4)
}

func TestTermMatchScore_ExactTermAlsoCountsAsSubstring(t *testing.T) {
	// "kubernetes" is both a verbatim URL term and a substring of the
	// full URL token, so it earns exact credit plus partial credit.
	score := termMatchScore([]string{"kubernetes"}, "docs.example.com/kubernetes")
	assert.Equal(t, 1.5, score)

	// Substring-only hit stays at half credit.
	score = termMatchScore([]string{"kubernetes"}, "docs.example.com/kubernetes-tips")
	assert.Equal(t, 0.5, score)
}

func TestScoreResults_EmptyInput(t *testing.T) {
	assert.Empty(t, ScoreResults("anything", nil))
	assert.Empty(t, ScoreResults("anything", []domain.RawResult{}))
}

func TestScoreResults_DropsBelowThreshold(t *testing.T) {
	results := ScoreResults("unrelated query", []domain.RawResult{
		{URL: "example.com/some/other/page", Distance: 10.0},
	})
	assert.Empty(t, results)
}

func TestScoreResults_SortedByConfidenceDescending(t *testing.T) {
	results := ScoreResults("golang concurrency", []domain.RawResult{
		{URL: "blog.example.com/misc", Distance: 0.9},
		{URL: "blog.example.com/golang-concurrency-patterns", Distance: 0.2},
		{URL: "blog.example.com/golang", Distance: 0.5},
	})

	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Confidence, results[i].Confidence)
	}
	assert.Equal(t, "blog.example.com/golang-concurrency-patterns", results[0].URL)
}

func TestScoreResults_ExactTermBeatsPartial(t *testing.T) {
	results := ScoreResults("kubernetes", []domain.RawResult{
		{URL: "docs.example.com/kubernetes", Distance: 0.4},
		{URL: "docs.example.com/kubernetes-tips", Distance: 0.4},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "docs.example.com/kubernetes", results[0].URL)
	assert.Greater(t, results[0].TermScore, results[1].TermScore)
}

func TestScoreResults_ConfidenceClamped(t *testing.T) {
	results := ScoreResults("a", []domain.RawResult{
		{URL: "x.com/a", Distance: 0},
	})

	require.Len(t, results, 1)
	assert.LessOrEqual(t, results[0].Confidence, 1.0)
}

func TestTermMatchScore_NoQueryTerms(t *testing.T) {
	assert.Zero(t, termMatchScore(nil, "example.com/page"))
}

func TestTokenizeQuery_Dedupes(t *testing.T) {
	assert.Equal(t, []string{"go", "testing"}, tokenizeQuery("Go testing go GO"))
}

func TestURLTerms_UnionOfSplits(t *testing.T) {
	terms := urlTerms("Site.com/blog/machine-learning-basics")

	// Path split after dash substitution.
	assert.Contains(t, terms, "site.com")
	assert.Contains(t, terms, "blog")
	assert.Contains(t, terms, "machine learning basics")
	// Whitespace split.
	assert.Contains(t, terms, "learning")
	assert.Contains(t, terms, "basics")
}
