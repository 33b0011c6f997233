package service

import (
	"math"
	"sort"
	"strings"

	"github.com/loomworks/loomai/internal/domain"
)

const (
	// MinConfidence is the floor below which raw matches are dropped
	// from search responses.
	MinConfidence = 0.4

	semanticWeight  = 0.7
	termMatchWeight = 0.3

	highlightMethod = "semantic_highlight"
)

// ScoreResults converts raw vector-distance matches into ranked,
// confidence-scored results. Matches below MinConfidence are dropped
// and the remainder is sorted by descending confidence.
func ScoreResults(query string, raw []domain.RawResult) []domain.ScoredResult {
	if len(raw) == 0 {
		return []domain.ScoredResult{}
	}

	queryTerms := tokenizeQuery(query)

	scored := make([]domain.ScoredResult, 0, len(raw))
	for _, r := range raw {
		semantic := 1.0 / (1.0 + r.Distance)
		term := termMatchScore(queryTerms, r.URL)

		confidence := semanticWeight*semantic + termMatchWeight*term
		confidence = clamp01(confidence)
		if confidence < MinConfidence {
			continue
		}

		scored = append(scored, domain.ScoredResult{
			URL:           r.URL,
			Confidence:    round3(confidence),
			SemanticScore: round3(semantic),
			TermScore:     round3(term),
			Highlight: domain.HighlightInstructions{
				Method:              highlightMethod,
				ConfidenceThreshold: confidence,
			},
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})
	return scored
}

// tokenizeQuery lowercases and whitespace-splits the query into a set
// of unique terms.
func tokenizeQuery(query string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	return terms
}

// urlTerms derives the set of terms a URL is matched against: the URL
// is lowercased, dashes and underscores become spaces, and the term set
// is the union of splitting on path separators and on whitespace.
func urlTerms(url string) map[string]struct{} {
	cleaned := strings.ToLower(url)
	cleaned = strings.ReplaceAll(cleaned, "-", " ")
	cleaned = strings.ReplaceAll(cleaned, "_", " ")

	terms := make(map[string]struct{})
	for _, part := range strings.Split(cleaned, "/") {
		if part != "" {
			terms[part] = struct{}{}
		}
	}
	for _, part := range strings.Fields(cleaned) {
		terms[part] = struct{}{}
	}
	return terms
}

// termMatchScore measures lexical overlap between query terms and URL
// terms. Exact and substring hits are counted independently, so a term
// present verbatim also scores its substring half-credit.
func termMatchScore(queryTerms []string, url string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}

	terms := urlTerms(url)

	var exact, partial int
	for _, qt := range queryTerms {
		if _, ok := terms[qt]; ok {
			exact++
		}
		for ut := range terms {
			if strings.Contains(ut, qt) {
				partial++
				break
			}
		}
	}

	return (float64(exact) + 0.5*float64(partial)) / float64(len(queryTerms))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
