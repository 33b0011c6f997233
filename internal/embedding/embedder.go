// Package embedding derives fixed-width vectors for page content and
// queries. The vector is not a learned embedding: the text is first
// condensed to a semantic summary by the language model, then hashed
// word-by-word with position weighting into a 64-dimensional unit vector.
package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"math"
	"strconv"
	"strings"
)

// Dimension is the fixed width of all vectors in the index.
const Dimension = 64

const (
	summaryMaxTokens   = 256
	summaryTemperature = 0.1
)

// Summarizer condenses text into a short semantic summary.
type Summarizer interface {
	GenerateBounded(ctx context.Context, prompt string, maxTokens int32, temperature float32) (string, error)
}

// Embedder turns text into Dimension-wide vectors.
type Embedder struct {
	summarizer Summarizer
}

func NewEmbedder(summarizer Summarizer) *Embedder {
	return &Embedder{summarizer: summarizer}
}

// GenerateEmbedding summarizes the text and hashes the summary into a
// unit vector. LLM failures degrade to the zero vector so indexing
// never hard-fails on an upstream outage.
func (e *Embedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	_, vec, err := e.Summarize(ctx, text)
	return vec, err
}

// Summarize returns both the semantic summary and its hash vector, for
// callers that persist the summary alongside the embedding.
func (e *Embedder) Summarize(ctx context.Context, text string) (string, []float32, error) {
	if e.summarizer == nil {
		return "", HashVector(text), nil
	}
	summary, err := e.summarizer.GenerateBounded(ctx, summaryPrompt(text), summaryMaxTokens, summaryTemperature)
	if err != nil {
		log.Printf("embedding: summary generation failed, using zero vector: %v", err)
		return "", make([]float32, Dimension), nil
	}
	if summary == "" {
		return "", make([]float32, Dimension), nil
	}
	return summary, HashVector(summary), nil
}

func summaryPrompt(text string) string {
	return fmt.Sprintf(`Analyze this text and create a semantic representation focusing on:
1. Core topic and main ideas
2. Key entities (people, places, organizations)
3. Important facts and relationships
4. Domain-specific terminology

Text: %s

Provide a concise semantic summary that captures the essence of the content.`, text)
}

// HashVector builds the position-weighted word-hash vector for a text.
// Each of the first Dimension words contributes a per-component hash in
// [0,100) scaled by 1/(position+1), and the result is L2-normalized.
// Deterministic for a given input.
func HashVector(text string) []float32 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) > Dimension {
		words = words[:Dimension]
	}

	vec := make([]float32, Dimension)
	for i, word := range words {
		weight := 1.0 / float64(i+1)
		for j := 0; j < Dimension; j++ {
			vec[j] += float32(float64(wordHash(word, j)%100) * weight)
		}
	}

	return normalize(vec)
}

func wordHash(word string, component int) uint64 {
	h := fnv.New64a()
	h.Write([]byte(word))
	h.Write([]byte(strconv.Itoa(component)))
	return h.Sum64()
}

func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

// EnsureDimension pads with zeros or truncates so the vector fits the
// index width. Vectors already at Dimension are returned unchanged.
func EnsureDimension(vec []float32) []float32 {
	if len(vec) == Dimension {
		return vec
	}
	if len(vec) > Dimension {
		return vec[:Dimension]
	}
	padded := make([]float32, Dimension)
	copy(padded, vec)
	return padded
}
