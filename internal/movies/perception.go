// Package movies implements a perception/decision/action pipeline for
// movie recommendations, backed by a language model with deterministic
// fallbacks so the pipeline always produces an answer.
package movies

import (
	"context"
	"fmt"
	"strings"

	"github.com/loomworks/loomai/internal/domain"
	"github.com/loomworks/loomai/internal/llm"
)

// Perceptor analyzes user preferences into a weighted context.
type Perceptor struct {
	client llm.Client
}

func NewPerceptor(client llm.Client) *Perceptor {
	return &Perceptor{client: client}
}

type perceptionResponse struct {
	AnalyzedContext     map[string]float64     `json:"analyzed_context"`
	RelevantPreferences []string               `json:"relevant_preferences"`
	ReasoningSteps      []domain.ReasoningStep `json:"reasoning_steps"`
	ConfidenceLevel     string                 `json:"confidence_level"`
}

// Analyze asks the model to weigh the user's preferences against the
// current context. Any model or parse failure produces the fallback
// analysis instead of an error.
func (p *Perceptor) Analyze(ctx context.Context, prefs domain.UserPreferences, currentContext string) *domain.PerceptionOutput {
	prompt := perceptionPrompt(prefs, currentContext)

	response, err := llm.GenerateWithTimeout(ctx, p.client, prompt, llm.DefaultTimeout)
	if err != nil {
		return fallbackPerception(currentContext, fmt.Sprintf("llm error: %v", err))
	}

	var parsed perceptionResponse
	if err := llm.DecodeJSON(response, &parsed); err != nil {
		return fallbackPerception(currentContext, fmt.Sprintf("parse error: %v", err))
	}
	if len(parsed.AnalyzedContext) == 0 {
		return fallbackPerception(currentContext, "empty analyzed context")
	}

	confidence := domain.ConfidenceLevel(strings.ToUpper(parsed.ConfidenceLevel))
	switch confidence {
	case domain.ConfidenceHigh, domain.ConfidenceMedium, domain.ConfidenceLow:
	default:
		confidence = domain.ConfidenceMedium
	}

	return &domain.PerceptionOutput{
		AnalyzedContext:     parsed.AnalyzedContext,
		RelevantPreferences: parsed.RelevantPreferences,
		ReasoningSteps:      parsed.ReasoningSteps,
		ConfidenceLevel:     confidence,
		ReasoningType:       "llm_analysis",
		CurrentContext:      currentContext,
	}
}

func perceptionPrompt(prefs domain.UserPreferences, currentContext string) string {
	return fmt.Sprintf(`Analyze these movie preferences step by step.

User profile:
- Name: %s
- Location: %s
- Favorite genres: %s
- Favorite movies: %s
- Preferred languages: %s
- Current mood: %s
- Context: %s

Reason through: 1) which genres matter most right now, 2) how the mood
shifts the weighting, 3) language constraints, 4) how recent the
recommendations should be.

Respond with ONLY a JSON object:
{
  "analyzed_context": {"genre_relevance": 0.0, "mood_alignment": 0.0, "language_match": 0.0, "temporal_relevance": 0.0},
  "relevant_preferences": ["..."],
  "reasoning_steps": [{"step": 1, "action": "...", "reasoning": "..."}],
  "confidence_level": "HIGH|MEDIUM|LOW"
}`,
		prefs.Name,
		prefs.Location,
		strings.Join(prefs.FavoriteGenres, ", "),
		strings.Join(prefs.FavoriteMovies, ", "),
		strings.Join(prefs.PreferredLanguages, ", "),
		prefs.Mood,
		currentContext,
	)
}

func fallbackPerception(currentContext, reason string) *domain.PerceptionOutput {
	return &domain.PerceptionOutput{
		AnalyzedContext: map[string]float64{
			"genre_relevance":    0.8,
			"mood_alignment":     0.7,
			"language_match":     0.9,
			"temporal_relevance": 0.6,
		},
		RelevantPreferences: []string{"favorite_genres", "mood"},
		ReasoningSteps: []domain.ReasoningStep{
			{Step: 1, Action: "fallback", Reasoning: "model analysis unavailable, using default weights"},
		},
		ConfidenceLevel: domain.ConfidenceLow,
		ReasoningType:   "fallback_analysis",
		FallbackUsed:    true,
		FallbackReason:  reason,
		CurrentContext:  currentContext,
	}
}
