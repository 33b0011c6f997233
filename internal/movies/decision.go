package movies

import (
	"context"
	"fmt"
	"strings"

	"github.com/loomworks/loomai/internal/domain"
	"github.com/loomworks/loomai/internal/llm"
)

const fallbackConfidence = 0.70

// Decider turns a perception analysis into concrete recommendations.
type Decider struct {
	client llm.Client
}

func NewDecider(client llm.Client) *Decider {
	return &Decider{client: client}
}

type decisionResponse struct {
	Recommendations []struct {
		Title       string   `json:"title"`
		Year        int      `json:"year"`
		Genres      []string `json:"genres"`
		Rating      float64  `json:"rating"`
		Description string   `json:"description"`
		Reason      string   `json:"reason"`
	} `json:"recommendations"`
	ConfidenceScore float64                `json:"confidence_score"`
	Reasoning       string                 `json:"reasoning"`
	ReasoningSteps  []domain.ReasoningStep `json:"reasoning_steps"`
}

// Decide asks the model for recommendations matching the analysis.
// Failures fall back to a curated pick keyed on the user's top genre.
func (d *Decider) Decide(ctx context.Context, prefs domain.UserPreferences, perception *domain.PerceptionOutput) *domain.DecisionOutput {
	prompt := decisionPrompt(prefs, perception)

	response, err := llm.GenerateWithTimeout(ctx, d.client, prompt, llm.DefaultTimeout)
	if err != nil {
		return fallbackDecision(prefs, fmt.Sprintf("llm error: %v", err))
	}

	var parsed decisionResponse
	if err := llm.DecodeJSON(response, &parsed); err != nil {
		return fallbackDecision(prefs, fmt.Sprintf("parse error: %v", err))
	}
	if len(parsed.Recommendations) == 0 {
		return fallbackDecision(prefs, "empty recommendation list")
	}

	recs := make([]domain.MovieRecommendation, 0, len(parsed.Recommendations))
	for _, r := range parsed.Recommendations {
		if r.Title == "" {
			continue
		}
		recs = append(recs, domain.MovieRecommendation{
			Title:       r.Title,
			Year:        r.Year,
			Genres:      r.Genres,
			Rating:      r.Rating,
			Description: r.Description,
			Reason:      r.Reason,
		})
	}
	if len(recs) == 0 {
		return fallbackDecision(prefs, "no usable recommendations")
	}

	confidence := parsed.ConfidenceScore
	if confidence <= 0 || confidence > 1 {
		confidence = fallbackConfidence
	}

	return &domain.DecisionOutput{
		Recommendations: recs,
		ConfidenceScore: confidence,
		Reasoning:       parsed.Reasoning,
		ReasoningSteps:  parsed.ReasoningSteps,
		ReasoningType:   "llm_decision",
	}
}

func decisionPrompt(prefs domain.UserPreferences, perception *domain.PerceptionOutput) string {
	var weights []string
	for k, v := range perception.AnalyzedContext {
		weights = append(weights, fmt.Sprintf("%s=%.2f", k, v))
	}

	return fmt.Sprintf(`Recommend movies for this viewer, reasoning step by step.

Viewer: %s, mood %q, favorite genres: %s, favorite movies: %s.
Context weights: %s
Analysis confidence: %s

Respond with ONLY a JSON object:
{
  "recommendations": [{"title": "...", "year": 0, "genres": ["..."], "rating": 0.0, "description": "...", "reason": "..."}],
  "confidence_score": 0.0,
  "reasoning": "...",
  "reasoning_steps": [{"step": 1, "action": "...", "reasoning": "..."}]
}`,
		prefs.Name,
		prefs.Mood,
		strings.Join(prefs.FavoriteGenres, ", "),
		strings.Join(prefs.FavoriteMovies, ", "),
		strings.Join(weights, ", "),
		perception.ConfidenceLevel,
	)
}

// fallbackDecision returns a curated pick for the user's top genre so
// the pipeline still answers when the model is unavailable.
func fallbackDecision(prefs domain.UserPreferences, reason string) *domain.DecisionOutput {
	genre := ""
	if len(prefs.FavoriteGenres) > 0 {
		genre = strings.ToLower(prefs.FavoriteGenres[0])
	}

	var rec domain.MovieRecommendation
	switch genre {
	case "comedy":
		rec = domain.MovieRecommendation{
			Title:       "The Grand Budapest Hotel",
			Year:        2014,
			Genres:      []string{"Comedy", "Drama"},
			Rating:      8.042,
			Description: "A concierge and his lobby boy are drawn into a caper around a priceless painting.",
			Reason:      "a well loved comedy with broad appeal",
		}
	case "action":
		rec = domain.MovieRecommendation{
			Title:       "Mad Max: Fury Road",
			Year:        2015,
			Genres:      []string{"Action", "Adventure"},
			Rating:      8.1,
			Description: "A relentless chase across a post-apocalyptic wasteland.",
			Reason:      "a standout modern action film",
		}
	case "drama":
		rec = domain.MovieRecommendation{
			Title:       "The Shawshank Redemption",
			Year:        1994,
			Genres:      []string{"Drama"},
			Rating:      9.3,
			Description: "Two imprisoned men bond over decades, finding solace and eventual redemption.",
			Reason:      "a universally acclaimed drama",
		}
	default:
		rec = domain.MovieRecommendation{
			Title:       "Forrest Gump",
			Year:        1994,
			Genres:      []string{"Drama", "Romance"},
			Rating:      8.8,
			Description: "Decades of American history through the eyes of an unlikely hero.",
			Reason:      "a safe crowd-pleaser across tastes",
		}
	}

	return &domain.DecisionOutput{
		Recommendations: []domain.MovieRecommendation{rec},
		ConfidenceScore: fallbackConfidence,
		Reasoning:       "model unavailable, selected a curated title for the viewer's top genre",
		ReasoningSteps: []domain.ReasoningStep{
			{Step: 1, Action: "fallback", Reasoning: "selected curated title for genre " + genre},
		},
		ReasoningType:  "fallback_decision",
		FallbackUsed:   true,
		FallbackReason: reason,
	}
}
