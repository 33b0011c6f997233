package movies

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/loomworks/loomai/internal/domain"
	"github.com/loomworks/loomai/internal/tmdb"
)

const enrichWorkers = 4

// MovieAPI is the subset of the TMDB client the action stage needs.
type MovieAPI interface {
	SearchMovie(ctx context.Context, query string) ([]tmdb.Movie, error)
	GetMovie(ctx context.Context, id int) (*tmdb.Movie, error)
}

// Actor enriches and presents the decision's recommendations.
type Actor struct {
	api MovieAPI
}

func NewActor(api MovieAPI) *Actor {
	return &Actor{api: api}
}

// Execute enriches recommendations with live metadata where a movie
// API is configured. Enrichment failures leave the model's own fields
// in place.
func (a *Actor) Execute(ctx context.Context, decision *domain.DecisionOutput) *domain.ActionOutput {
	movies := make([]domain.MovieRecommendation, len(decision.Recommendations))
	copy(movies, decision.Recommendations)

	if a.api != nil && len(movies) > 0 {
		a.enrich(ctx, movies)
	}

	return &domain.ActionOutput{
		Movies:    movies,
		Success:   len(movies) > 0,
		Details:   fmt.Sprintf("prepared %d recommendations (confidence %.2f)", len(movies), decision.ConfidenceScore),
		NextSteps: nextSteps(decision),
	}
}

// enrich fetches details for all titles concurrently through a small
// worker pool.
func (a *Actor) enrich(ctx context.Context, movies []domain.MovieRecommendation) {
	pool, err := ants.NewPool(enrichWorkers)
	if err != nil {
		log.Printf("movies: worker pool unavailable, enriching serially: %v", err)
		for i := range movies {
			a.enrichOne(ctx, &movies[i])
		}
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range movies {
		rec := &movies[i]
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			a.enrichOne(ctx, rec)
		}); err != nil {
			wg.Done()
			log.Printf("movies: submit failed for %q: %v", rec.Title, err)
		}
	}
	wg.Wait()
}

func (a *Actor) enrichOne(ctx context.Context, rec *domain.MovieRecommendation) {
	results, err := a.api.SearchMovie(ctx, rec.Title)
	if err != nil || len(results) == 0 {
		if err != nil {
			log.Printf("movies: enrichment lookup failed for %q: %v", rec.Title, err)
		}
		return
	}

	match := results[0]
	if rec.Year == 0 {
		rec.Year = match.Year()
	}
	if rec.Rating == 0 {
		rec.Rating = match.VoteAverage
	}
	if rec.Description == "" {
		rec.Description = match.Overview
	}

	if len(rec.Genres) == 0 {
		detail, err := a.api.GetMovie(ctx, match.ID)
		if err != nil {
			return
		}
		for _, g := range detail.Genres {
			rec.Genres = append(rec.Genres, g.Name)
		}
	}
}

func nextSteps(decision *domain.DecisionOutput) []string {
	steps := []string{
		"Watch a trailer for the top pick",
		"Check streaming availability in your region",
	}
	if decision.FallbackUsed {
		steps = append(steps, "Retry later for personalized picks")
	}
	return steps
}

// Format renders the action output for terminal display.
func Format(out *domain.ActionOutput) string {
	var b strings.Builder

	if !out.Success {
		b.WriteString("No recommendations available right now.\n")
		return b.String()
	}

	b.WriteString("Recommended for you:\n\n")
	for i, m := range out.Movies {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, m.Title))
		if m.Year > 0 {
			b.WriteString(fmt.Sprintf(" (%d)", m.Year))
		}
		if m.Rating > 0 {
			b.WriteString(fmt.Sprintf(" - %.1f/10", m.Rating))
		}
		b.WriteString("\n")
		if len(m.Genres) > 0 {
			b.WriteString("   Genres: " + strings.Join(m.Genres, ", ") + "\n")
		}
		if m.Description != "" {
			b.WriteString("   " + m.Description + "\n")
		}
		if m.Reason != "" {
			b.WriteString("   Why: " + m.Reason + "\n")
		}
		b.WriteString("\n")
	}

	if len(out.NextSteps) > 0 {
		b.WriteString("Next steps:\n")
		for _, s := range out.NextSteps {
			b.WriteString("  - " + s + "\n")
		}
	}

	return b.String()
}
