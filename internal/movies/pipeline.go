package movies

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/loomworks/loomai/internal/domain"
	"github.com/loomworks/loomai/internal/llm"
)

// Pipeline runs the full perceive/recall/decide/act cycle for one
// recommendation request.
type Pipeline struct {
	perceptor *Perceptor
	decider   *Decider
	actor     *Actor
	memory    *MemoryStore
}

func NewPipeline(client llm.Client, api MovieAPI, memory *MemoryStore) *Pipeline {
	return &Pipeline{
		perceptor: NewPerceptor(client),
		decider:   NewDecider(client),
		actor:     NewActor(api),
		memory:    memory,
	}
}

// Result bundles the stage outputs for display.
type Result struct {
	Perception *domain.PerceptionOutput
	Decision   *domain.DecisionOutput
	Action     *domain.ActionOutput
	Memories   *domain.MemoryOutput
}

// Recommend produces a recommendation set for the given preferences.
// Every stage degrades rather than fails, so the pipeline always
// returns a result.
func (p *Pipeline) Recommend(ctx context.Context, prefs domain.UserPreferences, currentContext string) *Result {
	perception := p.perceptor.Analyze(ctx, prefs, currentContext)

	var memories *domain.MemoryOutput
	if p.memory != nil {
		var err error
		memories, err = p.memory.Recall(ctx, currentContext, 5)
		if err != nil {
			log.Printf("movies: memory recall failed: %v", err)
		}
	}

	decision := p.decider.Decide(ctx, prefs, perception)
	action := p.actor.Execute(ctx, decision)

	if p.memory != nil {
		titles := make([]string, 0, len(action.Movies))
		for _, m := range action.Movies {
			titles = append(titles, m.Title)
		}
		if err := p.memory.Record(ctx, domain.MemoryItem{
			Timestamp:   time.Now().UTC(),
			Context:     currentContext,
			ActionTaken: "recommended: " + strings.Join(titles, ", "),
		}); err != nil {
			log.Printf("movies: memory record failed: %v", err)
		}
	}

	return &Result{
		Perception: perception,
		Decision:   decision,
		Action:     action,
		Memories:   memories,
	}
}
