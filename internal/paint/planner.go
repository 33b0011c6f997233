package paint

import (
	"context"
	"fmt"
	"log"

	"github.com/loomworks/loomai/internal/llm"
)

// Toolbar coordinates for the paint window at its default layout.
const (
	textToolX = 341
	textToolY = 95

	rectangleToolX = 535
	rectangleToolY = 95

	outlineX = 1207
	outlineY = 195

	blackX = 755
	blackY = 82
)

const defaultDelayMs = 500

// Planner turns drawing operations into action plans, asking the model
// first and falling back to the static plans when it declines.
type Planner struct {
	client llm.Client
}

func NewPlanner(client llm.Client) *Planner {
	return &Planner{client: client}
}

// PlanRectangle returns an action plan that draws a rectangle from
// (x1,y1) to (x2,y2).
func (p *Planner) PlanRectangle(ctx context.Context, x1, y1, x2, y2 int) Plan {
	operation := fmt.Sprintf("draw a rectangle from (%d,%d) to (%d,%d) using the rectangle tool", x1, y1, x2, y2)
	if plan, ok := p.planWithModel(ctx, operation); ok {
		return plan
	}
	return fallbackRectanglePlan(x1, y1, x2, y2)
}

// PlanText returns an action plan that writes text at (x,y).
func (p *Planner) PlanText(ctx context.Context, text string, x, y int) Plan {
	operation := fmt.Sprintf("write the text %q at (%d,%d) using the text tool", text, x, y)
	if plan, ok := p.planWithModel(ctx, operation); ok {
		return plan
	}
	return fallbackTextPlan(text, x, y)
}

func (p *Planner) planWithModel(ctx context.Context, operation string) (Plan, bool) {
	if p.client == nil {
		return Plan{}, false
	}

	response, err := llm.GenerateWithTimeout(ctx, p.client, planPrompt(operation), llm.DefaultTimeout)
	if err != nil {
		log.Printf("paint: plan generation failed, using fallback: %v", err)
		return Plan{}, false
	}

	var plan Plan
	if err := llm.DecodeJSON(response, &plan); err != nil {
		log.Printf("paint: plan response unusable, using fallback: %v", err)
		return Plan{}, false
	}
	if len(plan.Actions) == 0 {
		return Plan{}, false
	}
	if err := plan.Validate(); err != nil {
		log.Printf("paint: plan invalid, using fallback: %v", err)
		return Plan{}, false
	}
	return plan, true
}

func planPrompt(operation string) string {
	return fmt.Sprintf(`Plan mouse and keyboard actions for a paint application.

Toolbar coordinates:
- text tool: (%d,%d)
- rectangle tool: (%d,%d)
- outline style: (%d,%d)
- black color: (%d,%d)

Operation: %s

Respond with ONLY a JSON object:
{"actions": [{"action": "click|press|move|release", "x": 0, "y": 0, "delay_ms": 0}, {"action": "type", "keys": "...", "delay_ms": 0}]}`,
		textToolX, textToolY,
		rectangleToolX, rectangleToolY,
		outlineX, outlineY,
		blackX, blackY,
		operation,
	)
}

func fallbackRectanglePlan(x1, y1, x2, y2 int) Plan {
	return Plan{Actions: []Action{
		{Kind: ActionClick, X: rectangleToolX, Y: rectangleToolY, DelayMs: defaultDelayMs},
		{Kind: ActionClick, X: outlineX, Y: outlineY, DelayMs: defaultDelayMs},
		{Kind: ActionClick, X: blackX, Y: blackY, DelayMs: defaultDelayMs},
		{Kind: ActionPress, X: x1, Y: y1, DelayMs: defaultDelayMs},
		{Kind: ActionMove, X: x2, Y: y2, DelayMs: defaultDelayMs},
		{Kind: ActionRelease, X: x2, Y: y2, DelayMs: defaultDelayMs},
	}}
}

func fallbackTextPlan(text string, x, y int) Plan {
	return Plan{Actions: []Action{
		{Kind: ActionClick, X: textToolX, Y: textToolY, DelayMs: defaultDelayMs},
		{Kind: ActionClick, X: x, Y: y, DelayMs: defaultDelayMs},
		{Kind: ActionType, Keys: text, DelayMs: defaultDelayMs},
	}}
}
