// Package paint plans and executes input-automation sequences for a
// paint application, exposed as MCP tools.
package paint

import (
	"fmt"
	"strings"
)

// ActionKind enumerates the supported input actions.
type ActionKind string

const (
	ActionClick   ActionKind = "click"
	ActionPress   ActionKind = "press"
	ActionMove    ActionKind = "move"
	ActionRelease ActionKind = "release"
	ActionType    ActionKind = "type"
)

// Action is one input event in a plan. Coordinate actions use X/Y,
// type actions use Keys. DelayMs is the pause after the action.
type Action struct {
	Kind    ActionKind `json:"action"`
	X       int        `json:"x,omitempty"`
	Y       int        `json:"y,omitempty"`
	Keys    string     `json:"keys,omitempty"`
	DelayMs int        `json:"delay_ms,omitempty"`
}

// Plan is an ordered action sequence implementing one operation.
type Plan struct {
	Actions []Action `json:"actions"`
}

// Validate rejects plans with unknown kinds or malformed fields.
func (p Plan) Validate() error {
	for i, a := range p.Actions {
		switch a.Kind {
		case ActionClick, ActionPress, ActionMove, ActionRelease:
			if a.X < 0 || a.Y < 0 {
				return fmt.Errorf("action %d: negative coordinates (%d,%d)", i, a.X, a.Y)
			}
		case ActionType:
			if a.Keys == "" {
				return fmt.Errorf("action %d: type action has no keys", i)
			}
		default:
			return fmt.Errorf("action %d: unknown action kind %q", i, a.Kind)
		}
		if a.DelayMs < 0 {
			return fmt.Errorf("action %d: negative delay", i)
		}
	}
	return nil
}

func (a Action) String() string {
	if a.Kind == ActionType {
		return fmt.Sprintf("type(%q)", a.Keys)
	}
	return fmt.Sprintf("%s(%d,%d)", a.Kind, a.X, a.Y)
}

// Describe renders the plan as a compact one-line trace.
func (p Plan) Describe() string {
	parts := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
