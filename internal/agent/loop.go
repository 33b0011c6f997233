package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/loomworks/loomai/internal/llm"
)

const (
	toolCallPrefix    = "TOOL_CALL:"
	finalAnswerPrefix = "FINAL_ANSWER:"

	// DefaultMaxSteps bounds the tool-call iterations per query.
	DefaultMaxSteps = 5
)

// Loop iterates model turns against the available tools until the
// model produces a final answer.
type Loop struct {
	client     llm.Client
	dispatcher ToolDispatcher
	logger     zerolog.Logger
	maxSteps   int
}

func NewLoop(client llm.Client, dispatcher ToolDispatcher, logger zerolog.Logger) *Loop {
	return &Loop{
		client:     client,
		dispatcher: dispatcher,
		logger:     logger,
		maxSteps:   DefaultMaxSteps,
	}
}

// WithMaxSteps overrides the iteration bound.
func (l *Loop) WithMaxSteps(n int) *Loop {
	if n > 0 {
		l.maxSteps = n
	}
	return l
}

// Run answers a query, executing tool calls the model requests along
// the way. Prior step results are fed back into the next prompt.
func (l *Loop) Run(ctx context.Context, query string) (string, error) {
	var history []string

	for step := 1; step <= l.maxSteps; step++ {
		prompt := l.buildPrompt(query, history)

		response, err := llm.GenerateWithTimeout(ctx, l.client, prompt, llm.DefaultTimeout)
		if err != nil {
			return "", fmt.Errorf("agent step %d: %w", step, err)
		}
		response = strings.TrimSpace(response)

		if answer, ok := strings.CutPrefix(response, finalAnswerPrefix); ok {
			return strings.TrimSpace(answer), nil
		}

		if call, ok := strings.CutPrefix(response, toolCallPrefix); ok {
			name, args := parseToolCall(call)
			l.logger.Info().Int("step", step).Str("tool", name).Strs("args", args).
				Msg("executing tool call")

			result, err := l.dispatcher.CallTool(ctx, name, args)
			if err != nil {
				result = fmt.Sprintf("error: %v", err)
			}
			history = append(history, fmt.Sprintf("Step %d: called %s(%s) -> %s",
				step, name, strings.Join(args, ", "), result))
			continue
		}

		// No recognized prefix, treat the whole response as the answer.
		return response, nil
	}

	return "", fmt.Errorf("no final answer after %d steps", l.maxSteps)
}

func (l *Loop) buildPrompt(query string, history []string) string {
	var b strings.Builder

	b.WriteString("You are an assistant with access to these tools:\n")
	b.WriteString(l.dispatcher.DescribeTools())
	b.WriteString(`
Respond with EXACTLY ONE line in one of these formats:
TOOL_CALL: tool_name|arg1|arg2|...
FINAL_ANSWER: your answer to the user
`)

	if len(history) > 0 {
		b.WriteString("\nPrevious steps:\n")
		for _, h := range history {
			b.WriteString(h + "\n")
		}
	}

	b.WriteString("\nUser query: " + query + "\n")
	return b.String()
}

// parseToolCall splits "name|arg|arg" into the tool name and its
// positional arguments.
func parseToolCall(call string) (string, []string) {
	parts := strings.Split(strings.TrimSpace(call), "|")
	name := strings.TrimSpace(parts[0])

	var args []string
	for _, p := range parts[1:] {
		args = append(args, strings.TrimSpace(p))
	}
	return name, args
}
