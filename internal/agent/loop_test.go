package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM returns canned responses in order.
type scriptedLLM struct {
	responses []string
	err       error
	prompts   []string
}

func (s *scriptedLLM) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("no scripted responses left")
	}
	response := s.responses[0]
	s.responses = s.responses[1:]
	return response, nil
}

type fakeDispatcher struct {
	description string
	results     map[string]string
	err         error
	calls       []string
}

func (f *fakeDispatcher) DescribeTools() string { return f.description }

func (f *fakeDispatcher) CallTool(_ context.Context, name string, args []string) (string, error) {
	f.calls = append(f.calls, fmt.Sprintf("%s(%v)", name, args))
	if f.err != nil {
		return "", f.err
	}
	return f.results[name], nil
}

func TestLoop_FinalAnswerImmediately(t *testing.T) {
	client := &scriptedLLM{responses: []string{"FINAL_ANSWER: The capital of France is Paris."}}
	loop := NewLoop(client, &fakeDispatcher{description: "- none\n"}, zerolog.Nop())

	answer, err := loop.Run(context.Background(), "capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "The capital of France is Paris.", answer)
}

func TestLoop_ToolCallThenAnswer(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		"TOOL_CALL: draw_rectangle|200|200|600|500",
		"FINAL_ANSWER: Rectangle drawn.",
	}}
	dispatcher := &fakeDispatcher{
		description: "- draw_rectangle|x1|y1|x2|y2: draws a rectangle\n",
		results:     map[string]string{"draw_rectangle": "ok"},
	}
	loop := NewLoop(client, dispatcher, zerolog.Nop())

	answer, err := loop.Run(context.Background(), "draw a rectangle")
	require.NoError(t, err)
	assert.Equal(t, "Rectangle drawn.", answer)
	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, "draw_rectangle([200 200 600 500])", dispatcher.calls[0])

	// Second prompt carries the first step's result.
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[1], "called draw_rectangle(200, 200, 600, 500) -> ok")
}

func TestLoop_ToolErrorFedBack(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		"TOOL_CALL: missing_tool",
		"FINAL_ANSWER: I could not use that tool.",
	}}
	dispatcher := &fakeDispatcher{err: errors.New("unknown tool")}
	loop := NewLoop(client, dispatcher, zerolog.Nop())

	answer, err := loop.Run(context.Background(), "use a tool")
	require.NoError(t, err)
	assert.Equal(t, "I could not use that tool.", answer)
	assert.Contains(t, client.prompts[1], "error: unknown tool")
}

func TestLoop_UnprefixedResponseIsAnswer(t *testing.T) {
	client := &scriptedLLM{responses: []string{"Just a plain reply."}}
	loop := NewLoop(client, &fakeDispatcher{}, zerolog.Nop())

	answer, err := loop.Run(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Just a plain reply.", answer)
}

func TestLoop_MaxStepsExceeded(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		"TOOL_CALL: open_paint",
		"TOOL_CALL: open_paint",
	}}
	dispatcher := &fakeDispatcher{results: map[string]string{"open_paint": "opened"}}
	loop := NewLoop(client, dispatcher, zerolog.Nop()).WithMaxSteps(2)

	_, err := loop.Run(context.Background(), "keep painting")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no final answer after 2 steps")
}

func TestLoop_LLMError(t *testing.T) {
	client := &scriptedLLM{err: errors.New("quota exceeded")}
	loop := NewLoop(client, &fakeDispatcher{}, zerolog.Nop())

	_, err := loop.Run(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent step 1")
}

func TestParseToolCall(t *testing.T) {
	name, args := parseToolCall(" add_text_in_paint|Hello World|300|300 ")
	assert.Equal(t, "add_text_in_paint", name)
	assert.Equal(t, []string{"Hello World", "300", "300"}, args)

	name, args = parseToolCall("open_paint")
	assert.Equal(t, "open_paint", name)
	assert.Empty(t, args)
}
