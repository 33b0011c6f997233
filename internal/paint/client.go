package paint

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/loomworks/loomai/internal/llm"
)

// Client drives the paint MCP server from natural-language commands.
type Client struct {
	llm     llm.Client
	session *mcp.ClientSession
}

// Connect spawns the paint server process and opens an MCP session to
// it over stdio.
func Connect(ctx context.Context, llmClient llm.Client, command string, args ...string) (*Client, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "loomai-paint-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: exec.Command(command, args...)}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect paint server: %w", err)
	}
	return &Client{llm: llmClient, session: session}, nil
}

func (c *Client) Close() error {
	return c.session.Close()
}

// Run translates an instruction into a tool call, executes it, and
// returns the tool's reply text.
func (c *Client) Run(ctx context.Context, instruction string) (string, error) {
	listing, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("list paint tools: %w", err)
	}

	call, err := c.translate(ctx, instruction, listing.Tools)
	if err != nil {
		return "", err
	}

	name, args := splitCall(call)
	arguments, err := paintArguments(name, args)
	if err != nil {
		return "", err
	}

	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: arguments})
	if err != nil {
		return "", fmt.Errorf("call %s: %w", name, err)
	}

	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	text := strings.Join(parts, "\n")
	if result.IsError {
		return "", fmt.Errorf("%s failed: %s", name, text)
	}
	return text, nil
}

func (c *Client) translate(ctx context.Context, instruction string, tools []*mcp.Tool) (string, error) {
	var listing strings.Builder
	for _, tool := range tools {
		listing.WriteString(fmt.Sprintf("- %s: %s\n", tool.Name, tool.Description))
	}

	prompt := fmt.Sprintf(`Translate the instruction into exactly one tool call.

Available tools:
%s
Formats:
TOOL_CALL: open_paint
TOOL_CALL: draw_rectangle|x1|y1|x2|y2
TOOL_CALL: add_text_in_paint|text|x|y

Instruction: %s

Respond with ONLY the TOOL_CALL line.`, listing.String(), instruction)

	response, err := llm.GenerateWithTimeout(ctx, c.llm, prompt, llm.DefaultTimeout)
	if err != nil {
		return "", fmt.Errorf("translate instruction: %w", err)
	}

	response = strings.TrimSpace(response)
	call, ok := strings.CutPrefix(response, "TOOL_CALL:")
	if !ok {
		return "", fmt.Errorf("model did not produce a tool call: %q", response)
	}
	return strings.TrimSpace(call), nil
}

func splitCall(call string) (string, []string) {
	parts := strings.Split(call, "|")
	name := strings.TrimSpace(parts[0])

	var args []string
	for _, p := range parts[1:] {
		args = append(args, strings.TrimSpace(p))
	}
	return name, args
}

// paintArguments maps positional tool-call arguments onto the named
// schemas of the three paint tools.
func paintArguments(name string, args []string) (map[string]any, error) {
	switch name {
	case "open_paint":
		return map[string]any{}, nil

	case "draw_rectangle":
		if len(args) != 4 {
			return nil, fmt.Errorf("draw_rectangle expects 4 arguments, got %d", len(args))
		}
		coords := make([]int, 4)
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return nil, fmt.Errorf("draw_rectangle argument %d: %w", i+1, err)
			}
			coords[i] = n
		}
		return map[string]any{"x1": coords[0], "y1": coords[1], "x2": coords[2], "y2": coords[3]}, nil

	case "add_text_in_paint":
		if len(args) != 3 {
			return nil, fmt.Errorf("add_text_in_paint expects 3 arguments, got %d", len(args))
		}
		x, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("add_text_in_paint x: %w", err)
		}
		y, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("add_text_in_paint y: %w", err)
		}
		return map[string]any{"text": args[0], "x": x, "y": y}, nil

	default:
		return nil, fmt.Errorf("unknown paint tool %q", name)
	}
}
