package paint

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// OpenPaintInput is the MCP tool input schema for open_paint.
type OpenPaintInput struct{}

// DrawRectangleInput is the MCP tool input schema for draw_rectangle.
type DrawRectangleInput struct {
	X1 int `json:"x1" jsonschema:"left edge of the rectangle"`
	Y1 int `json:"y1" jsonschema:"top edge of the rectangle"`
	X2 int `json:"x2" jsonschema:"right edge of the rectangle"`
	Y2 int `json:"y2" jsonschema:"bottom edge of the rectangle"`
}

// AddTextInput is the MCP tool input schema for add_text_in_paint.
type AddTextInput struct {
	Text string `json:"text" jsonschema:"text to write"`
	X    int    `json:"x" jsonschema:"x coordinate of the text box"`
	Y    int    `json:"y" jsonschema:"y coordinate of the text box"`
}

// ToolResult reports what a paint tool did.
type ToolResult struct {
	Status string `json:"status"`
	Trace  string `json:"trace,omitempty"`
}

// NewServer builds the stdio MCP server exposing the paint tools.
func NewServer(planner *Planner, driver Driver) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "loomai-paint",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "open_paint",
		Description: "Open the paint application and wait until it is ready",
	}, newOpenPaintHandler(driver))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draw_rectangle",
		Description: "Draw a rectangle from (x1,y1) to (x2,y2) with the rectangle tool",
	}, newDrawRectangleHandler(planner, driver))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_text_in_paint",
		Description: "Write text at (x,y) with the text tool",
	}, newAddTextHandler(planner, driver))

	return server
}

// RunServer serves the paint tools over stdio until the context ends.
func RunServer(ctx context.Context, planner *Planner, driver Driver) error {
	return NewServer(planner, driver).Run(ctx, &mcp.StdioTransport{})
}

func newOpenPaintHandler(driver Driver) func(context.Context, *mcp.CallToolRequest, OpenPaintInput) (*mcp.CallToolResult, ToolResult, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ OpenPaintInput) (*mcp.CallToolResult, ToolResult, error) {
		if err := driver.OpenPaint(ctx); err != nil {
			return nil, ToolResult{}, fmt.Errorf("open paint: %w", err)
		}
		return nil, ToolResult{Status: "paint opened"}, nil
	}
}

func newDrawRectangleHandler(planner *Planner, driver Driver) func(context.Context, *mcp.CallToolRequest, DrawRectangleInput) (*mcp.CallToolResult, ToolResult, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DrawRectangleInput) (*mcp.CallToolResult, ToolResult, error) {
		plan := planner.PlanRectangle(ctx, input.X1, input.Y1, input.X2, input.Y2)
		if err := driver.Execute(ctx, plan); err != nil {
			return nil, ToolResult{}, fmt.Errorf("draw rectangle: %w", err)
		}
		return nil, ToolResult{
			Status: fmt.Sprintf("rectangle drawn from (%d,%d) to (%d,%d)", input.X1, input.Y1, input.X2, input.Y2),
			Trace:  plan.Describe(),
		}, nil
	}
}

func newAddTextHandler(planner *Planner, driver Driver) func(context.Context, *mcp.CallToolRequest, AddTextInput) (*mcp.CallToolResult, ToolResult, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AddTextInput) (*mcp.CallToolResult, ToolResult, error) {
		if input.Text == "" {
			return nil, ToolResult{}, fmt.Errorf("add text: text is required")
		}
		plan := planner.PlanText(ctx, input.Text, input.X, input.Y)
		if err := driver.Execute(ctx, plan); err != nil {
			return nil, ToolResult{}, fmt.Errorf("add text: %w", err)
		}
		return nil, ToolResult{
			Status: fmt.Sprintf("text %q written at (%d,%d)", input.Text, input.X, input.Y),
			Trace:  plan.Describe(),
		}, nil
	}
}
