package paint

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectTestServer wires a client to the paint server over an
// in-memory transport pair.
func connectTestServer(t *testing.T, driver Driver) *mcp.ClientSession {
	t.Helper()

	server := NewServer(NewPlanner(nil), driver)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(context.Background(), serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	session, err := client.Connect(context.Background(), clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func TestServer_ListsPaintTools(t *testing.T) {
	session := connectTestServer(t, NewTraceDriver())

	listing, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, len(listing.Tools))
	for i, tool := range listing.Tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{"open_paint", "draw_rectangle", "add_text_in_paint"}, names)
}

func TestServer_OpenPaint(t *testing.T) {
	driver := NewTraceDriver()
	session := connectTestServer(t, driver)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "open_paint",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.True(t, driver.Opened())
}

func TestServer_DrawRectangle(t *testing.T) {
	driver := NewTraceDriver()
	session := connectTestServer(t, driver)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "draw_rectangle",
		Arguments: map[string]any{"x1": 200, "y1": 200, "x2": 600, "y2": 500},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	plans := driver.Plans()
	require.Len(t, plans, 1)
	assert.Len(t, plans[0].Actions, 6)
	assert.Equal(t, ActionPress, plans[0].Actions[3].Kind)
	assert.Equal(t, 200, plans[0].Actions[3].X)
}

func TestServer_AddText(t *testing.T) {
	driver := NewTraceDriver()
	session := connectTestServer(t, driver)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "add_text_in_paint",
		Arguments: map[string]any{"text": "Hello World", "x": 300, "y": 300},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	plans := driver.Plans()
	require.Len(t, plans, 1)
	assert.Equal(t, "Hello World", plans[0].Actions[2].Keys)
}

func TestServer_AddTextRequiresText(t *testing.T) {
	session := connectTestServer(t, NewTraceDriver())

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "add_text_in_paint",
		Arguments: map[string]any{"text": "", "x": 1, "y": 1},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestPaintArguments(t *testing.T) {
	args, err := paintArguments("draw_rectangle", []string{"200", "200", "600", "500"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x1": 200, "y1": 200, "x2": 600, "y2": 500}, args)

	args, err = paintArguments("add_text_in_paint", []string{"Hello World", "300", "300"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"text": "Hello World", "x": 300, "y": 300}, args)

	args, err = paintArguments("open_paint", nil)
	require.NoError(t, err)
	assert.Empty(t, args)

	_, err = paintArguments("draw_rectangle", []string{"1", "2"})
	require.Error(t, err)

	_, err = paintArguments("draw_rectangle", []string{"a", "b", "c", "d"})
	require.Error(t, err)

	_, err = paintArguments("erase_canvas", nil)
	require.Error(t, err)
}
