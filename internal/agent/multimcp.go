// Package agent runs a tool-calling agent over one or more MCP servers,
// reachable from a console loop or a Telegram bot.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ServerProfile describes how to launch one stdio MCP server.
type ServerProfile struct {
	ID      string   `yaml:"id"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Cwd     string   `yaml:"cwd"`
}

// Profiles is the on-disk MCP server configuration.
type Profiles struct {
	MCPServers []ServerProfile `yaml:"mcp_servers"`
}

// LoadProfiles reads the MCP server profiles from a YAML file.
func LoadProfiles(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	var profiles Profiles
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if len(profiles.MCPServers) == 0 {
		return nil, fmt.Errorf("profiles %s declare no mcp_servers", path)
	}
	return &profiles, nil
}

// ToolDispatcher lists available tools and executes calls by name.
type ToolDispatcher interface {
	DescribeTools() string
	CallTool(ctx context.Context, name string, args []string) (string, error)
}

type remoteTool struct {
	serverID string
	session  *mcp.ClientSession
	tool     *mcp.Tool
}

// MultiMCP connects to every configured MCP server over stdio and
// routes tool calls to whichever server advertises the tool.
type MultiMCP struct {
	logger   zerolog.Logger
	sessions []*mcp.ClientSession
	tools    map[string]remoteTool
	order    []string
}

// ConnectMultiMCP launches the configured servers and aggregates their
// tool listings. Callers must Close the dispatcher when done.
func ConnectMultiMCP(ctx context.Context, profiles *Profiles, logger zerolog.Logger) (*MultiMCP, error) {
	d := &MultiMCP{
		logger: logger,
		tools:  make(map[string]remoteTool),
	}

	for _, profile := range profiles.MCPServers {
		cmd := exec.Command(profile.Command, profile.Args...)
		if profile.Cwd != "" {
			cmd.Dir = profile.Cwd
		}

		client := mcp.NewClient(&mcp.Implementation{Name: "loomai-agent", Version: "1.0.0"}, nil)
		session, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("connect mcp server %s: %w", profile.ID, err)
		}
		d.sessions = append(d.sessions, session)

		listing, err := session.ListTools(ctx, nil)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("list tools on %s: %w", profile.ID, err)
		}

		for _, tool := range listing.Tools {
			if _, exists := d.tools[tool.Name]; exists {
				logger.Warn().Str("tool", tool.Name).Str("server", profile.ID).
					Msg("duplicate tool name, keeping first registration")
				continue
			}
			d.tools[tool.Name] = remoteTool{serverID: profile.ID, session: session, tool: tool}
			d.order = append(d.order, tool.Name)
		}

		logger.Info().Str("server", profile.ID).Int("tools", len(listing.Tools)).
			Msg("mcp server connected")
	}

	return d, nil
}

func (d *MultiMCP) Close() {
	for _, session := range d.sessions {
		_ = session.Close()
	}
}

// DescribeTools renders the aggregated tool listing for a model prompt.
func (d *MultiMCP) DescribeTools() string {
	var b strings.Builder
	for _, name := range d.order {
		rt := d.tools[name]
		b.WriteString("- ")
		b.WriteString(name)
		if params := schemaParams(toolSchema(rt.tool.InputSchema)); len(params) > 0 {
			b.WriteString("|" + strings.Join(params, "|"))
		}
		if rt.tool.Description != "" {
			b.WriteString(": " + rt.tool.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// CallTool routes a positional-argument call to the owning server and
// returns the concatenated text content of the result.
func (d *MultiMCP) CallTool(ctx context.Context, name string, args []string) (string, error) {
	rt, ok := d.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	arguments := buildArguments(toolSchema(rt.tool.InputSchema), args)
	d.logger.Debug().Str("tool", name).Str("server", rt.serverID).Msg("calling tool")

	result, err := rt.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: arguments})
	if err != nil {
		return "", fmt.Errorf("call tool %s: %w", name, err)
	}

	text := resultText(result)
	if result.IsError {
		return "", fmt.Errorf("tool %s failed: %s", name, text)
	}
	return text, nil
}

// toolSchema converts the SDK's untyped input schema (a *jsonschema.Schema
// on the server side, a map[string]any when received by a client) into a
// *jsonschema.Schema, returning nil when it cannot be interpreted.
func toolSchema(input any) *jsonschema.Schema {
	switch s := input.(type) {
	case nil:
		return nil
	case *jsonschema.Schema:
		return s
	}
	raw, err := json.Marshal(input)
	if err != nil {
		return nil
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil
	}
	return &schema
}

// schemaParams returns the tool's parameter names in declaration order,
// required parameters first.
func schemaParams(schema *jsonschema.Schema) []string {
	if schema == nil {
		return nil
	}
	params := append([]string(nil), schema.Required...)
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		seen[p] = struct{}{}
	}
	for name := range schema.Properties {
		if _, ok := seen[name]; !ok {
			params = append(params, name)
		}
	}
	return params
}

// buildArguments maps positional string arguments onto the tool's
// schema, converting numerics where the schema asks for them.
func buildArguments(schema *jsonschema.Schema, args []string) map[string]any {
	arguments := make(map[string]any)
	params := schemaParams(schema)

	for i, arg := range args {
		if i >= len(params) {
			break
		}
		name := params[i]
		arguments[name] = convertArgument(schema, name, arg)
	}
	return arguments
}

func convertArgument(schema *jsonschema.Schema, name, value string) any {
	if schema == nil || schema.Properties == nil {
		return value
	}
	prop, ok := schema.Properties[name]
	if !ok {
		return value
	}

	switch prop.Type {
	case "integer":
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	case "number":
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return value
}

func resultText(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}
