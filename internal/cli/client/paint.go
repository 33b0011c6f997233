package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomworks/loomai/internal/config"
	"github.com/loomworks/loomai/internal/llm"
	"github.com/loomworks/loomai/internal/paint"
)

// PaintCmd creates the paint command.
func PaintCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "paint <instruction>",
		Short: "Run a paint instruction through the MCP server",
		Long: `Spawns the paint MCP server, translates the instruction into a tool
call with the model, and executes it.

Examples:
  loom paint "open paint"
  loom paint "draw a rectangle from 200,200 to 600,500"
  loom paint "write Hello World at 300,300"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaint(server, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&server, "server", "loomd", "Paint MCP server binary to spawn")

	return cmd
}

func runPaint(server, instruction string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}

	client, err := paint.Connect(ctx, llmClient, server, "paint-server")
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := client.Run(ctx, instruction)
	if err != nil {
		return err
	}

	fmt.Println(result)
	return nil
}
