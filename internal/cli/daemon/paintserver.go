package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/loomworks/loomai/internal/config"
	"github.com/loomworks/loomai/internal/llm"
	"github.com/loomworks/loomai/internal/paint"
)

// PaintServerCmd returns the paint-server command
func PaintServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paint-server",
		Short: "Serve the paint automation tools over stdio MCP",
		Long:  "Expose open_paint, draw_rectangle, and add_text_in_paint as MCP tools on stdin/stdout",
		RunE:  runPaintServer,
	}
}

func runPaintServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Planning works without a model, the static plans cover both tools.
	var client llm.Client
	if cfg.HasGemini() || cfg.HasOpenAI() {
		client, err = llm.NewClient(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create llm client: %w", err)
		}
	}

	err = paint.RunServer(ctx, paint.NewPlanner(client), paint.NewTraceDriver())
	if err != nil && !errors.Is(err, io.EOF) && !strings.Contains(err.Error(), "server is closing") {
		return err
	}
	return nil
}
