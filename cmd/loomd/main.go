package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomworks/loomai/internal/cli"
	"github.com/loomworks/loomai/internal/cli/daemon"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loomd",
		Short: "Loom daemon",
		Long:  "Loom daemon for running the indexing API server, the tool-calling agent, and the paint MCP server",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(daemon.ServeCmd())
	rootCmd.AddCommand(daemon.AgentCmd())
	rootCmd.AddCommand(daemon.PaintServerCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
