package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomworks/loomai/internal/cli"
	"github.com/loomworks/loomai/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "loom",
		Short: "Loom CLI - semantic memory for your browsing",
		Long: `Loom CLI provides commands to index pages, search them, and run the
bundled agents.

Environment variables:
  LOOM_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.ProcessCmd())
	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.MoviesCmd())
	rootCmd.AddCommand(client.PaintCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
