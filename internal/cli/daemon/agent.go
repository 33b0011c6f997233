package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/loomworks/loomai/internal/agent"
	"github.com/loomworks/loomai/internal/config"
	"github.com/loomworks/loomai/internal/f1"
	"github.com/loomworks/loomai/internal/llm"
	"github.com/loomworks/loomai/internal/sheets"
)

// AgentCmd returns the agent command
func AgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run the tool-calling agent",
		Long: `Run the agent against the configured MCP servers.

With LOOM_TELEGRAM_BOT_TOKEN set the agent answers Telegram messages;
otherwise it runs a console read-eval loop.`,
		RunE: runAgent,
	}

	cmd.Flags().String("profiles", "", "Path to the MCP server profiles file (overrides LOOM_PROFILES_PATH)")
	cmd.Flags().Bool("console", false, "Force console mode even when a Telegram token is configured")

	return cmd
}

func runAgent(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	profilesPath := cfg.ProfilesPath
	if flagPath, _ := cmd.Flags().GetString("profiles"); flagPath != "" {
		profilesPath = flagPath
	}

	profiles, err := agent.LoadProfiles(profilesPath)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}

	dispatcher, err := agent.ConnectMultiMCP(ctx, profiles, logger)
	if err != nil {
		return err
	}
	defer dispatcher.Close()

	loop := agent.NewLoop(client, dispatcher, logger)
	manager := agent.NewManager(loop, f1.NewClient(), logger)

	if cfg.HasSheets() {
		publisher, err := sheets.NewPublisher(ctx, cfg.SheetsCredentialsPath)
		if err != nil {
			logger.Warn().Err(err).Msg("sheets unavailable, standings will export to xlsx")
		} else {
			manager.WithPublisher(publisher)
		}
	}

	forceConsole, _ := cmd.Flags().GetBool("console")
	if cfg.HasTelegram() && !forceConsole {
		bot, err := agent.NewTelegramBot(cfg.TelegramBotToken, manager, logger)
		if err != nil {
			return fmt.Errorf("failed to start telegram bot: %w", err)
		}
		logger.Info().Msg("agent running in telegram mode")
		if err := bot.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
		return nil
	}

	logger.Info().Msg("agent running in console mode")
	return agent.RunConsole(ctx, manager, os.Stdin, os.Stdout)
}
