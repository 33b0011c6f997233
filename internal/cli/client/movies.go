package client

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/loomworks/loomai/internal/config"
	"github.com/loomworks/loomai/internal/domain"
	"github.com/loomworks/loomai/internal/llm"
	"github.com/loomworks/loomai/internal/movies"
	"github.com/loomworks/loomai/internal/tmdb"
)

// MoviesCmd creates the movies command.
func MoviesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movies",
		Short: "Get movie recommendations",
		Long:  "Collects your preferences interactively and runs the recommendation agent.",
		RunE:  runMovies,
	}
}

func runMovies(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}

	var api movies.MovieAPI
	if cfg.HasTMDB() {
		tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey)
		if cfg.HasRedis() {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
			api = tmdb.NewCachedClient(tmdbClient, rdb)
		} else {
			api = tmdbClient
		}
	}

	memory, err := movies.OpenMemoryStore(cfg.MemoryPath, false)
	if err != nil {
		return fmt.Errorf("failed to open memory store: %w", err)
	}
	defer memory.Close()

	prefs, currentContext := collectPreferences(os.Stdin)

	pipeline := movies.NewPipeline(client, api, memory)
	result := pipeline.Recommend(ctx, prefs, currentContext)

	if result.Perception.FallbackUsed {
		fmt.Println("(model unavailable, using fallback analysis)")
	}
	if result.Memories != nil && len(result.Memories.RelevantMemories) > 0 {
		fmt.Printf("Remembered %d similar sessions.\n\n", len(result.Memories.RelevantMemories))
	}

	fmt.Print(movies.Format(result.Action))
	return nil
}

func collectPreferences(in *os.File) (domain.UserPreferences, string) {
	reader := bufio.NewReader(in)

	prompt := func(label string) string {
		fmt.Printf("%s: ", label)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}
	promptList := func(label string) []string {
		raw := prompt(label)
		if raw == "" {
			return nil
		}
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}

	prefs := domain.UserPreferences{
		Name:               prompt("Your name"),
		Location:           prompt("Location"),
		FavoriteGenres:     promptList("Favorite genres (comma separated)"),
		FavoriteMovies:     promptList("Favorite movies (comma separated)"),
		PreferredLanguages: promptList("Preferred languages (comma separated)"),
		Mood:               prompt("Current mood"),
	}
	currentContext := prompt("What's the occasion")

	fmt.Println()
	return prefs, currentContext
}
