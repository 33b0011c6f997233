package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// SearchRequest represents the search API request.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SearchResult represents a single scored result.
type SearchResult struct {
	URL           string  `json:"url"`
	Confidence    float64 `json:"confidence"`
	SemanticScore float64 `json:"semantic_score"`
	TermScore     float64 `json:"term_score"`
}

// SearchResponse represents the search API response.
type SearchResponse struct {
	Query      string         `json:"query"`
	Results    []SearchResult `json:"results"`
	Count      int            `json:"count"`
	DurationMs int            `json:"duration_ms"`
}

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed pages",
		Long:  "Searches the indexed pages using semantic search.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSearch(cmd, args[0], limit, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum number of results")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, limit int, outputJSON bool) error {
	api := NewAPIClientWithCmd(cmd)
	resp, err := api.Post("/search", SearchRequest{Query: query, Limit: limit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(resp.Data, &searchResp); err != nil {
		return fmt.Errorf("failed to parse search results: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(searchResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if searchResp.Count == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results in %dms:\n\n", searchResp.Count, searchResp.DurationMs)
	for i, result := range searchResp.Results {
		fmt.Printf("%d. %s (%.3f)\n", i+1, result.URL, result.Confidence)
		fmt.Printf("   semantic %.3f, terms %.3f\n", result.SemanticScore, result.TermScore)
		if i < len(searchResp.Results)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}
	return nil
}
