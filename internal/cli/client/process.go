package client

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ProcessRequest represents the process API request.
type ProcessRequest struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// ProcessResult represents the process API response.
type ProcessResult struct {
	PageID string `json:"page_id,omitempty"`
	URL    string `json:"url"`
	Status string `json:"status"`
	Queued bool   `json:"queued"`
	Reason string `json:"reason,omitempty"`
}

// ProcessCmd creates the process command.
func ProcessCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "process <url>",
		Short: "Submit a page for indexing",
		Long:  "Submits a page's HTML content to the daemon for indexing. Content is read from --file, or stdin when omitted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runProcess(cmd, args[0], file, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read page content from this file instead of stdin")

	return cmd
}

func runProcess(cmd *cobra.Command, url, file string, outputJSON bool) error {
	content, err := readContent(file)
	if err != nil {
		return err
	}

	api := NewAPIClientWithCmd(cmd)
	resp, err := api.Post("/process", ProcessRequest{URL: url, Content: content})
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	var result ProcessResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if result.Queued {
		fmt.Printf("Queued for indexing: %s (page %s)\n", result.URL, result.PageID)
	} else {
		fmt.Printf("Skipped: %s (%s)\n", result.URL, result.Reason)
	}
	return nil
}

func readContent(file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
