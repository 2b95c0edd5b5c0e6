package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
)

var (
	searchLimit    int
	searchStatus   string
	searchCategory string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingested documents",
	Long: `Performs similarity search over the ingested document chunks.
Results can be filtered by proposal outcome (--status accepted|rejected|unknown)
and document category (--category requirement|response). With filters the
result list may be shorter than the limit.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().StringVar(&searchStatus, "status", "", "filter by proposal outcome (accepted|rejected|unknown)")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "filter by document category (requirement|response)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	opts := domain.RetrieveOptions{
		K:        searchLimit,
		Status:   domain.Status(searchStatus),
		Category: domain.Category(searchCategory),
	}

	results, err := retrievalService.Retrieve(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievedChunk) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.RetrievedChunk) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		c := results[i].Chunk
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, c.Source, results[i].Score)
		cmd.Printf("      status: %s | category: %s | project: %s\n",
			c.Status, c.Category, c.ProjectNumber)
		cmd.Printf("      %s\n", snippet(c.Content, 160))
		cmd.Println()
	}
	return nil
}

// snippet returns the first n characters of s on a single line.
func snippet(s string, n int) string {
	flat := make([]rune, 0, n)
	for _, r := range s {
		if r == '\n' || r == '\t' {
			r = ' '
		}
		flat = append(flat, r)
		if len(flat) == n {
			return string(flat) + "..."
		}
	}
	return string(flat)
}
