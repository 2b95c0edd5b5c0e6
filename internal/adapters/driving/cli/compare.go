package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
)

var compareLimit int

var compareCmd = &cobra.Command{
	Use:   "compare [topic]",
	Short: "Compare won and lost proposals on a topic",
	Long: `Retrieves the most relevant chunks from accepted proposals and from
rejected proposals for one topic, side by side. Useful as raw material for
win/loss pattern analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().IntVarP(&compareLimit, "limit", "n", 5, "results per side")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	cmp, err := retrievalService.ComparePatterns(cmd.Context(), args[0], compareLimit)
	if err != nil {
		return fmt.Errorf("compare failed: %w", err)
	}

	cmd.Printf("Topic: %s\n\n", cmp.Topic)
	printSide(cmd, "Accepted proposals", cmp.Accepted)
	printSide(cmd, "Rejected proposals", cmp.Rejected)
	return nil
}

func printSide(cmd *cobra.Command, title string, results []domain.RetrievedChunk) {
	cmd.Printf("%s (%d):\n", title, len(results))
	if len(results) == 0 {
		cmd.Println("  (none)")
		cmd.Println()
		return
	}
	for i := range results {
		c := results[i].Chunk
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, c.Source, results[i].Score)
		cmd.Printf("      %s\n", snippet(c.Content, 160))
	}
	cmd.Println()
}
