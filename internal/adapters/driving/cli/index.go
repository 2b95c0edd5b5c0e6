package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfplens/rfplens-cli/internal/core/ports/driving"
)

var indexService driving.IndexBuilder

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the vector index",
	Long: `Rebuilds the similarity index from the stored chunks. Chunks keep
their embeddings in the document store, so a rebuild is fast and never
re-runs extraction or embedding. Run this after ingesting new documents.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

// SetIndexBuilder injects the index builder used by the index command.
func SetIndexBuilder(b driving.IndexBuilder) {
	indexService = b
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	count, err := indexService.Rebuild(cmd.Context())
	if err != nil {
		return fmt.Errorf("index rebuild failed: %w", err)
	}

	cmd.Printf("Index rebuilt: %d vectors\n", count)
	return nil
}
