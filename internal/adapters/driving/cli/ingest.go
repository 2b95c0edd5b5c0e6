package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
)

var (
	ingestAcceptedReq  string
	ingestAcceptedResp string
	ingestRejectedReq  string
	ingestRejectedResp string
	ingestUnknownReq   string
	ingestUnknownResp  string
	ingestFresh        bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest labelled document folders",
	Long: `Extracts, chunks and embeds every supported document under the given
folders. Folder identity decides the labelling: each flag names a directory
whose documents all share one proposal outcome and one category.

Filenames matching requirement<N> or response<N> are paired under project
number N; anything else is ingested under project "unknown" and stays
searchable but unpaired.

Re-ingesting a source path replaces its earlier documents and chunks.
Pass --fresh to drop the whole stored corpus first and start over.

Example:
  rfplens ingest \
    --accepted-requirements ./won/rfps --accepted-responses ./won/proposals \
    --rejected-requirements ./lost/rfps --rejected-responses ./lost/proposals`,
	RunE: runIngest,
}

func init() {
	f := ingestCmd.Flags()
	f.StringVar(&ingestAcceptedReq, "accepted-requirements", "", "folder of requirement documents from won proposals")
	f.StringVar(&ingestAcceptedResp, "accepted-responses", "", "folder of response documents from won proposals")
	f.StringVar(&ingestRejectedReq, "rejected-requirements", "", "folder of requirement documents from lost proposals")
	f.StringVar(&ingestRejectedResp, "rejected-responses", "", "folder of response documents from lost proposals")
	f.StringVar(&ingestUnknownReq, "unknown-requirements", "", "folder of requirement documents with unknown outcome")
	f.StringVar(&ingestUnknownResp, "unknown-responses", "", "folder of response documents with unknown outcome")
	f.BoolVar(&ingestFresh, "fresh", false, "clear all stored documents and sidecars before ingesting")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	folders := collectFolderSpecs()
	if len(folders) == 0 {
		return errors.New("at least one folder flag is required")
	}

	if ingestFresh {
		if err := ingestService.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("clearing stored corpus: %w", err)
		}
		cmd.Println("Cleared stored corpus")
	}

	result, err := ingestService.Ingest(cmd.Context(), folders)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d documents (%d chunks)\n", result.Documents, result.Chunks)
	if result.FailedExtractions > 0 {
		cmd.Printf("Failed extractions: %d\n", result.FailedExtractions)
	}
	cmd.Printf("Projects: %d (%d complete pairs)\n", result.Projects, result.CompletePairs)
	return nil
}

func collectFolderSpecs() []domain.FolderSpec {
	flags := []struct {
		path     string
		status   domain.Status
		category domain.Category
	}{
		{ingestAcceptedReq, domain.StatusAccepted, domain.CategoryRequirement},
		{ingestAcceptedResp, domain.StatusAccepted, domain.CategoryResponse},
		{ingestRejectedReq, domain.StatusRejected, domain.CategoryRequirement},
		{ingestRejectedResp, domain.StatusRejected, domain.CategoryResponse},
		{ingestUnknownReq, domain.StatusUnknown, domain.CategoryRequirement},
		{ingestUnknownResp, domain.StatusUnknown, domain.CategoryResponse},
	}

	var specs []domain.FolderSpec
	for _, f := range flags {
		if f.path == "" {
			continue
		}
		specs = append(specs, domain.FolderSpec{
			Path:     f.path,
			Status:   f.status,
			Category: f.category,
		})
	}
	return specs
}
