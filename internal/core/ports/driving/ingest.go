package driving

import (
	"context"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
)

// Ingestor runs batch ingestion: classify, extract, register and chunk every
// document under the labelled folders, then persists the registry sidecars.
type Ingestor interface {
	// Ingest processes all supported files under the given folders.
	// One bad file never aborts the batch; failures are counted in the
	// result instead. A file whose source path was ingested before
	// replaces its earlier documents, chunks and registry entry.
	Ingest(ctx context.Context, folders []domain.FolderSpec) (*IngestResult, error)

	// Reset clears all stored documents, chunks and both sidecars ahead
	// of a fresh ingestion pass.
	Reset(ctx context.Context) error

	// Registry returns the current document registry.
	Registry(ctx context.Context) (map[string]domain.RegistryEntry, error)

	// Mapping returns the current project mapping.
	Mapping(ctx context.Context) (map[string]domain.ProjectMapping, error)
}

// IngestResult summarises one ingestion pass.
type IngestResult struct {
	// Documents is the number of documents successfully ingested.
	Documents int

	// Chunks is the total number of chunks produced.
	Chunks int

	// FailedExtractions counts documents whose extraction failed and which
	// therefore contributed zero chunks.
	FailedExtractions int

	// Projects is the number of distinct project numbers seen.
	Projects int

	// CompletePairs counts projects with both a requirement and a response
	// document.
	CompletePairs int
}
