package driven

import (
	"context"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
)

// DocumentStore persists documents and their chunks across ingestion passes.
// It is the rebuild source when the vector index is corrupted: chunks carry
// their embeddings, so recovery never re-runs extraction.
type DocumentStore interface {
	// SaveDocument stores a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores chunks for a document, replacing any previous set.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunk retrieves a specific chunk by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ListDocuments returns all stored documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// ListChunks returns all stored chunks across all documents,
	// in (document, position) order.
	ListChunks(ctx context.Context) ([]domain.Chunk, error)

	// DeleteDocument removes one document and its chunks. Deleting a
	// document that does not exist is not an error.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteAll removes all documents and chunks, ahead of a full re-ingest.
	DeleteAll(ctx context.Context) error
}

// RegistryStore persists the document registry and the project mapping as
// the two JSON sidecar files read by the orchestration layer.
type RegistryStore interface {
	// SaveRegistry writes the document registry (doc ID -> entry).
	SaveRegistry(ctx context.Context, registry map[string]domain.RegistryEntry) error

	// LoadRegistry reads the document registry. Returns an empty map when
	// no registry has been written yet.
	LoadRegistry(ctx context.Context) (map[string]domain.RegistryEntry, error)

	// SaveMapping writes the project mapping (project number -> mapping).
	SaveMapping(ctx context.Context, mapping map[string]domain.ProjectMapping) error

	// LoadMapping reads the project mapping. Returns an empty map when no
	// mapping has been written yet.
	LoadMapping(ctx context.Context) (map[string]domain.ProjectMapping, error)
}
