package driven

import "context"

// VectorIndex provides cosine similarity search over chunk embeddings.
// The index is built wholesale during ingestion and immutable once loaded;
// there is no incremental update path. Adding documents means re-ingesting
// and rebuilding from the full chunk set.
type VectorIndex interface {
	// Add inserts a vector for the given chunk ID. Only valid while the
	// index is being built.
	Add(ctx context.Context, chunkID string, embedding []float32) error

	// Search finds the k nearest neighbours to the query vector,
	// ordered by descending similarity.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the number of vectors in the index.
	Count() int

	// Seal finalises a build, persisting the index manifest. After Seal
	// the index is read-only.
	Seal() error

	// Close releases resources.
	Close() error
}

// VectorIndexProvider creates and opens vector indexes at a configured
// location. Separating construction from the VectorIndex itself lets the
// index service rebuild a corrupted index without knowing the backend.
type VectorIndexProvider interface {
	// Create starts a fresh index build, discarding any existing index.
	Create(ctx context.Context) (VectorIndex, error)

	// Open loads the existing sealed index. Returns
	// domain.ErrIndexUnavailable when none exists and
	// domain.ErrIndexCorrupted when it cannot be trusted.
	Open(ctx context.Context) (VectorIndex, error)
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}
