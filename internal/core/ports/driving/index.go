package driving

import "context"

// IndexBuilder rebuilds the persisted vector index wholesale from the
// stored chunks. Chunks persist with their embeddings, so a rebuild never
// re-runs extraction or embedding.
type IndexBuilder interface {
	// Rebuild replaces the on-disk index and returns the number of
	// vectors written.
	Rebuild(ctx context.Context) (int, error)
}
