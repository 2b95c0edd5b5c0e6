// Package chromem provides a persisted vector index backed by chromem-go.
//
// The index lives in a directory on disk alongside a manifest file recording
// the vector count, dimensionality, and embedding model used to build it.
// The manifest is how a load detects a stale or corrupted index: any mismatch
// between manifest and collection, or a missing manifest, surfaces as
// domain.ErrIndexCorrupted so the caller can rebuild from the chunk store.
package chromem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

const collectionName = "chunks"

// manifest records the build parameters of a sealed index.
type manifest struct {
	Count      int       `json:"count"`
	Dimensions int       `json:"dimensions"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
}

// Index is a cosine similarity index over chunk embeddings, persisted to
// disk. Build with New, then Add vectors and Seal; reopen later with Open.
type Index struct {
	db         *chromemgo.DB
	collection *chromemgo.Collection
	path       string
	model      string
	dimensions int
	sealed     bool
}

// New creates a fresh index at path, removing any previous index there.
// The model name and dimensionality are recorded in the manifest on Seal.
func New(path, model string, dimensions int) (*Index, error) {
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove previous index: %w", err)
	}
	if err := os.Remove(manifestPath(path)); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove previous manifest: %w", err)
	}

	idx, err := open(path, model, dimensions)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Open loads an existing index from path. It returns domain.ErrIndexCorrupted
// when the manifest is missing, unreadable, or disagrees with the stored
// collection or the expected model and dimensionality.
func Open(path, model string, dimensions int) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("index at %s: %w", path, domain.ErrIndexUnavailable)
		}
		return nil, fmt.Errorf("stat index: %w", err)
	}

	m, err := readManifest(path)
	if err != nil {
		return nil, fmt.Errorf("index at %s: %w", path, domain.ErrIndexCorrupted)
	}
	if m.Model != model || m.Dimensions != dimensions {
		return nil, fmt.Errorf("index built with model %s (%d dims), want %s (%d dims): %w",
			m.Model, m.Dimensions, model, dimensions, domain.ErrIndexCorrupted)
	}

	idx, err := open(path, model, dimensions)
	if err != nil {
		return nil, fmt.Errorf("index at %s: %w", path, domain.ErrIndexCorrupted)
	}
	if idx.collection.Count() != m.Count {
		return nil, fmt.Errorf("index holds %d vectors, manifest records %d: %w",
			idx.collection.Count(), m.Count, domain.ErrIndexCorrupted)
	}

	idx.sealed = true
	return idx, nil
}

func open(path, model string, dimensions int) (*Index, error) {
	db, err := chromemgo.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector db: %w", err)
	}

	metadata := map[string]string{
		"hnsw:space": "cosine",
	}
	collection, err := db.GetOrCreateCollection(collectionName, metadata, nil)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}

	return &Index{
		db:         db,
		collection: collection,
		path:       path,
		model:      model,
		dimensions: dimensions,
	}, nil
}

// Add inserts a vector for the given chunk ID.
func (idx *Index) Add(ctx context.Context, chunkID string, embedding []float32) error {
	if idx.sealed {
		return fmt.Errorf("index is sealed: %w", domain.ErrInvalidInput)
	}
	if chunkID == "" {
		return fmt.Errorf("chunk ID is required: %w", domain.ErrInvalidInput)
	}
	if len(embedding) != idx.dimensions {
		return fmt.Errorf("embedding has %d dimensions, index expects %d: %w",
			len(embedding), idx.dimensions, domain.ErrInvalidInput)
	}

	// chromem requires non-empty content per document; the chunk ID stands
	// in since hydration happens from the chunk store, not from here.
	err := idx.collection.Add(ctx,
		[]string{chunkID},
		[][]float32{embedding},
		nil,
		[]string{chunkID},
	)
	if err != nil {
		return fmt.Errorf("add vector: %w", err)
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector. k is clamped to
// the index size; an empty index returns no hits.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("query has %d dimensions, index expects %d: %w",
			len(query), idx.dimensions, domain.ErrInvalidInput)
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive: %w", domain.ErrInvalidInput)
	}

	count := idx.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := idx.collection.QueryEmbedding(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	hits := make([]driven.VectorHit, len(results))
	for i, r := range results {
		hits[i] = driven.VectorHit{
			ChunkID:    r.ID,
			Similarity: float64(r.Similarity),
		}
	}
	return hits, nil
}

// Count returns the number of vectors in the index.
func (idx *Index) Count() int {
	return idx.collection.Count()
}

// Seal finalises a build by writing the manifest. After Seal the index
// rejects further Adds.
func (idx *Index) Seal() error {
	if idx.sealed {
		return nil
	}

	m := manifest{
		Count:      idx.collection.Count(),
		Dimensions: idx.dimensions,
		Model:      idx.model,
		CreatedAt:  time.Now().UTC(),
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath(idx.path), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	idx.sealed = true
	return nil
}

// Close releases resources. chromem persists writes as they happen, so there
// is nothing to flush.
func (idx *Index) Close() error {
	return nil
}

// manifestPath keeps the manifest beside the index directory rather than
// inside it, so chromem never sees a foreign file in its own tree.
func manifestPath(indexPath string) string {
	return indexPath + ".manifest.json"
}

func readManifest(indexPath string) (manifest, error) {
	var m manifest
	data, err := os.ReadFile(manifestPath(indexPath))
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, err
	}
	return m, nil
}
