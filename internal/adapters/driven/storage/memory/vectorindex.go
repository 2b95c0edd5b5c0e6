package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is an in-memory brute-force cosine similarity index.
type VectorIndex struct {
	mu      sync.RWMutex
	ids     []string
	vectors [][]float32
	sealed  bool
}

// NewVectorIndex creates a new in-memory vector index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

// Add inserts a vector for the given chunk ID.
func (idx *VectorIndex) Add(_ context.Context, chunkID string, embedding []float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.sealed {
		return domain.ErrInvalidInput
	}
	if chunkID == "" || len(embedding) == 0 {
		return domain.ErrInvalidInput
	}
	idx.ids = append(idx.ids, chunkID)
	idx.vectors = append(idx.vectors, append([]float32(nil), embedding...))
	return nil
}

// Search finds the k nearest neighbours by cosine similarity.
func (idx *VectorIndex) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, domain.ErrInvalidInput
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(idx.ids))
	for i, id := range idx.ids {
		hits = append(hits, driven.VectorHit{
			ChunkID:    id,
			Similarity: cosine(query, idx.vectors[i]),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Similarity > hits[j].Similarity })

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Count returns the number of vectors in the index.
func (idx *VectorIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}

// Seal marks the index read-only.
func (idx *VectorIndex) Seal() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.sealed = true
	return nil
}

// Close releases resources.
func (idx *VectorIndex) Close() error {
	return nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
