package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driving"
	"github.com/rfplens/rfplens-cli/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexBuilder = (*IndexService)(nil)

// IndexService builds and loads the persisted vector index. The document
// store is the source of truth: chunks persist with their embeddings, so a
// rebuild never re-runs extraction or embedding.
type IndexService struct {
	docStore driven.DocumentStore
	provider driven.VectorIndexProvider
}

// NewIndexService creates a new index service.
func NewIndexService(docStore driven.DocumentStore, provider driven.VectorIndexProvider) *IndexService {
	return &IndexService{
		docStore: docStore,
		provider: provider,
	}
}

// Build constructs a fresh index from every stored chunk, replacing any
// existing index.
func (s *IndexService) Build(ctx context.Context) (driven.VectorIndex, error) {
	logger.Section("Index Build")

	chunks, err := s.docStore.ListChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("build index: %w", domain.ErrNoDocuments)
	}

	index, err := s.provider.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	added := 0
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			logger.Warn("Chunk %s has no embedding, skipping", chunk.ID)
			continue
		}
		if err := index.Add(ctx, chunk.ID, chunk.Embedding); err != nil {
			index.Close()
			return nil, fmt.Errorf("add chunk %s: %w", chunk.ID, err)
		}
		added++
	}

	if err := index.Seal(); err != nil {
		index.Close()
		return nil, fmt.Errorf("seal index: %w", err)
	}

	logger.Info("Index built: %d vectors", added)
	return index, nil
}

// Rebuild replaces the on-disk index and returns the number of vectors
// written. The returned index handle is closed; callers reopen via Ensure.
func (s *IndexService) Rebuild(ctx context.Context) (int, error) {
	index, err := s.Build(ctx)
	if err != nil {
		return 0, err
	}
	count := index.Count()
	if err := index.Close(); err != nil {
		return count, fmt.Errorf("close index: %w", err)
	}
	return count, nil
}

// Ensure opens the existing index, rebuilding from the document store when
// none exists or the stored one cannot be trusted.
func (s *IndexService) Ensure(ctx context.Context) (driven.VectorIndex, error) {
	index, err := s.provider.Open(ctx)
	if err == nil {
		logger.Debug("Loaded existing index: %d vectors", index.Count())
		return index, nil
	}

	switch {
	case errors.Is(err, domain.ErrIndexCorrupted):
		logger.Warn("Index corrupted, rebuilding: %v", err)
	case errors.Is(err, domain.ErrIndexUnavailable):
		logger.Debug("No index on disk, building")
	default:
		return nil, fmt.Errorf("open index: %w", err)
	}

	return s.Build(ctx)
}
