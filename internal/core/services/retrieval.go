package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driving"
	"github.com/rfplens/rfplens-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.Retriever = (*RetrievalService)(nil)

// DefaultRetrieveK is the result count when the caller does not specify one.
const DefaultRetrieveK = 5

// Oversampling factors. Metadata filtering happens after the similarity
// search, so filtered queries pull a wider candidate set first.
const (
	oversampleSingleFilter = 5
	oversampleDoubleFilter = 4
)

// RetrievalService performs similarity search with post-hoc metadata
// filtering. Hits come back from the index as chunk IDs and are hydrated
// from the document store.
type RetrievalService struct {
	docStore    driven.DocumentStore
	vectorIndex driven.VectorIndex
	embedding   driven.EmbeddingService
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(
	docStore driven.DocumentStore,
	vectorIndex driven.VectorIndex,
	embedding driven.EmbeddingService,
) *RetrievalService {
	return &RetrievalService{
		docStore:    docStore,
		vectorIndex: vectorIndex,
		embedding:   embedding,
	}
}

// Retrieve returns the k most similar chunks for the query, filtered by the
// options. The result may be shorter than k when the filter matches fewer
// chunks within the oversampled candidate set.
func (s *RetrievalService) Retrieve(
	ctx context.Context, query string, opts domain.RetrieveOptions,
) ([]domain.RetrievedChunk, error) {
	logger.Section("Retrieval")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.RetrievedChunk{}, nil
	}

	if s.vectorIndex == nil {
		return nil, fmt.Errorf("retrieve: %w", domain.ErrIndexUnavailable)
	}
	if s.embedding == nil {
		return nil, fmt.Errorf("retrieve: %w", domain.ErrEmbeddingUnavailable)
	}

	if opts.Status != "" && !opts.Status.Valid() {
		return nil, fmt.Errorf("status %q: %w", opts.Status, domain.ErrInvalidInput)
	}
	if opts.Category != "" && !opts.Category.Valid() {
		return nil, fmt.Errorf("category %q: %w", opts.Category, domain.ErrInvalidInput)
	}

	k := opts.K
	if k <= 0 {
		k = DefaultRetrieveK
	}
	fetch := candidateCount(k, opts)
	logger.Debug("Query: %q, k=%d, candidates=%d, status=%q, category=%q",
		query, k, fetch, opts.Status, opts.Category)

	embedding, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.vectorIndex.Search(ctx, embedding, fetch)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Index returned %d hits", len(hits))

	results := make([]domain.RetrievedChunk, 0, k)
	for _, hit := range hits {
		chunk, err := s.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Stale index entry, skip it.
				logger.Debug("Chunk %s missing from store, skipping", hit.ChunkID)
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", hit.ChunkID, err)
		}

		if opts.Status != "" && chunk.Status != opts.Status {
			continue
		}
		if opts.Category != "" && chunk.Category != opts.Category {
			continue
		}

		results = append(results, domain.RetrievedChunk{
			Chunk: *chunk,
			Score: hit.Similarity,
		})
		if len(results) == k {
			break
		}
	}

	logger.Info("Retrieved %d chunks", len(results))
	return results, nil
}

// ComparePatterns retrieves the accepted-side and rejected-side chunks for
// one topic, for win/loss analysis.
func (s *RetrievalService) ComparePatterns(
	ctx context.Context, topic string, k int,
) (*domain.PatternComparison, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic is required: %w", domain.ErrInvalidInput)
	}

	accepted, err := s.Retrieve(ctx, topic, domain.RetrieveOptions{K: k, Status: domain.StatusAccepted})
	if err != nil {
		return nil, fmt.Errorf("accepted side: %w", err)
	}
	rejected, err := s.Retrieve(ctx, topic, domain.RetrieveOptions{K: k, Status: domain.StatusRejected})
	if err != nil {
		return nil, fmt.Errorf("rejected side: %w", err)
	}

	return &domain.PatternComparison{
		Topic:    topic,
		Accepted: accepted,
		Rejected: rejected,
	}, nil
}

// candidateCount sizes the oversampled candidate set for a filtered query.
func candidateCount(k int, opts domain.RetrieveOptions) int {
	switch {
	case opts.Status != "" && opts.Category != "":
		return k * oversampleDoubleFilter
	case opts.Filtered():
		return k * oversampleSingleFilter
	default:
		return k
	}
}

// ContextWithSources formats retrieved chunks into a single context block
// with per-chunk provenance headers, ready for prompt assembly.
func ContextWithSources(retrieved []domain.RetrievedChunk) string {
	if len(retrieved) == 0 {
		return ""
	}

	var b strings.Builder
	for i, rc := range retrieved {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[Source: %s | status: %s | category: %s]\n",
			rc.Chunk.Source, rc.Chunk.Status, rc.Chunk.Category)
		b.WriteString(rc.Chunk.Content)
	}
	return b.String()
}
