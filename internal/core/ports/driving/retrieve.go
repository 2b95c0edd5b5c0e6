package driving

import (
	"context"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
)

// Retriever performs similarity search over the built index, with optional
// post-hoc metadata filtering.
type Retriever interface {
	// Retrieve returns the k most similar chunks for the query, filtered
	// by the options. When a filter matches fewer than k chunks within the
	// oversampled candidate set, the result is shorter than k; callers
	// must tolerate short lists.
	Retrieve(ctx context.Context, query string, opts domain.RetrieveOptions) ([]domain.RetrievedChunk, error)

	// ComparePatterns retrieves the accepted-side and rejected-side chunks
	// for one topic, for win/loss analysis.
	ComparePatterns(ctx context.Context, topic string, k int) (*domain.PatternComparison, error)
}
