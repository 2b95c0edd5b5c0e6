package mcp

import (
	"context"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driving"
)

// mockRetriever is a mock implementation of driving.Retriever.
type mockRetriever struct {
	results  []domain.RetrievedChunk
	cmp      *domain.PatternComparison
	err      error
	calls    int
	lastOpts domain.RetrieveOptions
}

func (m *mockRetriever) Retrieve(
	_ context.Context,
	_ string,
	opts domain.RetrieveOptions,
) ([]domain.RetrievedChunk, error) {
	m.calls++
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockRetriever) ComparePatterns(
	_ context.Context,
	_ string,
	_ int,
) (*domain.PatternComparison, error) {
	return m.cmp, m.err
}

// mockEvaluator is a mock implementation of driving.Evaluator.
type mockEvaluator struct {
	eval          domain.Evaluation
	lastRetrieved []domain.RetrievedChunk
}

func (m *mockEvaluator) Evaluate(
	_ context.Context,
	_, _ string,
	retrieved []domain.RetrievedChunk,
) domain.Evaluation {
	m.lastRetrieved = retrieved
	eval := m.eval
	eval.RetrievedCount = len(retrieved)
	return eval
}

func (m *mockEvaluator) Enhance(_ context.Context, prompt string, _ domain.Evaluation) (string, error) {
	return prompt, nil
}

// mockIngestor is a mock implementation of driving.Ingestor.
type mockIngestor struct {
	registry map[string]domain.RegistryEntry
	mapping  map[string]domain.ProjectMapping
	err      error
}

func (m *mockIngestor) Ingest(_ context.Context, _ []domain.FolderSpec) (*driving.IngestResult, error) {
	return &driving.IngestResult{}, m.err
}

func (m *mockIngestor) Reset(_ context.Context) error {
	return m.err
}

func (m *mockIngestor) Registry(_ context.Context) (map[string]domain.RegistryEntry, error) {
	return m.registry, m.err
}

func (m *mockIngestor) Mapping(_ context.Context) (map[string]domain.ProjectMapping, error) {
	return m.mapping, m.err
}
