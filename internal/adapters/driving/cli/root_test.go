package cli

import (
	"context"
	"fmt"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driving"
)

// mockIngestor returns a fixed result and canned registry data.
type mockIngestor struct {
	folders    []domain.FolderSpec
	resetCalls int
}

var _ driving.Ingestor = (*mockIngestor)(nil)

func (m *mockIngestor) Ingest(_ context.Context, folders []domain.FolderSpec) (*driving.IngestResult, error) {
	m.folders = folders
	return &driving.IngestResult{
		Documents:     4,
		Chunks:        12,
		Projects:      2,
		CompletePairs: 1,
	}, nil
}

func (m *mockIngestor) Reset(context.Context) error {
	m.resetCalls++
	return nil
}

func (m *mockIngestor) Registry(context.Context) (map[string]domain.RegistryEntry, error) {
	return map[string]domain.RegistryEntry{
		"doc-1": {
			File:          "requirement1.pdf",
			Folder:        "/data/won/rfps",
			Type:          domain.ExtractionNativeText,
			Status:        domain.StatusAccepted,
			Category:      domain.CategoryRequirement,
			ProjectNumber: "1",
		},
		"doc-2": {
			File:          "response1.pdf",
			Folder:        "/data/won/proposals",
			Type:          domain.ExtractionVision,
			Status:        domain.StatusAccepted,
			Category:      domain.CategoryResponse,
			ProjectNumber: "1",
		},
	}, nil
}

func (m *mockIngestor) Mapping(context.Context) (map[string]domain.ProjectMapping, error) {
	return map[string]domain.ProjectMapping{
		"1": {RequirementDocID: "doc-1", ResponseDocID: "doc-2", Status: domain.StatusAccepted},
	}, nil
}

// mockRetriever echoes one accepted and one rejected chunk.
type mockRetriever struct {
	lastOpts domain.RetrieveOptions
}

var _ driving.Retriever = (*mockRetriever)(nil)

func (m *mockRetriever) Retrieve(_ context.Context, query string, opts domain.RetrieveOptions) ([]domain.RetrievedChunk, error) {
	m.lastOpts = opts
	return []domain.RetrievedChunk{
		{
			Chunk: domain.Chunk{
				ID: "chunk-1", Source: "/data/won/proposals/response1.pdf",
				Status: domain.StatusAccepted, Category: domain.CategoryResponse,
				ProjectNumber: "1", Content: "mock content about " + query,
			},
			Score: 0.91,
		},
	}, nil
}

func (m *mockRetriever) ComparePatterns(_ context.Context, topic string, _ int) (*domain.PatternComparison, error) {
	return &domain.PatternComparison{
		Topic: topic,
		Accepted: []domain.RetrievedChunk{
			{Chunk: domain.Chunk{Source: "won.pdf", Status: domain.StatusAccepted, Content: "won approach"}, Score: 0.9},
		},
		Rejected: []domain.RetrievedChunk{
			{Chunk: domain.Chunk{Source: "lost.pdf", Status: domain.StatusRejected, Content: "lost approach"}, Score: 0.8},
		},
	}, nil
}

// mockEvaluator returns a fixed scored evaluation.
type mockEvaluator struct{}

var _ driving.Evaluator = (*mockEvaluator)(nil)

func (m *mockEvaluator) Evaluate(_ context.Context, _, _ string, retrieved []domain.RetrievedChunk) domain.Evaluation {
	score := 0.85
	return domain.Evaluation{
		Score:          &score,
		Reason:         "well grounded",
		Status:         domain.EvaluationDone,
		RetrievedCount: len(retrieved),
	}
}

func (m *mockEvaluator) Enhance(_ context.Context, prompt string, _ domain.Evaluation) (string, error) {
	return prompt, nil
}

// mockRetrieverError fails every call.
type mockRetrieverError struct{}

var _ driving.Retriever = (*mockRetrieverError)(nil)

func (mockRetrieverError) Retrieve(context.Context, string, domain.RetrieveOptions) ([]domain.RetrievedChunk, error) {
	return nil, fmt.Errorf("index exploded")
}

func (mockRetrieverError) ComparePatterns(context.Context, string, int) (*domain.PatternComparison, error) {
	return nil, fmt.Errorf("index exploded")
}

// setupTestServices installs mock services and returns a cleanup restoring
// the previous ones.
func setupTestServices() func() {
	oldIngest := ingestService
	oldRetrieval := retrievalService
	oldEvaluation := evaluationService

	ingestService = &mockIngestor{}
	retrievalService = &mockRetriever{}
	evaluationService = &mockEvaluator{}

	return func() {
		ingestService = oldIngest
		retrievalService = oldRetrieval
		evaluationService = oldEvaluation
	}
}
