package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/services"
)

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query    string `json:"query" jsonschema:"the query to find relevant document chunks for"`
	K        int    `json:"k,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
	Status   string `json:"status,omitempty" jsonschema:"filter by proposal outcome: accepted, rejected or unknown"`
	Category string `json:"category,omitempty" jsonschema:"filter by document category: requirement or response"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Chunks []ChunkOutput `json:"chunks"`
	Count  int           `json:"count"`

	// Context is the concatenated chunk text with provenance headers,
	// ready for prompt assembly by the caller.
	Context string `json:"context"`
}

// ChunkOutput represents a single retrieved chunk.
type ChunkOutput struct {
	ChunkID       string  `json:"chunk_id"`
	DocumentID    string  `json:"document_id"`
	Source        string  `json:"source"`
	Status        string  `json:"status"`
	Category      string  `json:"category"`
	ProjectNumber string  `json:"project_number"`
	Score         float64 `json:"score"`
	Content       string  `json:"content"`
}

// CompareInput is the input schema for the compare_patterns tool.
type CompareInput struct {
	Topic string `json:"topic" jsonschema:"the topic to compare across won and lost proposals"`
	K     int    `json:"k,omitempty" jsonschema:"chunks per side (default 5)"`
}

// CompareOutput is the output schema for the compare_patterns tool.
type CompareOutput struct {
	Topic    string        `json:"topic"`
	Accepted []ChunkOutput `json:"accepted"`
	Rejected []ChunkOutput `json:"rejected"`
}

// EvaluateInput is the input schema for the evaluate_faithfulness tool.
// Chunks carries the retrieve tool's output back in so the answer is judged
// against the exact context it was generated from; when omitted the server
// retrieves fresh, unfiltered context for the question instead.
type EvaluateInput struct {
	Question string        `json:"question" jsonschema:"the question the answer responds to"`
	Answer   string        `json:"answer" jsonschema:"the generated answer to score"`
	Chunks   []ChunkOutput `json:"chunks,omitempty" jsonschema:"the retrieved chunks the answer was generated from; omit to have the server retrieve context for the question"`
	K        int           `json:"k,omitempty" jsonschema:"number of context chunks to retrieve when chunks is omitted (default 5)"`
}

// EvaluateOutput is the output schema for the evaluate_faithfulness tool.
type EvaluateOutput struct {
	Score            *float64 `json:"score"`
	Reason           string   `json:"reason"`
	NeedsEnhancement bool     `json:"needs_enhancement"`
	Status           string   `json:"status"`
	RetrievedCount   int      `json:"retrieved_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve document chunks relevant to a query, optionally filtered by proposal outcome and category",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compare_patterns",
		Description: "Retrieve matching chunks from won and lost proposals side by side for one topic",
	}, s.handleCompare)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "evaluate_faithfulness",
		Description: "Score how faithfully a generated answer is supported by the retrieved context",
	}, s.handleEvaluate)
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	opts := domain.RetrieveOptions{
		K:        input.K,
		Status:   domain.Status(input.Status),
		Category: domain.Category(input.Category),
	}

	results, err := s.ports.Retriever.Retrieve(ctx, input.Query, opts)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	return nil, RetrieveOutput{
		Chunks:  chunkOutputs(results),
		Count:   len(results),
		Context: services.ContextWithSources(results),
	}, nil
}

// handleCompare handles the compare_patterns tool invocation.
func (s *Server) handleCompare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompareInput,
) (*mcp.CallToolResult, CompareOutput, error) {
	k := input.K
	if k <= 0 {
		k = 5
	}

	cmp, err := s.ports.Retriever.ComparePatterns(ctx, input.Topic, k)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	return nil, CompareOutput{
		Topic:    cmp.Topic,
		Accepted: chunkOutputs(cmp.Accepted),
		Rejected: chunkOutputs(cmp.Rejected),
	}, nil
}

// handleEvaluate handles the evaluate_faithfulness tool invocation.
func (s *Server) handleEvaluate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EvaluateInput,
) (*mcp.CallToolResult, EvaluateOutput, error) {
	retrieved := retrievedChunks(input.Chunks)
	if retrieved == nil {
		var err error
		retrieved, err = s.ports.Retriever.Retrieve(ctx, input.Question,
			domain.RetrieveOptions{K: input.K})
		if err != nil {
			return nil, EvaluateOutput{}, err
		}
	}

	var eval domain.Evaluation
	if s.ports.Evaluator == nil {
		eval = domain.Evaluation{
			Reason:         "evaluation disabled: no judge model configured",
			Status:         domain.EvaluationDisabled,
			RetrievedCount: len(retrieved),
		}
	} else {
		eval = s.ports.Evaluator.Evaluate(ctx, input.Question, input.Answer, retrieved)
	}

	return nil, EvaluateOutput{
		Score:            eval.Score,
		Reason:           eval.Reason,
		NeedsEnhancement: eval.NeedsEnhancement,
		Status:           string(eval.Status),
		RetrievedCount:   eval.RetrievedCount,
	}, nil
}

// retrievedChunks is the inverse of chunkOutputs, for context passed back
// in by the caller. Returns nil for an empty list.
func retrievedChunks(chunks []ChunkOutput) []domain.RetrievedChunk {
	if len(chunks) == 0 {
		return nil
	}
	out := make([]domain.RetrievedChunk, len(chunks))
	for i, c := range chunks {
		out[i] = domain.RetrievedChunk{
			Chunk: domain.Chunk{
				ID:            c.ChunkID,
				DocumentID:    c.DocumentID,
				Source:        c.Source,
				Status:        domain.Status(c.Status),
				Category:      domain.Category(c.Category),
				ProjectNumber: c.ProjectNumber,
				Content:       c.Content,
			},
			Score: c.Score,
		}
	}
	return out
}

func chunkOutputs(results []domain.RetrievedChunk) []ChunkOutput {
	out := make([]ChunkOutput, len(results))
	for i := range results {
		c := results[i].Chunk
		out[i] = ChunkOutput{
			ChunkID:       c.ID,
			DocumentID:    c.DocumentID,
			Source:        c.Source,
			Status:        string(c.Status),
			Category:      string(c.Category),
			ProjectNumber: c.ProjectNumber,
			Score:         results[i].Score,
			Content:       c.Content,
		}
	}
	return out
}
