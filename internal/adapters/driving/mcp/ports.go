package mcp

import (
	"github.com/rfplens/rfplens-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retriever provides filtered similarity search.
	Retriever driving.Retriever

	// Evaluator scores answers against retrieved context. Optional: when
	// nil the evaluate tool reports disabled evaluations.
	Evaluator driving.Evaluator

	// Ingestor provides registry and mapping reads for resources. Optional.
	Ingestor driving.Ingestor
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetriever
	}
	return nil
}
