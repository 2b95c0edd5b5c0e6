package chromem

import (
	"context"

	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.VectorIndexProvider = (*Provider)(nil)

// Provider creates and opens indexes at a fixed path with fixed embedding
// parameters.
type Provider struct {
	path       string
	model      string
	dimensions int
}

// NewProvider creates an index provider rooted at path.
func NewProvider(path, model string, dimensions int) *Provider {
	return &Provider{
		path:       path,
		model:      model,
		dimensions: dimensions,
	}
}

// Create starts a fresh index build, discarding any existing index.
func (p *Provider) Create(_ context.Context) (driven.VectorIndex, error) {
	return New(p.path, p.model, p.dimensions)
}

// Open loads the existing sealed index.
func (p *Provider) Open(_ context.Context) (driven.VectorIndex, error) {
	return Open(p.path, p.model, p.dimensions)
}
