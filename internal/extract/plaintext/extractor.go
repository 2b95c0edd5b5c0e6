// Package plaintext extracts text from plain text files.
package plaintext

import (
	"context"
	"fmt"
	"os"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the filename extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".md"}
}

// Extract returns the file content as-is.
func (e *Extractor) Extract(_ context.Context, path string) (string, domain.ExtractionMethod, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", domain.ExtractionNativeText, fmt.Errorf("read %s: %w", path, err)
	}
	return string(content), domain.ExtractionNativeText, nil
}
