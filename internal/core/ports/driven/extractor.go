package driven

import (
	"context"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
)

// Extractor pulls text content out of one source file format.
// Implementations exist for PDF (native and vision paths), DOCX and
// plain text.
type Extractor interface {
	// SupportedExtensions returns the lower-case filename extensions this
	// extractor handles, including the leading dot.
	SupportedExtensions() []string

	// Extract returns the text content of the file at path, plus the
	// extraction method used. A document with no extractable text yields
	// an empty string, not an error.
	Extract(ctx context.Context, path string) (string, domain.ExtractionMethod, error)
}
