package driven

import "context"

// CommandRunner executes an external command and returns its stdout.
// PDF classification, text extraction and page rasterisation shell out to
// the poppler utilities (pdftotext, pdftoppm) through this port so tests
// can substitute a double.
type CommandRunner interface {
	// Run executes the named command with the given arguments and returns
	// its standard output. A non-zero exit status is returned as an error.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
