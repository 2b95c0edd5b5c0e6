// Package pdf provides PDF classification and text extraction built on the
// poppler command line utilities (pdftotext, pdftoppm). Scanned documents
// are rasterised and transcribed by a vision model; text-native documents
// use the PDF text layer directly.
package pdf

import (
	"context"
	"strconv"
	"strings"

	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
	"github.com/rfplens/rfplens-cli/internal/logger"
)

const (
	// classifierPages bounds how many pages the classifier extracts.
	// Most PDFs have homogeneous content, so the first pages are enough.
	classifierPages = 3

	// scannedTextThreshold is the extractable character count below which
	// a PDF is classified as scanned. A scanned page's text layer is empty
	// or near-empty; the threshold avoids false positives on pages with
	// minimal real text.
	scannedTextThreshold = 100
)

// Classifier decides whether a PDF is text-native or scanned (image-only)
// using an extractable-character-count heuristic.
//
// The classifier fails open: on any extraction error it returns "not
// scanned", routing the document to the cheaper native path. This is a
// deliberate policy, not a correctness guarantee; a broken PDF degrades to
// near-empty native text rather than burning vision-model calls.
type Classifier struct {
	runner driven.CommandRunner
}

// NewClassifier creates a classifier that extracts text through the given
// command runner.
func NewClassifier(runner driven.CommandRunner) *Classifier {
	return &Classifier{runner: runner}
}

// IsScanned reports whether the PDF at path appears to be scanned.
// The result is deterministic for a fixed file.
func (c *Classifier) IsScanned(ctx context.Context, path string) bool {
	out, err := c.runner.Run(ctx, "pdftotext",
		"-f", "1",
		"-l", strconv.Itoa(classifierPages),
		"-q", "-enc", "UTF-8",
		path, "-")
	if err != nil {
		logger.Warn("classify %s: %v (treating as text-native)", path, err)
		return false
	}

	return len(strings.TrimSpace(string(out))) < scannedTextThreshold
}
