package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
	"github.com/rfplens/rfplens-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Default configuration values.
const (
	// DefaultDPI is the rasterisation resolution for scanned pages.
	// 200 DPI is a good quality/throughput compromise for OCR.
	DefaultDPI = 200

	// DefaultPageTimeout bounds one vision-model page transcription.
	DefaultPageTimeout = 2 * time.Minute

	// DefaultPagesPerSecond is the sustained vision request rate.
	DefaultPagesPerSecond = 1.0

	// DefaultBurstSize is the vision request burst allowance.
	DefaultBurstSize = 2
)

// Option configures the PDF extractor.
type Option func(*Extractor)

// WithDPI sets the rasterisation resolution for scanned pages.
func WithDPI(dpi int) Option {
	return func(e *Extractor) {
		if dpi > 0 {
			e.dpi = dpi
		}
	}
}

// WithPageTimeout sets the per-page vision call timeout.
func WithPageTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.pageTimeout = d
		}
	}
}

// WithPageRate sets the sustained vision request rate and burst allowance.
func WithPageRate(perSecond float64, burst int) Option {
	return func(e *Extractor) {
		if perSecond > 0 && burst > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithVision sets the vision service used for scanned documents.
// When nil, scanned documents fall back to the native text path.
func WithVision(vision driven.VisionService) Option {
	return func(e *Extractor) {
		e.vision = vision
	}
}

// Extractor extracts text from PDF files. Text-native documents go through
// pdftotext; scanned documents are rasterised page by page and transcribed
// by the vision service.
type Extractor struct {
	runner      driven.CommandRunner
	classifier  *Classifier
	vision      driven.VisionService
	limiter     *rate.Limiter
	dpi         int
	pageTimeout time.Duration
}

// New creates a PDF extractor.
func New(runner driven.CommandRunner, opts ...Option) *Extractor {
	e := &Extractor{
		runner:      runner,
		classifier:  NewClassifier(runner),
		limiter:     rate.NewLimiter(rate.Limit(DefaultPagesPerSecond), DefaultBurstSize),
		dpi:         DefaultDPI,
		pageTimeout: DefaultPageTimeout,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// SupportedExtensions returns the filename extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract returns the text content of the PDF at path.
//
// Scanned documents need a vision service; without one they degrade to the
// native path, whose output is likely near-empty, rather than failing the
// ingestion run.
func (e *Extractor) Extract(ctx context.Context, path string) (string, domain.ExtractionMethod, error) {
	if !e.classifier.IsScanned(ctx, path) {
		text, err := e.native(ctx, path)
		return text, domain.ExtractionNativeText, err
	}

	logger.Info("Scanned PDF detected: %s", path)

	if e.vision == nil {
		logger.Warn("no vision model configured, extracting %s via text layer", path)
		text, err := e.native(ctx, path)
		return text, domain.ExtractionFallbackText, err
	}

	text, err := e.visionExtract(ctx, path)
	return text, domain.ExtractionVision, err
}

// native extracts the PDF text layer via pdftotext.
func (e *Extractor) native(ctx context.Context, path string) (string, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-q", "-enc", "UTF-8", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext %s: %w", path, err)
	}
	return string(out), nil
}

// visionExtract rasterises each page and transcribes it through the vision
// service. Pages are processed strictly in order so the reassembled text
// preserves page ordering; a failed page degrades to empty content instead
// of aborting the document.
func (e *Extractor) visionExtract(ctx context.Context, path string) (string, error) {
	pages, cleanup, err := e.rasterise(ctx, path)
	if err != nil {
		return "", err
	}
	defer cleanup()

	parts := make([]string, 0, len(pages))
	for i, pagePath := range pages {
		logger.Debug("Transcribing page %d/%d of %s", i+1, len(pages), path)

		text, err := e.transcribePage(ctx, pagePath)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			logger.Warn("page %d of %s: %v (page content degraded to empty)", i+1, path, err)
			text = ""
		}

		parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", i+1, text))
	}

	return strings.Join(parts, "\n\n"), nil
}

// transcribePage sends one rendered page through the rate limiter and the
// vision service with a bounded timeout.
func (e *Extractor) transcribePage(ctx context.Context, pagePath string) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}

	png, err := os.ReadFile(pagePath)
	if err != nil {
		return "", fmt.Errorf("read page image: %w", err)
	}

	pageCtx, cancel := context.WithTimeout(ctx, e.pageTimeout)
	defer cancel()

	return e.vision.TranscribePage(pageCtx, png)
}

// rasterise renders every page of the PDF to PNG files in a temporary
// directory and returns their paths in page order.
func (e *Extractor) rasterise(ctx context.Context, path string) ([]string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "rfplens-pages-*")
	if err != nil {
		return nil, nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	prefix := filepath.Join(tmpDir, "page")
	if _, err := e.runner.Run(ctx, "pdftoppm", "-png", "-r", strconv.Itoa(e.dpi), path, prefix); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("pdftoppm %s: %w", path, err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("list rendered pages: %w", err)
	}

	type page struct {
		num  int
		path string
	}
	pages := make([]page, 0, len(entries))
	for _, entry := range entries {
		num, ok := pageNumber(entry.Name())
		if !ok {
			continue
		}
		pages = append(pages, page{num: num, path: filepath.Join(tmpDir, entry.Name())})
	}

	// pdftoppm zero-pads page numbers based on page count, so sort by the
	// parsed number rather than lexically.
	sort.Slice(pages, func(i, j int) bool { return pages[i].num < pages[j].num })

	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.path
	}
	return paths, cleanup, nil
}

// pageNumber parses the page number out of a pdftoppm output filename
// (page-1.png, page-01.png, ...).
func pageNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, "page-") || !strings.HasSuffix(name, ".png") {
		return 0, false
	}
	num, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "page-"), ".png"))
	if err != nil {
		return 0, false
	}
	return num, true
}
