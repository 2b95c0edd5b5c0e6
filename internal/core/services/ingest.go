package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driving"
	"github.com/rfplens/rfplens-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// DefaultIngestWorkers is the number of files processed concurrently.
const DefaultIngestWorkers = 4

// Filename patterns that link a document to a project number. Anything else
// gets domain.ProjectUnknown and is never paired.
var (
	requirementPattern = regexp.MustCompile(`requirement(\d+)`)
	responsePattern    = regexp.MustCompile(`response(\d+)`)
)

// ingested is the per-file output of an extraction worker.
type ingested struct {
	doc    domain.Document
	chunks []domain.Chunk
}

// IngestService runs batch ingestion over labelled folders. Extraction,
// chunking and embedding run in a worker pool; the registry and mapping
// merge happens single-threaded afterwards so sidecar writes are
// deterministic.
type IngestService struct {
	extractors    map[string]driven.Extractor
	pipeline      driven.PostProcessorPipeline
	embedding     driven.EmbeddingService
	docStore      driven.DocumentStore
	registryStore driven.RegistryStore
	workers       int
}

// NewIngestService creates a new ingest service. Extractors are dispatched
// by filename extension.
func NewIngestService(
	extractors []driven.Extractor,
	pipeline driven.PostProcessorPipeline,
	embedding driven.EmbeddingService,
	docStore driven.DocumentStore,
	registryStore driven.RegistryStore,
) *IngestService {
	byExt := make(map[string]driven.Extractor)
	for _, e := range extractors {
		for _, ext := range e.SupportedExtensions() {
			byExt[ext] = e
		}
	}
	return &IngestService{
		extractors:    byExt,
		pipeline:      pipeline,
		embedding:     embedding,
		docStore:      docStore,
		registryStore: registryStore,
		workers:       DefaultIngestWorkers,
	}
}

// SetWorkers overrides the worker pool size.
func (s *IngestService) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// ingestFile pairs a file path with its folder labelling.
type ingestFile struct {
	path string
	spec domain.FolderSpec
}

// Ingest processes all supported files under the given folders.
func (s *IngestService) Ingest(ctx context.Context, folders []domain.FolderSpec) (*driving.IngestResult, error) {
	logger.Section("Ingestion")

	if s.embedding == nil {
		return nil, fmt.Errorf("ingest: %w", domain.ErrEmbeddingUnavailable)
	}

	files, err := s.collectFiles(folders)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no supported documents found: %w", domain.ErrNoDocuments)
	}
	logger.Info("Found %d files across %d folders", len(files), len(folders))

	result := &driving.IngestResult{}

	// Worker pool: extraction, chunking and embedding are I/O and
	// model-bound, so files proceed concurrently. Failures count, they
	// never abort the batch.
	fileCh := make(chan ingestFile)
	outCh := make(chan ingested)
	var failed sync.Map

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range fileCh {
				out, err := s.processFile(ctx, f)
				if err != nil {
					logger.Warn("Skipping %s: %v", f.path, err)
					failed.Store(f.path, err)
					continue
				}
				outCh <- *out
			}
		}()
	}

	go func() {
		defer close(fileCh)
		for _, f := range files {
			select {
			case fileCh <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	var results []ingested
	for out := range outCh {
		results = append(results, out)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed.Range(func(_, _ any) bool {
		result.FailedExtractions++
		return true
	})

	// Single-threaded merge into registry, mapping, and stores.
	if err := s.merge(ctx, results, result); err != nil {
		return nil, err
	}

	logger.Info("Ingested %d documents (%d chunks, %d failures)",
		result.Documents, result.Chunks, result.FailedExtractions)
	return result, nil
}

// collectFiles lists the supported files directly inside each folder.
func (s *IngestService) collectFiles(folders []domain.FolderSpec) ([]ingestFile, error) {
	var files []ingestFile
	for _, spec := range folders {
		if !spec.Status.Valid() || !spec.Category.Valid() {
			return nil, fmt.Errorf("folder %s has invalid labelling: %w", spec.Path, domain.ErrInvalidInput)
		}

		entries, err := os.ReadDir(spec.Path)
		if err != nil {
			return nil, fmt.Errorf("read folder %s: %w", spec.Path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if _, ok := s.extractors[ext]; !ok {
				logger.Debug("Unsupported extension, skipping %s", entry.Name())
				continue
			}
			files = append(files, ingestFile{
				path: filepath.Join(spec.Path, entry.Name()),
				spec: spec,
			})
		}
	}
	return files, nil
}

// processFile extracts, chunks and embeds one file.
func (s *IngestService) processFile(ctx context.Context, f ingestFile) (*ingested, error) {
	ext := strings.ToLower(filepath.Ext(f.path))
	extractor := s.extractors[ext]

	content, method, err := extractor.Extract(ctx, f.path)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	doc := domain.Document{
		ID:            uuid.New().String(),
		Source:        f.path,
		File:          filepath.Base(f.path),
		Folder:        f.spec.Path,
		Method:        method,
		Category:      f.spec.Category,
		Status:        f.spec.Status,
		ProjectNumber: projectNumber(filepath.Base(f.path), f.spec.Category),
		Content:       content,
		CreatedAt:     time.Now().UTC(),
	}

	chunks, err := s.pipeline.Process(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("chunk: %w", err)
	}

	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Content
		}
		embeddings, err := s.embedding.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed: %w", err)
		}
		for i := range chunks {
			chunks[i].Embedding = embeddings[i]
		}
	}

	logger.Debug("Processed %s: method=%s chunks=%d", doc.File, method, len(chunks))
	return &ingested{doc: doc, chunks: chunks}, nil
}

// merge folds worker results into the document store and the registry and
// mapping sidecars. Runs single-threaded after the pool drains.
func (s *IngestService) merge(ctx context.Context, results []ingested, result *driving.IngestResult) error {
	registry, err := s.registryStore.LoadRegistry(ctx)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	mapping, err := s.registryStore.LoadMapping(ctx)
	if err != nil {
		return fmt.Errorf("load mapping: %w", err)
	}

	for i := range results {
		doc := &results[i].doc
		chunks := results[i].chunks

		// A re-ingested source path replaces its earlier registration
		// instead of accumulating a second copy.
		for oldID, entry := range registry {
			if entry.Folder != doc.Folder || entry.File != doc.File {
				continue
			}
			logger.Debug("Replacing earlier ingest of %s (was %s)", doc.File, oldID)
			if err := s.docStore.DeleteDocument(ctx, oldID); err != nil {
				return fmt.Errorf("delete superseded document %s: %w", doc.File, err)
			}
			delete(registry, oldID)
			unregisterProject(mapping, oldID)
		}

		if err := s.docStore.SaveDocument(ctx, doc); err != nil {
			return fmt.Errorf("save document %s: %w", doc.File, err)
		}
		if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
			return fmt.Errorf("save chunks for %s: %w", doc.File, err)
		}

		registry[doc.ID] = domain.RegistryEntry{
			File:          doc.File,
			Folder:        doc.Folder,
			Type:          doc.Method,
			Status:        doc.Status,
			Category:      doc.Category,
			ProjectNumber: doc.ProjectNumber,
		}

		registerProject(mapping, doc)

		result.Documents++
		result.Chunks += len(chunks)
	}

	if err := s.registryStore.SaveRegistry(ctx, registry); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	if err := s.registryStore.SaveMapping(ctx, mapping); err != nil {
		return fmt.Errorf("save mapping: %w", err)
	}

	result.Projects = len(mapping)
	for _, m := range mapping {
		if m.Complete() {
			result.CompletePairs++
		}
	}
	return nil
}

// registerProject slots a document into its project pairing. A document
// whose filename carried no project number stays unpaired. When two
// documents claim the same slot the later one wins and the collision is
// logged.
func registerProject(mapping map[string]domain.ProjectMapping, doc *domain.Document) {
	if doc.ProjectNumber == domain.ProjectUnknown {
		return
	}

	m := mapping[doc.ProjectNumber]
	switch doc.Category {
	case domain.CategoryRequirement:
		if m.RequirementDocID != "" && m.RequirementDocID != doc.ID {
			logger.Warn("Project %s requirement slot already held by %s, replacing with %s",
				doc.ProjectNumber, m.RequirementDocID, doc.ID)
		}
		m.RequirementDocID = doc.ID
	case domain.CategoryResponse:
		if m.ResponseDocID != "" && m.ResponseDocID != doc.ID {
			logger.Warn("Project %s response slot already held by %s, replacing with %s",
				doc.ProjectNumber, m.ResponseDocID, doc.ID)
		}
		m.ResponseDocID = doc.ID
	}
	m.Status = doc.Status
	mapping[doc.ProjectNumber] = m
}

// unregisterProject clears any pairing slot still pointing at a removed
// document. A mapping left with neither side drops out entirely.
func unregisterProject(mapping map[string]domain.ProjectMapping, docID string) {
	for num, m := range mapping {
		if m.RequirementDocID == docID {
			m.RequirementDocID = ""
		}
		if m.ResponseDocID == docID {
			m.ResponseDocID = ""
		}
		if m.RequirementDocID == "" && m.ResponseDocID == "" {
			delete(mapping, num)
			continue
		}
		mapping[num] = m
	}
}

// Reset clears the document store and both sidecars ahead of a fresh
// ingestion pass.
func (s *IngestService) Reset(ctx context.Context) error {
	if err := s.docStore.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear document store: %w", err)
	}
	if err := s.registryStore.SaveRegistry(ctx, map[string]domain.RegistryEntry{}); err != nil {
		return fmt.Errorf("clear registry: %w", err)
	}
	if err := s.registryStore.SaveMapping(ctx, map[string]domain.ProjectMapping{}); err != nil {
		return fmt.Errorf("clear mapping: %w", err)
	}
	logger.Info("Cleared document store and sidecars")
	return nil
}

// Registry returns the current document registry.
func (s *IngestService) Registry(ctx context.Context) (map[string]domain.RegistryEntry, error) {
	return s.registryStore.LoadRegistry(ctx)
}

// Mapping returns the current project mapping.
func (s *IngestService) Mapping(ctx context.Context) (map[string]domain.ProjectMapping, error) {
	return s.registryStore.LoadMapping(ctx)
}

// projectNumber parses the project number out of a filename. The category
// decides which pattern applies: a requirement folder only matches
// requirement<N>, a response folder only response<N>.
func projectNumber(filename string, category domain.Category) string {
	name := strings.ToLower(filename)

	var pattern *regexp.Regexp
	switch category {
	case domain.CategoryRequirement:
		pattern = requirementPattern
	case domain.CategoryResponse:
		pattern = responsePattern
	default:
		return domain.ProjectUnknown
	}

	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return domain.ProjectUnknown
	}
	return m[1]
}
