// Command rfplens is the RFP document retrieval and analysis CLI.
//
// Adapter construction is driven by the TOML config file (~/.rfplens/
// config.toml by default). Optional services (embedding, judge model,
// vision model) that are not configured are wired as nil; the core
// services degrade per operation instead of failing at startup.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rfplens/rfplens-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/rfplens/rfplens-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/rfplens/rfplens-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/rfplens/rfplens-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/rfplens/rfplens-cli/internal/adapters/driven/llm/openai"
	filestorage "github.com/rfplens/rfplens-cli/internal/adapters/driven/storage/file"
	"github.com/rfplens/rfplens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/rfplens/rfplens-cli/internal/adapters/driven/vectorindex/chromem"
	"github.com/rfplens/rfplens-cli/internal/adapters/driving/cli"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
	"github.com/rfplens/rfplens-cli/internal/core/services"
	"github.com/rfplens/rfplens-cli/internal/extract/docx"
	"github.com/rfplens/rfplens-cli/internal/extract/pdf"
	"github.com/rfplens/rfplens-cli/internal/extract/plaintext"
	"github.com/rfplens/rfplens-cli/internal/logger"
	"github.com/rfplens/rfplens-cli/internal/postprocessors"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore(os.Getenv("RFPLENS_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("creating prompt store: %w", err)
	}

	dataDir := cfg.GetString("data.dir")

	docStore, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	defer docStore.Close()

	registryStore, err := filestorage.NewRegistryStore(dataDir)
	if err != nil {
		return fmt.Errorf("creating registry store: %w", err)
	}

	embedding := buildEmbedding(cfg)
	judge := buildJudge(cfg)
	vision := buildVision(cfg)

	runner := pdf.NewExecRunner()
	extractors := []driven.Extractor{
		pdf.New(runner, pdf.WithVision(vision)),
		docx.New(),
		plaintext.New(),
	}

	chunkSize := cfg.GetInt("chunker.size")
	if chunkSize <= 0 {
		chunkSize = 1500
	}
	chunkOverlap := cfg.GetInt("chunker.overlap")
	if chunkOverlap <= 0 {
		chunkOverlap = 200
	}
	pipeline := postprocessors.DefaultPipeline(chunkSize, chunkOverlap)

	ingestService := services.NewIngestService(extractors, pipeline, embedding, docStore, registryStore)
	if workers := cfg.GetInt("ingest.workers"); workers > 0 {
		ingestService.SetWorkers(workers)
	}

	var (
		indexService *services.IndexService
		vectorIndex  driven.VectorIndex
	)
	if embedding != nil {
		provider := chromem.NewProvider(indexPath(cfg), embedding.ModelName(), embedding.Dimensions())
		indexService = services.NewIndexService(docStore, provider)

		vectorIndex, err = indexService.Ensure(context.Background())
		if err != nil {
			// No documents yet, or the rebuild itself failed. Retrieval
			// reports the missing index per query.
			logger.Debug("Vector index not available: %v", err)
			vectorIndex = nil
		} else {
			defer vectorIndex.Close()
		}
	}

	retrievalService := services.NewRetrievalService(docStore, vectorIndex, embedding)
	evaluationService := services.NewEvaluationService(judge, prompts, cfg.GetFloat("evaluation.threshold"))

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Ingestor:  ingestService,
		Retriever: retrievalService,
		Evaluator: evaluationService,
	})
	if indexService != nil {
		cli.SetIndexBuilder(indexService)
	}

	return cli.Execute()
}

// indexPath returns the vector index directory.
func indexPath(cfg driven.ConfigStore) string {
	if p := cfg.GetString("index.path"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "rfplens-index"
	}
	return filepath.Join(home, ".rfplens", "data", "index")
}

// buildEmbedding constructs the embedding service from config. Returns nil
// when no usable provider is configured.
func buildEmbedding(cfg driven.ConfigStore) driven.EmbeddingService {
	switch cfg.GetString("embedding.provider") {
	case "openai":
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     apiKey(cfg, "embedding.api_key"),
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
		if err != nil {
			logger.Warn("Embedding service unavailable: %v", err)
			return nil
		}
		return svc
	case "", "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
	default:
		logger.Warn("Unknown embedding provider %q", cfg.GetString("embedding.provider"))
		return nil
	}
}

// buildJudge constructs the judge LLM from config. Returns nil when no judge
// is configured; evaluations then report status disabled.
func buildJudge(cfg driven.ConfigStore) driven.LLMService {
	switch cfg.GetString("llm.provider") {
	case "openai":
		svc, err := openaillm.NewLLMService(openaillm.Config{
			APIKey:  apiKey(cfg, "llm.api_key"),
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
		})
		if err != nil {
			logger.Warn("Judge model unavailable: %v", err)
			return nil
		}
		return svc
	case "ollama":
		svc, err := ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
		})
		if err != nil {
			logger.Warn("Judge model unavailable: %v", err)
			return nil
		}
		return svc
	case "":
		return nil
	default:
		logger.Warn("Unknown llm provider %q", cfg.GetString("llm.provider"))
		return nil
	}
}

// buildVision constructs the vision service from config. Returns nil when no
// vision model is configured; scanned documents then fall back to the native
// text path.
func buildVision(cfg driven.ConfigStore) driven.VisionService {
	switch cfg.GetString("vision.provider") {
	case "openai":
		svc, err := openaillm.NewVisionService(openaillm.Config{
			APIKey:  apiKey(cfg, "vision.api_key"),
			BaseURL: cfg.GetString("vision.base_url"),
			Model:   cfg.GetString("vision.model"),
		})
		if err != nil {
			logger.Warn("Vision model unavailable: %v", err)
			return nil
		}
		return svc
	case "ollama":
		svc, err := ollamallm.NewVisionService(ollamallm.Config{
			BaseURL: cfg.GetString("vision.base_url"),
			Model:   cfg.GetString("vision.model"),
		})
		if err != nil {
			logger.Warn("Vision model unavailable: %v", err)
			return nil
		}
		return svc
	case "":
		return nil
	default:
		logger.Warn("Unknown vision provider %q", cfg.GetString("vision.provider"))
		return nil
	}
}

// apiKey reads an API key from config, falling back to OPENAI_API_KEY.
func apiKey(cfg driven.ConfigStore, key string) string {
	if v := cfg.GetString(key); v != "" {
		return v
	}
	return os.Getenv("OPENAI_API_KEY")
}
