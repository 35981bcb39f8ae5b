package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Structure store connection
	IndexerURL    string
	IndexerAPIKey string

	// Auth
	DocsegAPIKey string

	// Index proposal oracle
	AnthropicAPIKey string
	AnthropicModel  string
	OracleEnabled   bool

	// Worker pool
	WorkerCount  int
	MaxQueueSize int
	// Chapter fan-out inside the segmentation engine.
	SegmentWorkers int

	// Upload limits
	MaxUploadBytes int64

	// Pagination for formats without real page boundaries.
	LinesPerPage int

	// Local search index; empty means in-memory.
	SearchIndexDir string

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		IndexerURL:    envOr("INDEXER_URL", "http://localhost:8080"),
		IndexerAPIKey: os.Getenv("INDEXER_API_KEY"),

		DocsegAPIKey: os.Getenv("DOCSEG_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		OracleEnabled:   envBool("ORACLE_ENABLED", true),

		WorkerCount:    envInt("WORKER_COUNT", 4),
		MaxQueueSize:   envInt("MAX_QUEUE_SIZE", 100),
		SegmentWorkers: envInt("SEGMENT_WORKERS", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		LinesPerPage: envInt("LINES_PER_PAGE", 40),

		SearchIndexDir: os.Getenv("SEARCH_INDEX_DIR"),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.SegmentWorkers <= 0 {
		cfg.SegmentWorkers = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.LinesPerPage <= 0 {
		cfg.LinesPerPage = 40
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.IndexerAPIKey == "" {
		return fmt.Errorf("INDEXER_API_KEY is required")
	}
	if c.DocsegAPIKey == "" {
		return fmt.Errorf("DOCSEG_API_KEY is required")
	}
	if c.OracleEnabled && c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required when ORACLE_ENABLED=true")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
