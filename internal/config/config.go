// ABOUTME: Environment-driven configuration for the memory engine
// ABOUTME: Loads .env via godotenv, then typed env vars with sane defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Config holds every environment-tunable knob for the engine, per spec §6.
type Config struct {
	BaseDir         string
	DBPath          string
	OllamaURL       string
	EmbeddingModel  string
	EmbeddingDims   int
	ExtractorModel  string
	OpenAIAPIKey    string
	OpenAIBaseURL   string

	// ExtractorSecondaryCmd is a shell-style command line (e.g. "llm -m local")
	// for the fallback CLI extractor used when the primary OpenAI-compatible
	// call fails or times out. Empty disables the fallback.
	ExtractorSecondaryCmd string

	EmbeddingTimeout    time.Duration
	LLMCallTimeout      time.Duration
	LLMTotalTimeout     time.Duration
	BatchExtractTimeout time.Duration

	MaxInputChars       int // truncation ceiling for the embedding client (~30,000)
	ChunkThresholdChars int // §4.7 chunking trigger (~120,000)
	ChunkSizeChars      int // §4.7 chunk size (≤80,000)

	HotRecallSessions int // default 10
	SessionIndexCap   int // default 500

	RetryCooldown time.Duration // §9 open question 3: flat 24h window
}

// Load reads a .env file (if present) and then environment variables,
// mirroring the teacher's getEnv/getEnvInt/getEnvDuration helper idiom.
func Load() (*Config, error) {
	_ = godotenv.Load()

	base := getEnv("BASE_DIR", defaultBaseDir())
	dbPath := getEnv("MEM_DB_PATH", filepath.Join(base, "memory.db"))

	cfg := &Config{
		BaseDir:        base,
		DBPath:         dbPath,
		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
		EmbeddingDims:  getEnvInt("EMBEDDING_DIMENSIONS", 768),
		ExtractorModel: getEnv("EXTRACTOR_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),

		ExtractorSecondaryCmd: getEnv("EXTRACTOR_SECONDARY_CMD", ""),

		EmbeddingTimeout:    getEnvDuration("EMBEDDING_TIMEOUT", 180*time.Second),
		LLMCallTimeout:      getEnvDuration("LLM_CALL_TIMEOUT", 300*time.Second),
		LLMTotalTimeout:     getEnvDuration("LLM_TOTAL_TIMEOUT", 10*time.Minute),
		BatchExtractTimeout: getEnvDuration("BATCH_EXTRACT_TIMEOUT", 120*time.Second),

		MaxInputChars:       getEnvInt("MAX_EMBED_INPUT_CHARS", 30000),
		ChunkThresholdChars: getEnvInt("CHUNK_THRESHOLD_CHARS", 120000),
		ChunkSizeChars:      getEnvInt("CHUNK_SIZE_CHARS", 80000),

		HotRecallSessions: getEnvInt("HOT_RECALL_SESSIONS", 10),
		SessionIndexCap:   getEnvInt("SESSION_INDEX_CAP", 500),

		RetryCooldown: getEnvDuration("EXTRACTION_RETRY_COOLDOWN", 24*time.Hour),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce a working engine.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("MEM_DB_PATH must not be empty")
	}
	if c.EmbeddingDims <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be positive, got %d", c.EmbeddingDims)
	}
	if c.ChunkSizeChars <= 0 || c.ChunkThresholdChars <= c.ChunkSizeChars {
		return fmt.Errorf("CHUNK_THRESHOLD_CHARS must exceed CHUNK_SIZE_CHARS")
	}
	return nil
}

// MemoryDir is $BASE/MEMORY, the root for archive/hot-recall/index files (§6).
func (c *Config) MemoryDir() string {
	return filepath.Join(c.BaseDir, "MEMORY")
}

func defaultBaseDir() string {
	return filepath.Join(xdg.DataHome, "memex")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
