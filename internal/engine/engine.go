// ABOUTME: Engine API Facade (C11) — the single surface CLI and MCP layers call
// ABOUTME: Grounded on the teacher's cmd/memory/commands/*.go + internal/mcp both wrapping one *storage.Storage, made explicit here as engine.Engine
package engine

import (
	"context"
	"fmt"
	"sync"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/memexlabs/memex/internal/config"
	"github.com/memexlabs/memex/internal/embedclient"
	"github.com/memexlabs/memex/internal/extract"
	"github.com/memexlabs/memex/internal/llmextract"
	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/repo"
	"github.com/memexlabs/memex/internal/store"
	"github.com/memexlabs/memex/internal/vector"
)

// Engine is the stable, language-neutral operation surface. It owns the
// store handle and every typed repository, constructed once via Open and
// guarded against concurrent re-initialization by initOnce — not a
// package-level global, per DESIGN NOTES §9.
type Engine struct {
	cfg *config.Config

	initOnce sync.Once
	initErr  error
	handle   *store.Handle

	sessions    *repo.Sessions
	messages    *repo.Messages
	decisions   *repo.Decisions
	learnings   *repo.Learnings
	breadcrumbs *repo.Breadcrumbs
	loa         *repo.LoA
	telos       *repo.Telos
	documents   *repo.Documents

	vectors   *vector.Store
	embedder  *embedclient.Client
	extractor *extract.Pipeline
}

// Open constructs an Engine bound to cfg without touching the filesystem;
// call Init to create or open the store.
func Open(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Init creates the store if absent (first run) or opens it, wiring every
// repository and the embedding client against the resulting handle. It is
// idempotent and safe to call more than once; only the first call does
// work.
func (e *Engine) Init(ctx context.Context) error {
	e.initOnce.Do(func() {
		h, _, err := store.Init(e.cfg.DBPath)
		if err != nil {
			e.initErr = err
			return
		}
		e.handle = h
		e.sessions = repo.NewSessions(h)
		e.messages = repo.NewMessages(h)
		e.decisions = repo.NewDecisions(h)
		e.learnings = repo.NewLearnings(h)
		e.breadcrumbs = repo.NewBreadcrumbs(h)
		e.loa = repo.NewLoA(h)
		e.telos = repo.NewTelos(h)
		e.documents = repo.NewDocuments(h)
		e.vectors = vector.New(h)
		e.embedder = embedclient.New(embedclient.Config{
			BaseURL:       e.cfg.OllamaURL,
			Model:         e.cfg.EmbeddingModel,
			Timeout:       e.cfg.EmbeddingTimeout,
			MaxInputChars: e.cfg.MaxInputChars,
		})

		var secondary extract.Extractor
		if e.cfg.ExtractorSecondaryCmd != "" {
			if tokens, tokErr := shellwords.Parse(e.cfg.ExtractorSecondaryCmd); tokErr == nil && len(tokens) > 0 {
				secondary = llmextract.NewSubprocessExtractor(tokens[0], tokens[1:])
			}
		}

		var primary extract.Extractor
		if e.cfg.OpenAIAPIKey != "" {
			oa, oaErr := llmextract.NewOpenAIExtractor(llmextract.OpenAIConfig{
				APIKey:      e.cfg.OpenAIAPIKey,
				BaseURL:     e.cfg.OpenAIBaseURL,
				Model:       e.cfg.ExtractorModel,
				CallTimeout: e.cfg.LLMCallTimeout,
			})
			if oaErr == nil {
				primary = oa
			}
		}
		e.extractor = &extract.Pipeline{
			Tracker:             extract.NewTracker(fmt.Sprintf("%s/.extraction_tracker.json", e.cfg.MemoryDir())),
			Primary:             primary,
			Secondary:           secondary,
			MemoryDir:           e.cfg.MemoryDir(),
			ChunkThresholdChars: e.cfg.ChunkThresholdChars,
			ChunkSizeChars:      e.cfg.ChunkSizeChars,
			HotRecallCap:        e.cfg.HotRecallSessions,
			SessionIndexCap:     e.cfg.SessionIndexCap,
			RetryCooldown:       e.cfg.RetryCooldown,
		}
		if e.extractor.Tracker != nil {
			e.initErr = e.extractor.Tracker.Load()
		}
	})
	return e.initErr
}

// requireInit returns memerr.ErrNotInitialized if Init hasn't succeeded
// yet, so every other method can lead with it.
func (e *Engine) requireInit() error {
	if e.handle == nil {
		return memerr.ErrNotInitialized
	}
	return nil
}

// Close releases the store handle.
func (e *Engine) Close() error {
	if e.handle == nil {
		return nil
	}
	return e.handle.Close()
}
