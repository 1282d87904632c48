// ABOUTME: Extraction pipeline orchestration: normalize → chunk → extract → quality gate → persist, §4.7
// ABOUTME: Generalizes the teacher's core.FactScrubber.ExtractAndSave / core.Scribe.updateProfile shape to transcript→summary
package extract

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/model"
)

// Extractor is a callable that turns a system prompt plus text into
// free-form output, implemented by internal/llmextract's primary
// (HTTP/chat-completion) and secondary (subprocess) extractors.
type Extractor interface {
	Extract(ctx context.Context, systemPrompt, text string) (string, error)
}

// Pipeline runs the full §4.7 transcript-extraction flow.
type Pipeline struct {
	Tracker   *Tracker
	Primary   Extractor
	Secondary Extractor
	MemoryDir string

	ChunkThresholdChars int
	ChunkSizeChars      int
	HotRecallCap        int
	SessionIndexCap     int
	RetryCooldown       time.Duration
}

// RunOptions parametrizes one invocation of the pipeline over a single
// transcript path.
type RunOptions struct {
	Path         string
	Cwd          string
	Force        bool
	SessionLabel string
	Project      string
}

// Result summarizes what Run did, for the caller (batch scanner, import
// hook, CLI) to log.
type Result struct {
	Skipped       bool
	Extract       string
	Chunks        int
	TokensInput   int
	ArchiveErrors []error
}

// Run executes the pipeline for one transcript. An extraction or quality
// gate failure is first recorded in the tracker (failedAt plus a
// RetryCooldown window) and then returned as an error, the quality case
// wrapping memerr.ErrQualityGateFailed. Filesystem/tracker I/O failures are
// returned as errors too; the caller decides how to handle all of them.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	info, err := os.Stat(opts.Path)
	if err != nil {
		return nil, err
	}
	currentSize := info.Size()

	if !opts.Force {
		if rec := p.Tracker.Get(opts.Path); rec != nil && rec.ShouldSkip(currentSize, nowUTC()) {
			return &Result{Skipped: true}, nil
		}
	}

	f, err := os.Open(opts.Path)
	if err != nil {
		return nil, err
	}
	records, err := ParseTranscript(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	text := Normalize(Turns(records))
	chunks := ChunkText(text, p.ChunkThresholdChars, p.ChunkSizeChars)

	extracted, err := p.extractChunks(ctx, chunks)
	if err != nil {
		if markErr := p.markFailed(opts.Path, currentSize); markErr != nil {
			return nil, markErr
		}
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	if !PassesQualityGate(extracted) {
		if markErr := p.markFailed(opts.Path, currentSize); markErr != nil {
			return nil, markErr
		}
		return nil, fmt.Errorf("extraction output missing required headings: %w", memerr.ErrQualityGateFailed)
	}

	now := nowUTC()
	archiveErrs := Archive(p.MemoryDir, Outcome{
		SessionLabel: opts.SessionLabel,
		Project:      opts.Project,
		File:         opts.Path,
		Now:          now,
		Extract:      extracted,
	}, p.HotRecallCap, p.SessionIndexCap)

	if err := p.Tracker.Update(model.ExtractionRecord{
		Path:        opts.Path,
		SizeBytes:   currentSize,
		ExtractedAt: &now,
	}); err != nil {
		return nil, err
	}

	return &Result{Extract: extracted, Chunks: len(chunks), TokensInput: countTokens(text), ArchiveErrors: archiveErrs}, nil
}

// extractChunks runs the primary/secondary extraction for one or many
// chunks, meta-extracting when there is more than one.
func (p *Pipeline) extractChunks(ctx context.Context, chunks []string) (string, error) {
	if len(chunks) == 1 {
		return p.extractOne(ctx, extractSystemPrompt, chunks[0])
	}

	partials := make([]string, 0, len(chunks))
	for _, c := range chunks {
		out, err := p.extractOne(ctx, extractSystemPrompt, c)
		if err != nil {
			return "", err
		}
		partials = append(partials, out)
	}

	merged, err := p.extractOne(ctx, mergeSystemPrompt, buildMergeInput(partials))
	if err != nil {
		// Meta-extraction failure falls back to verbatim concatenation,
		// per §4.7, rather than failing the whole run.
		return buildMergeInput(partials), nil
	}
	return merged, nil
}

// extractOne calls the primary extractor, falling back to the secondary on
// failure. Both calls are blocking I/O boundaries outside any DB
// transaction, mirroring the teacher's rule of calling OpenAI before taking
// storage.go's mutex in StoreTurn.
func (p *Pipeline) extractOne(ctx context.Context, systemPrompt, text string) (string, error) {
	out, err := p.Primary.Extract(ctx, systemPrompt, text)
	if err == nil {
		return out, nil
	}
	if p.Secondary == nil {
		return "", err
	}
	out, secErr := p.Secondary.Extract(ctx, systemPrompt, text)
	if secErr != nil {
		return "", fmt.Errorf("primary: %v, secondary: %w", err, secErr)
	}
	return out, nil
}

func (p *Pipeline) markFailed(path string, currentSize int64) error {
	now := nowUTC()
	retryAfter := now.Add(p.RetryCooldown)
	return p.Tracker.Update(model.ExtractionRecord{
		Path:       path,
		SizeBytes:  currentSize,
		FailedAt:   &now,
		RetryAfter: &retryAfter,
	})
}

func nowUTC() time.Time { return time.Now().UTC() }
