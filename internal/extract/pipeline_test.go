// ABOUTME: Tests for the pipeline's primary/secondary extractor fallback and chunk merging
package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeExtractor returns out/err, and records how many times it was called.
type fakeExtractor struct {
	out   string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, systemPrompt, text string) (string, error) {
	f.calls++
	return f.out, f.err
}

func TestExtractOne_PrimarySucceeds_SecondaryNeverCalled(t *testing.T) {
	primary := &fakeExtractor{out: "primary result"}
	secondary := &fakeExtractor{out: "secondary result"}
	p := &Pipeline{Primary: primary, Secondary: secondary}

	out, err := p.extractOne(t.Context(), "system", "text")
	if err != nil {
		t.Fatal(err)
	}
	if out != "primary result" {
		t.Errorf("want the primary's output, got %q", out)
	}
	if secondary.calls != 0 {
		t.Errorf("want the secondary never called when the primary succeeds, got %d calls", secondary.calls)
	}
}

func TestExtractOne_PrimaryFails_FallsBackToSecondary(t *testing.T) {
	primary := &fakeExtractor{err: errors.New("primary down")}
	secondary := &fakeExtractor{out: "secondary result"}
	p := &Pipeline{Primary: primary, Secondary: secondary}

	out, err := p.extractOne(t.Context(), "system", "text")
	if err != nil {
		t.Fatal(err)
	}
	if out != "secondary result" {
		t.Errorf("want the secondary's output after the primary fails, got %q", out)
	}
	if secondary.calls != 1 {
		t.Errorf("want the secondary called exactly once, got %d calls", secondary.calls)
	}
}

func TestExtractOne_BothFail_ReturnsCombinedError(t *testing.T) {
	primary := &fakeExtractor{err: errors.New("primary down")}
	secondary := &fakeExtractor{err: errors.New("secondary down")}
	p := &Pipeline{Primary: primary, Secondary: secondary}

	_, err := p.extractOne(t.Context(), "system", "text")
	if err == nil {
		t.Fatal("want an error when both extractors fail")
	}
	if !strings.Contains(err.Error(), "primary down") || !strings.Contains(err.Error(), "secondary down") {
		t.Errorf("want both failures named in the error, got %v", err)
	}
}

func TestExtractOne_PrimaryFails_NoSecondaryConfigured_ReturnsPrimaryError(t *testing.T) {
	primaryErr := errors.New("primary down")
	primary := &fakeExtractor{err: primaryErr}
	p := &Pipeline{Primary: primary}

	_, err := p.extractOne(t.Context(), "system", "text")
	if !errors.Is(err, primaryErr) {
		t.Errorf("want the primary's own error when no secondary is configured, got %v", err)
	}
}

func TestExtractChunks_SingleChunkSkipsMerge(t *testing.T) {
	primary := &fakeExtractor{out: "one result"}
	p := &Pipeline{Primary: primary}

	out, err := p.extractChunks(t.Context(), []string{"only chunk"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "one result" {
		t.Errorf("want the single chunk's own extraction, got %q", out)
	}
	if primary.calls != 1 {
		t.Errorf("want exactly one extraction call for a single chunk, got %d", primary.calls)
	}
}

func TestExtractChunks_MergeFailureFallsBackToVerbatimConcatenation(t *testing.T) {
	calls := 0
	primary := &funcExtractor{fn: func(systemPrompt, text string) (string, error) {
		calls++
		if systemPrompt == mergeSystemPrompt {
			return "", errors.New("merge failed")
		}
		return "partial:" + text, nil
	}}
	p := &Pipeline{Primary: primary}

	out, err := p.extractChunks(t.Context(), []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "partial:a") || !strings.Contains(out, "partial:b") {
		t.Errorf("want a verbatim concatenation of the per-chunk partials when merge fails, got %q", out)
	}
}

// funcExtractor adapts a closure to the Extractor interface, for tests that
// need to branch on which system prompt was used.
type funcExtractor struct {
	fn func(systemPrompt, text string) (string, error)
}

func (f *funcExtractor) Extract(ctx context.Context, systemPrompt, text string) (string, error) {
	return f.fn(systemPrompt, text)
}
