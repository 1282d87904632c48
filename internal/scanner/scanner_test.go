// ABOUTME: Tests for candidate ordering (Scan/tier) and rate-limited extraction hand-off (ExtractCandidates)
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/memexlabs/memex/internal/extract"
)

func TestTier(t *testing.T) {
	if tier(1000) != 0 {
		t.Errorf("want tier 0 for a small file within the medium band")
	}
	if tier(mediumTierMaxBytes+1) != 1 {
		t.Errorf("want tier 1 for a file over the medium band's ceiling")
	}
}

func TestIsSideAgentFile(t *testing.T) {
	if !isSideAgentFile("/x/abc-sidechain.jsonl") {
		t.Error("want a sidechain-suffixed filename recognized as a side-agent transcript")
	}
	if isSideAgentFile("/x/abc-main.jsonl") {
		t.Error("want a plain session filename not recognized as a side-agent transcript")
	}
}

func TestScan_OrdersMediumBeforeLargeAndLargestFirstWithinTier(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, size int64) {
		if err := os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("small.jsonl", minCandidateBytes-1)            // excluded: below floor
	write("medium-a.jsonl", minCandidateBytes+100)       // tier 0
	write("medium-b.jsonl", mediumTierMaxBytes)          // tier 0, largest in tier
	write("large.jsonl", mediumTierMaxBytes+1)           // tier 1
	write("side-sidechain.jsonl", minCandidateBytes+100) // excluded: side agent
	write("ignored.txt", minCandidateBytes+100)          // excluded: wrong extension

	candidates, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 3 {
		t.Fatalf("want 3 eligible candidates, got %d", len(candidates))
	}
	if !strings.Contains(candidates[0].Path, "medium-b") {
		t.Errorf("want largest medium-tier file first, got %s", candidates[0].Path)
	}
	if !strings.Contains(candidates[1].Path, "medium-a") {
		t.Errorf("want smaller medium-tier file second, got %s", candidates[1].Path)
	}
	if !strings.Contains(candidates[2].Path, "large") {
		t.Errorf("want the large-tier file last, got %s", candidates[2].Path)
	}
}

type fakeExtractor struct {
	out string
	err error
}

func (f fakeExtractor) Extract(ctx context.Context, systemPrompt, text string) (string, error) {
	return f.out, f.err
}

const validExtraction = "ONE SENTENCE SUMMARY\ndid a thing\n\nMAIN IDEAS\n- thing one\n"

func TestExtractCandidates_ProcessesCandidate(t *testing.T) {
	// A single candidate exercises the no-wait (i==0) path; the limiter's
	// inter-candidate wait is a timing concern left to manual/integration
	// verification rather than a multi-second unit test sleep.
	dir := t.TempDir()
	transcript := filepath.Join(dir, "a.jsonl")
	line := `{"type":"user","message":{"role":"user","content":"hello there"}}` + "\n"
	if err := os.WriteFile(transcript, []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}

	pipeline := &extract.Pipeline{
		Tracker:             extract.NewTracker(filepath.Join(dir, "tracker.json")),
		Primary:             fakeExtractor{out: validExtraction},
		MemoryDir:           dir,
		ChunkThresholdChars: 1_000_000,
		ChunkSizeChars:      500_000,
		HotRecallCap:        10,
		SessionIndexCap:     100,
	}

	candidates := []Candidate{{Path: transcript, ProjectDir: dir}}
	labelFor := func(c Candidate) (string, string) {
		return filepath.Base(c.Path), "test-project"
	}

	results, errs := ExtractCandidates(context.Background(), candidates, pipeline, false, labelFor)
	if len(errs) != 0 {
		t.Fatalf("want no extraction errors, got %v", errs)
	}
	if len(results) != 1 {
		t.Fatalf("want 1 extraction result, got %d", len(results))
	}
	if results[0].Extract != validExtraction {
		t.Errorf("want extraction output propagated verbatim, got %q", results[0].Extract)
	}
}

func TestExtractCandidates_EmptyInput(t *testing.T) {
	results, errs := ExtractCandidates(context.Background(), nil, &extract.Pipeline{}, false, func(Candidate) (string, string) { return "", "" })
	if len(results) != 0 || len(errs) != 0 {
		t.Error("want no results or errors for an empty candidate list")
	}
}
