// ABOUTME: Tests for extraction-tracker persistence: load, update, and file round-trip
package extract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/memexlabs/memex/internal/model"
)

func TestTracker_GetAbsentReturnsNil(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "tracker.json"))
	if got := tr.Get("/nope"); got != nil {
		t.Errorf("want nil for an untracked path, got %+v", got)
	}
}

func TestTracker_UpdateThenGetRoundTrips(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "tracker.json"))
	now := time.Now().UTC().Truncate(time.Second)

	if err := tr.Update(model.ExtractionRecord{Path: "/a.jsonl", SizeBytes: 5000, ExtractedAt: &now}); err != nil {
		t.Fatal(err)
	}

	got := tr.Get("/a.jsonl")
	if got == nil {
		t.Fatal("want a record after Update")
	}
	if got.SizeBytes != 5000 || got.ExtractedAt == nil || !got.ExtractedAt.Equal(now) {
		t.Errorf("unexpected record after round trip: %+v", got)
	}
}

func TestTracker_LoadReadsBackPersistedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.json")
	now := time.Now().UTC().Truncate(time.Second)

	first := NewTracker(path)
	if err := first.Update(model.ExtractionRecord{Path: "/a.jsonl", SizeBytes: 123, ExtractedAt: &now}); err != nil {
		t.Fatal(err)
	}

	second := NewTracker(path)
	if err := second.Load(); err != nil {
		t.Fatal(err)
	}
	got := second.Get("/a.jsonl")
	if got == nil || got.SizeBytes != 123 {
		t.Fatalf("want the persisted record to survive a fresh Load, got %+v", got)
	}
}

func TestTracker_LoadMissingFileIsNotAnError(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err := tr.Load(); err != nil {
		t.Errorf("want no error loading a missing tracker file, got %v", err)
	}
}
