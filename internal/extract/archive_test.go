// ABOUTME: Tests for the five archival output files written after a successful extraction
package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func outcomeAt(t *testing.T, label string, when time.Time, extract string) Outcome {
	t.Helper()
	return Outcome{SessionLabel: label, Project: "proj", File: "/x/" + label + ".jsonl", Now: when, Extract: extract}
}

const sampleExtract = `ONE SENTENCE SUMMARY
Fixed the flaky upload test.

MAIN IDEAS
- retried uploads with backoff

DECISIONS MADE
- switched to exponential backoff

ERRORS FIXED
- request timed out under load
`

func TestArchive_WritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	errs := Archive(dir, outcomeAt(t, "s1", time.Now().UTC(), sampleExtract), 10, 100)
	if len(errs) != 0 {
		t.Fatalf("want no archive errors, got %v", errs)
	}
	for _, name := range []string{"DISTILLED.md", "HOT_RECALL.md", "SESSION_INDEX.json", "DECISIONS.log", "ERROR_PATTERNS.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("want %s to exist: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "REJECTIONS.log")); err == nil {
		t.Error("want REJECTIONS.log absent when there are no rejection bullets")
	}
}

func TestUpdateHotRecall_CapsAtMaxSessionsNewestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HOT_RECALL.md")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		o := outcomeAt(t, "session"+string(rune('A'+i)), base.Add(time.Duration(i)*time.Hour), sampleExtract)
		if err := updateHotRecall(path, o, 3); err != nil {
			t.Fatal(err)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	entries := strings.Split(string(raw), "\n---\n")
	if len(entries) != 3 {
		t.Fatalf("want capped at 3 entries, got %d", len(entries))
	}
	if !strings.Contains(entries[0], "sessionE") {
		t.Errorf("want the most recently written session first, got %q", entries[0])
	}
}

func TestUpsertSessionIndex_ReplacesSameSessionRatherThanDuplicating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SESSION_INDEX.json")
	now := time.Now().UTC()

	if err := upsertSessionIndex(path, outcomeAt(t, "s1", now, sampleExtract), 100); err != nil {
		t.Fatal(err)
	}
	if err := upsertSessionIndex(path, outcomeAt(t, "s1", now.Add(time.Minute), sampleExtract), 100); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []SessionIndexEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("want the second write to replace the first, got %d entries", len(entries))
	}
}

func TestAppendDedupedLog_SkipsRepeatedBulletAcrossCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DECISIONS.log")
	o1 := outcomeAt(t, "s1", time.Now().UTC(), sampleExtract)
	o2 := outcomeAt(t, "s2", time.Now().UTC(), sampleExtract)

	bullets := BulletsUnder(sampleExtract, "DECISIONS MADE")
	if err := appendDedupedLog(path, o1, bullets); err != nil {
		t.Fatal(err)
	}
	if err := appendDedupedLog(path, o2, bullets); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("want the duplicate decision logged only once, got %d lines: %v", len(lines), lines)
	}
}

func TestUpsertErrorPatterns_UpdatesExistingEntryByKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ERROR_PATTERNS.json")
	day1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	if err := upsertErrorPatterns(path, outcomeAt(t, "s1", day1, sampleExtract)); err != nil {
		t.Fatal(err)
	}
	if err := upsertErrorPatterns(path, outcomeAt(t, "s2", day2, sampleExtract)); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var f errorPatternsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatal(err)
	}
	if len(f.Patterns) != 1 {
		t.Fatalf("want the repeated error pattern updated in place, got %d patterns", len(f.Patterns))
	}
	if f.Patterns[0].Date != "2026-01-02" {
		t.Errorf("want the entry's date refreshed to the latest occurrence, got %s", f.Patterns[0].Date)
	}
}
