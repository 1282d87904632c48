// ABOUTME: Tests for heading-bounded bullet extraction and dedup-key normalization
package extract

import (
	"reflect"
	"testing"
)

func TestBulletsUnder_StopsAtNextHeading(t *testing.T) {
	text := `ONE SENTENCE SUMMARY
did the thing

DECISIONS MADE
- used sqlite over postgres
- kept the retry loop simple

ERRORS FIXED
- fixed the off-by-one
`
	got := BulletsUnder(text, "DECISIONS MADE")
	want := []string{"used sqlite over postgres", "kept the retry loop simple"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BulletsUnder() = %v, want %v", got, want)
	}
}

func TestBulletsUnder_MissingHeadingReturnsNil(t *testing.T) {
	if got := BulletsUnder("no headings here at all", "DECISIONS MADE"); got != nil {
		t.Errorf("want nil for a missing heading, got %v", got)
	}
}

func TestBulletsUnder_HandlesStarAndNumberedBullets(t *testing.T) {
	text := `ACTIONABLE ITEMS
* write more tests
1. ship the release
`
	got := BulletsUnder(text, "ACTIONABLE ITEMS")
	want := []string{"write more tests", "ship the release"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BulletsUnder() = %v, want %v", got, want)
	}
}

func TestNormalizeForDedup_LowercasesStripsQuotesCollapsesSpace(t *testing.T) {
	got := NormalizeForDedup(`  Used "SQLite"   over  'Postgres'  `)
	want := "used sqlite over postgres"
	if got != want {
		t.Errorf("NormalizeForDedup() = %q, want %q", got, want)
	}
}
