// ABOUTME: Tests for extraction-record growth detection and skip scheduling
package model

import (
	"testing"
	"time"
)

func TestGrewPastThreshold(t *testing.T) {
	tests := []struct {
		name        string
		sizeBytes   int64
		currentSize int64
		pct         float64
		want        bool
	}{
		{"no prior size, any growth counts", 0, 1, 0.5, true},
		{"no prior size, still empty", 0, 0, 0.5, false},
		{"below threshold", 1000, 1400, 0.5, false},
		{"above threshold", 1000, 1600, 0.5, true},
		{"exactly at threshold is not past it", 1000, 1500, 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ExtractionRecord{SizeBytes: tt.sizeBytes}
			if got := r.GrewPastThreshold(tt.currentSize, tt.pct); got != tt.want {
				t.Errorf("GrewPastThreshold(%d) = %v, want %v", tt.currentSize, got, tt.want)
			}
		})
	}
}

func TestShouldSkip_FailedRecordRespectsRetryAfter(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	r := ExtractionRecord{SizeBytes: 1000, FailedAt: &now, RetryAfter: &future}
	if !r.ShouldSkip(1000, now) {
		t.Error("want skip while within the retry cooldown window")
	}

	r.RetryAfter = &past
	if r.ShouldSkip(1000, now) {
		t.Error("want no skip once the retry cooldown has elapsed")
	}
}

func TestShouldSkip_ExtractedRecordSkipsUnlessGrown(t *testing.T) {
	now := time.Now().UTC()
	r := ExtractionRecord{SizeBytes: 1000, ExtractedAt: &now}

	if !r.ShouldSkip(1100, now) {
		t.Error("want skip when the transcript hasn't grown past the threshold")
	}
	if r.ShouldSkip(1700, now) {
		t.Error("want no skip when the transcript has grown past the threshold")
	}
}

func TestShouldSkip_NeverExtractedNeverSkips(t *testing.T) {
	r := ExtractionRecord{SizeBytes: 1000}
	if r.ShouldSkip(1000, time.Now().UTC()) {
		t.Error("want no skip for a record that has never been extracted or failed")
	}
}
