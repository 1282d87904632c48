// ABOUTME: ExtractionRecord — per-transcript pipeline state used for dedup, growth, and retry
package model

import "time"

// ExtractionRecord tracks one transcript path. Never user-editable; only the
// extraction pipeline writes it.
type ExtractionRecord struct {
	Path        string     `json:"path"`
	SizeBytes   int64      `json:"size"`
	ExtractedAt *time.Time `json:"extractedAt,omitempty"`
	FailedAt    *time.Time `json:"failedAt,omitempty"`
	RetryAfter  *time.Time `json:"retryAfter,omitempty"`
}

// GrewPastThreshold reports whether currentSize has grown by more than pct
// (e.g. 0.5 for 50%) relative to r.SizeBytes.
func (r ExtractionRecord) GrewPastThreshold(currentSize int64, pct float64) bool {
	if r.SizeBytes <= 0 {
		return currentSize > 0
	}
	return float64(currentSize) > float64(r.SizeBytes)*(1+pct)
}

// ShouldSkip implements the §4.7 dedup/scheduling decision for a record that
// is already on file, given the transcript's current size and the current
// time.
func (r ExtractionRecord) ShouldSkip(currentSize int64, now time.Time) bool {
	if r.FailedAt != nil {
		if r.RetryAfter != nil && now.Before(*r.RetryAfter) {
			return true
		}
		return false
	}
	if r.ExtractedAt != nil {
		return !r.GrewPastThreshold(currentSize, 0.5)
	}
	return false
}
