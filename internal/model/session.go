// ABOUTME: Session entity — one conversation/transcript lineage, keyed by external_id
package model

import "time"

// Session is created on first ingestion of a transcript and mutated only to
// set EndedAt and Summary.
type Session struct {
	ID         int64
	ExternalID string
	StartedAt  time.Time
	EndedAt    *time.Time
	Summary    *string
	Project    *string
	CWD        *string
	Branch     *string
	Model      *string
}
