// ABOUTME: Embedding entity — one vector per (source_kind, source_id)
package model

import "time"

type Embedding struct {
	ID         int64
	SourceKind string
	SourceID   int64
	Model      string
	Dimensions int
	Vector     []float32
	CreatedAt  time.Time
}
