// ABOUTME: LoA (Library of Alexandria) entry — a curated extract spanning a range of messages
package model

import (
	"strings"
	"time"
)

// LoAEntry forms a forest via Parent. RangeStart..RangeEnd denotes a
// contiguous span of Message.ID values within SessionRef.
type LoAEntry struct {
	ID           int64
	CreatedAt    time.Time
	Title        string
	Description  *string
	Extract      string
	RangeStart   *int64
	RangeEnd     *int64
	Parent       *int64
	SessionRef   *string
	Project      *string
	Tags         *string
	MessageCount *int
}

func (e LoAEntry) EntityID() int64            { return e.ID }
func (e LoAEntry) EntityKind() Kind           { return KindLoA }
func (e LoAEntry) EntityCreatedAt() time.Time { return e.CreatedAt }
func (e LoAEntry) EntityProject() string {
	if e.Project == nil {
		return ""
	}
	return *e.Project
}

// RenderPreview returns "{title}: {first 200 chars of extract}", per §4.6.
func (e LoAEntry) RenderPreview() string {
	extract := e.Extract
	r := []rune(extract)
	if len(r) > 200 {
		extract = string(r[:200])
	}
	var b strings.Builder
	b.WriteString(e.Title)
	b.WriteString(": ")
	b.WriteString(extract)
	return b.String()
}

// HasRange reports whether the entry carries a message range.
func (e LoAEntry) HasRange() bool {
	return e.RangeStart != nil && e.RangeEnd != nil
}
