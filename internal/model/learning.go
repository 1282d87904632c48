// ABOUTME: Learning entity — problem/solution/prevention record
package model

import "time"

type Learning struct {
	ID         int64
	CreatedAt  time.Time
	SessionRef *string
	Category   *string
	Project    *string
	Problem    string
	Solution   *string
	Prevention *string
	Tags       *string
}

func (l Learning) EntityID() int64            { return l.ID }
func (l Learning) EntityKind() Kind           { return KindLearning }
func (l Learning) EntityCreatedAt() time.Time { return l.CreatedAt }
func (l Learning) EntityProject() string {
	if l.Project == nil {
		return ""
	}
	return *l.Project
}

// RenderPreview returns the problem text, per §4.6 projection rules.
func (l Learning) RenderPreview() string { return l.Problem }
