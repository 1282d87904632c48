// ABOUTME: TELOS entry — an optional purpose-framework record (identity, goals, strategy, ...)
package model

import "time"

// TelosType is a closed enum over the TELOS framework's node kinds.
type TelosType string

const (
	TelosIdentity   TelosType = "identity"
	TelosProblem    TelosType = "problem"
	TelosMission    TelosType = "mission"
	TelosGoal       TelosType = "goal"
	TelosChallenge  TelosType = "challenge"
	TelosStrategy   TelosType = "strategy"
	TelosProject    TelosType = "project"
	TelosSkill      TelosType = "skill"
	TelosAspiration TelosType = "aspiration"
	TelosMetric     TelosType = "metric"
	TelosOther      TelosType = "other"
)

// IsValid reports whether t is one of the known TELOS types.
func (t TelosType) IsValid() bool {
	switch t {
	case TelosIdentity, TelosProblem, TelosMission, TelosGoal, TelosChallenge,
		TelosStrategy, TelosProject, TelosSkill, TelosAspiration, TelosMetric, TelosOther:
		return true
	}
	return false
}

type TelosEntry struct {
	ID         int64
	Code       string
	Type       TelosType
	Category   *string
	Title      string
	Content    string
	ParentCode *string
	SourceFile *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t TelosEntry) EntityID() int64            { return t.ID }
func (t TelosEntry) EntityKind() Kind           { return KindTelos }
func (t TelosEntry) EntityCreatedAt() time.Time { return t.CreatedAt }
func (t TelosEntry) EntityProject() string      { return "" }

// RenderPreview returns "{code}: {title}", per §4.6 projection rules.
func (t TelosEntry) RenderPreview() string { return t.Code + ": " + t.Title }
