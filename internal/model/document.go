// ABOUTME: Document entity — an optional imported file (diary, reference, wisdom, plan, ...)
package model

import "time"

// DocumentType is a closed enum over imported-document kinds.
type DocumentType string

const (
	DocDiary      DocumentType = "diary"
	DocReference  DocumentType = "reference"
	DocWisdom     DocumentType = "wisdom"
	DocPlan       DocumentType = "plan"
	DocMemory     DocumentType = "memory"
	DocEnterprise DocumentType = "enterprise"
	DocOther      DocumentType = "other"
)

// IsValid reports whether t is one of the known document types.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocDiary, DocReference, DocWisdom, DocPlan, DocMemory, DocEnterprise, DocOther:
		return true
	}
	return false
}

type Document struct {
	ID             int64
	Path           string
	Title          string
	Type           DocumentType
	Content        string
	Summary        *string
	SizeBytes      int64
	FileModifiedAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (d Document) EntityID() int64            { return d.ID }
func (d Document) EntityKind() Kind           { return KindDocument }
func (d Document) EntityCreatedAt() time.Time { return d.CreatedAt }
func (d Document) EntityProject() string      { return "" }

// RenderPreview returns a short snippet; the FTS-highlighted snippet used by
// search is computed separately (internal/search), this is the plain fallback.
func (d Document) RenderPreview() string { return truncate(d.Content, 200) }
