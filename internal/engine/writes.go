// ABOUTME: add_breadcrumb / add_decision / add_learning engine operations
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/model"
)

// AddBreadcrumbInput carries the optional fields for add_breadcrumb.
type AddBreadcrumbInput struct {
	Content    string
	Category   *string
	Project    *string
	SessionRef *string
	Importance *int
	ExpiresAt  *time.Time
}

// AddBreadcrumb validates non-empty content and delegates to C2.
func (e *Engine) AddBreadcrumb(ctx context.Context, in AddBreadcrumbInput) (int64, error) {
	if err := e.requireInit(); err != nil {
		return 0, err
	}
	if in.Content == "" {
		return 0, fmt.Errorf("breadcrumb content required: %w", memerr.ErrInvalidInput)
	}
	b := model.Breadcrumb{
		CreatedAt:  time.Now().UTC(),
		Content:    in.Content,
		Category:   in.Category,
		Project:    in.Project,
		SessionRef: in.SessionRef,
		ExpiresAt:  in.ExpiresAt,
	}
	if in.Importance != nil {
		b.Importance = model.ClampImportance(*in.Importance)
	} else {
		b.Importance = model.DefaultImportance
	}
	return e.breadcrumbs.Add(ctx, b)
}

// AddDecisionInput carries the optional fields for add_decision.
type AddDecisionInput struct {
	Decision     string
	Reasoning    *string
	Alternatives *string
	Category     *string
	Project      *string
	SessionRef   *string
}

// AddDecision validates non-empty decision text and delegates to C2.
func (e *Engine) AddDecision(ctx context.Context, in AddDecisionInput) (int64, error) {
	if err := e.requireInit(); err != nil {
		return 0, err
	}
	if in.Decision == "" {
		return 0, fmt.Errorf("decision text required: %w", memerr.ErrInvalidInput)
	}
	d := model.Decision{
		CreatedAt:    time.Now().UTC(),
		Decision:     in.Decision,
		Reasoning:    in.Reasoning,
		Alternatives: in.Alternatives,
		Category:     in.Category,
		Project:      in.Project,
		SessionRef:   in.SessionRef,
		Status:       model.DecisionActive,
	}
	return e.decisions.Add(ctx, d)
}

// AddLearningInput carries the optional fields for add_learning.
type AddLearningInput struct {
	Problem    string
	Solution   *string
	Prevention *string
	Tags       *string
	Category   *string
	Project    *string
	SessionRef *string
}

// AddLearning validates non-empty problem text and delegates to C2.
func (e *Engine) AddLearning(ctx context.Context, in AddLearningInput) (int64, error) {
	if err := e.requireInit(); err != nil {
		return 0, err
	}
	if in.Problem == "" {
		return 0, fmt.Errorf("learning problem required: %w", memerr.ErrInvalidInput)
	}
	l := model.Learning{
		CreatedAt:  time.Now().UTC(),
		Problem:    in.Problem,
		Solution:   in.Solution,
		Prevention: in.Prevention,
		Tags:       in.Tags,
		Category:   in.Category,
		Project:    in.Project,
		SessionRef: in.SessionRef,
	}
	return e.learnings.Add(ctx, l)
}
