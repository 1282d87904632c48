// ABOUTME: Typed CRUD for the Decision entity
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/store"
)

// Decisions is the typed repository for Decision rows.
type Decisions struct {
	h *store.Handle
}

// NewDecisions wraps h.
func NewDecisions(h *store.Handle) *Decisions { return &Decisions{h: h} }

// Add inserts d, rejecting an empty Decision field with ErrInvalidInput.
func (r *Decisions) Add(ctx context.Context, d model.Decision) (int64, error) {
	if d.Decision == "" {
		return 0, fmt.Errorf("decision text required: %w", memerr.ErrInvalidInput)
	}
	if d.Status == "" {
		d.Status = model.DecisionActive
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	var id int64
	err := r.h.Transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO decisions (created_at, session_ref, category, project, decision, reasoning, alternatives, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, d.CreatedAt, nullStr(d.SessionRef), nullStr(d.Category), nullStr(d.Project), d.Decision,
			nullStr(d.Reasoning), nullStr(d.Alternatives), string(d.Status))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// ByID fetches a single decision, for show(kind, id).
func (r *Decisions) ByID(ctx context.Context, id int64) (*model.Decision, error) {
	row := r.h.DB().QueryRowContext(ctx, decisionSelect+` WHERE id = ?`, id)
	return scanDecision(row)
}

// Recent returns the most recently created decisions, newest first.
func (r *Decisions) Recent(ctx context.Context, project string, limit int) ([]model.Decision, error) {
	var rows *sql.Rows
	var err error
	if project != "" {
		rows, err = r.h.DB().QueryContext(ctx,
			decisionSelectRows+` WHERE project = ? ORDER BY created_at DESC LIMIT ?`, project, limit)
	} else {
		rows, err = r.h.DB().QueryContext(ctx,
			decisionSelectRows+` ORDER BY created_at DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDecisions(rows)
}

// Count returns the total number of decisions, for stats().
func (r *Decisions) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.h.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM decisions`).Scan(&n)
	return n, err
}

const decisionCols = `id, created_at, session_ref, category, project, decision, reasoning, alternatives, status`
const decisionSelect = `SELECT ` + decisionCols + ` FROM decisions`
const decisionSelectRows = decisionSelect

func scanDecision(row *sql.Row) (*model.Decision, error) {
	var d model.Decision
	var sessionRef, category, project, reasoning, alternatives sql.NullString
	var status string
	if err := row.Scan(&d.ID, &d.CreatedAt, &sessionRef, &category, &project, &d.Decision, &reasoning, &alternatives, &status); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	d.SessionRef = strPtr(sessionRef)
	d.Category = strPtr(category)
	d.Project = strPtr(project)
	d.Reasoning = strPtr(reasoning)
	d.Alternatives = strPtr(alternatives)
	d.Status = model.DecisionStatus(status)
	return &d, nil
}

func scanDecisions(rows *sql.Rows) ([]model.Decision, error) {
	var out []model.Decision
	for rows.Next() {
		var d model.Decision
		var sessionRef, category, project, reasoning, alternatives sql.NullString
		var status string
		if err := rows.Scan(&d.ID, &d.CreatedAt, &sessionRef, &category, &project, &d.Decision, &reasoning, &alternatives, &status); err != nil {
			return nil, err
		}
		d.SessionRef = strPtr(sessionRef)
		d.Category = strPtr(category)
		d.Project = strPtr(project)
		d.Reasoning = strPtr(reasoning)
		d.Alternatives = strPtr(alternatives)
		d.Status = model.DecisionStatus(status)
		out = append(out, d)
	}
	return out, rows.Err()
}
