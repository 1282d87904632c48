// ABOUTME: Typed CRUD for the Learning entity
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

// Learnings is the typed repository for Learning rows.
type Learnings struct {
	h *store.Handle
}

// NewLearnings wraps h.
func NewLearnings(h *store.Handle) *Learnings { return &Learnings{h: h} }

// Add inserts l, rejecting an empty Problem field with ErrInvalidInput.
func (r *Learnings) Add(ctx context.Context, l model.Learning) (int64, error) {
	if l.Problem == "" {
		return 0, fmt.Errorf("learning problem required: %w", memerr.ErrInvalidInput)
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	var id int64
	err := r.h.Transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO learnings (created_at, session_ref, category, project, problem, solution, prevention, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, l.CreatedAt, nullStr(l.SessionRef), nullStr(l.Category), nullStr(l.Project), l.Problem,
			nullStr(l.Solution), nullStr(l.Prevention), nullStr(l.Tags))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// ByID fetches a single learning, for show(kind, id).
func (r *Learnings) ByID(ctx context.Context, id int64) (*model.Learning, error) {
	row := r.h.DB().QueryRowContext(ctx, learningSelect+` WHERE id = ?`, id)
	return scanLearning(row)
}

// Recent returns the most recently created learnings, newest first.
func (r *Learnings) Recent(ctx context.Context, project string, limit int) ([]model.Learning, error) {
	var rows *sql.Rows
	var err error
	if project != "" {
		rows, err = r.h.DB().QueryContext(ctx, learningSelect+` WHERE project = ? ORDER BY created_at DESC LIMIT ?`, project, limit)
	} else {
		rows, err = r.h.DB().QueryContext(ctx, learningSelect+` ORDER BY created_at DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLearnings(rows)
}

// Count returns the total number of learnings, for stats().
func (r *Learnings) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.h.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM learnings`).Scan(&n)
	return n, err
}

const learningSelect = `SELECT id, created_at, session_ref, category, project, problem, solution, prevention, tags FROM learnings`

func scanLearning(row *sql.Row) (*model.Learning, error) {
	var l model.Learning
	var sessionRef, category, project, solution, prevention, tags sql.NullString
	if err := row.Scan(&l.ID, &l.CreatedAt, &sessionRef, &category, &project, &l.Problem, &solution, &prevention, &tags); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	l.SessionRef = strPtr(sessionRef)
	l.Category = strPtr(category)
	l.Project = strPtr(project)
	l.Solution = strPtr(solution)
	l.Prevention = strPtr(prevention)
	l.Tags = strPtr(tags)
	return &l, nil
}

func scanLearnings(rows *sql.Rows) ([]model.Learning, error) {
	var out []model.Learning
	for rows.Next() {
		var l model.Learning
		var sessionRef, category, project, solution, prevention, tags sql.NullString
		if err := rows.Scan(&l.ID, &l.CreatedAt, &sessionRef, &category, &project, &l.Problem, &solution, &prevention, &tags); err != nil {
			return nil, err
		}
		l.SessionRef = strPtr(sessionRef)
		l.Category = strPtr(category)
		l.Project = strPtr(project)
		l.Solution = strPtr(solution)
		l.Prevention = strPtr(prevention)
		l.Tags = strPtr(tags)
		out = append(out, l)
	}
	return out, rows.Err()
}
