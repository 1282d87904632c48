// ABOUTME: Typed CRUD for the Breadcrumb entity
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

// Breadcrumbs is the typed repository for Breadcrumb rows.
type Breadcrumbs struct {
	h *store.Handle
}

// NewBreadcrumbs wraps h.
func NewBreadcrumbs(h *store.Handle) *Breadcrumbs { return &Breadcrumbs{h: h} }

// Add inserts b, rejecting an empty Content field with ErrInvalidInput and
// defaulting Importance to 5 per §3.
func (r *Breadcrumbs) Add(ctx context.Context, b model.Breadcrumb) (int64, error) {
	if b.Content == "" {
		return 0, fmt.Errorf("breadcrumb content required: %w", memerr.ErrInvalidInput)
	}
	if b.Importance == 0 {
		b.Importance = model.DefaultImportance
	}
	b.Importance = model.ClampImportance(b.Importance)
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	var id int64
	err := r.h.Transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO breadcrumbs (created_at, session_ref, content, category, project, importance, expires_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, b.CreatedAt, nullStr(b.SessionRef), b.Content, nullStr(b.Category), nullStr(b.Project),
			b.Importance, nullTime(b.ExpiresAt))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// ByID fetches a single breadcrumb, for show(kind, id).
func (r *Breadcrumbs) ByID(ctx context.Context, id int64) (*model.Breadcrumb, error) {
	row := r.h.DB().QueryRowContext(ctx, breadcrumbSelect+` WHERE id = ?`, id)
	return scanBreadcrumb(row)
}

// Recent returns the most recently created breadcrumbs, newest first.
func (r *Breadcrumbs) Recent(ctx context.Context, project string, limit int) ([]model.Breadcrumb, error) {
	var rows *sql.Rows
	var err error
	if project != "" {
		rows, err = r.h.DB().QueryContext(ctx, breadcrumbSelect+` WHERE project = ? ORDER BY created_at DESC LIMIT ?`, project, limit)
	} else {
		rows, err = r.h.DB().QueryContext(ctx, breadcrumbSelect+` ORDER BY created_at DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBreadcrumbs(rows)
}

// Count returns the total number of breadcrumbs, for stats().
func (r *Breadcrumbs) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.h.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM breadcrumbs`).Scan(&n)
	return n, err
}

const breadcrumbSelect = `SELECT id, created_at, session_ref, content, category, project, importance, expires_at FROM breadcrumbs`

func scanBreadcrumb(row *sql.Row) (*model.Breadcrumb, error) {
	var b model.Breadcrumb
	var sessionRef, category, project sql.NullString
	var expiresAt sql.NullTime
	if err := row.Scan(&b.ID, &b.CreatedAt, &sessionRef, &b.Content, &category, &project, &b.Importance, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	b.SessionRef = strPtr(sessionRef)
	b.Category = strPtr(category)
	b.Project = strPtr(project)
	b.ExpiresAt = timePtr(expiresAt)
	return &b, nil
}

func scanBreadcrumbs(rows *sql.Rows) ([]model.Breadcrumb, error) {
	var out []model.Breadcrumb
	for rows.Next() {
		var b model.Breadcrumb
		var sessionRef, category, project sql.NullString
		var expiresAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.CreatedAt, &sessionRef, &b.Content, &category, &project, &b.Importance, &expiresAt); err != nil {
			return nil, err
		}
		b.SessionRef = strPtr(sessionRef)
		b.Category = strPtr(category)
		b.Project = strPtr(project)
		b.ExpiresAt = timePtr(expiresAt)
		out = append(out, b)
	}
	return out, rows.Err()
}
