// ABOUTME: Typed CRUD for the optional TELOS entry entity
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

// Telos is the typed repository for TELOS entry rows.
type Telos struct {
	h *store.Handle
}

// NewTelos wraps h.
func NewTelos(h *store.Handle) *Telos { return &Telos{h: h} }

// Upsert inserts or replaces a TELOS entry keyed by its unique Code.
func (r *Telos) Upsert(ctx context.Context, t model.TelosEntry) (int64, error) {
	if t.Code == "" || t.Title == "" {
		return 0, fmt.Errorf("telos code and title required: %w", memerr.ErrInvalidInput)
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	var id int64
	err := r.h.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO telos (code, type, category, title, content, parent_code, source_file, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(code) DO UPDATE SET
				type = excluded.type, category = excluded.category, title = excluded.title,
				content = excluded.content, parent_code = excluded.parent_code,
				source_file = excluded.source_file, updated_at = excluded.updated_at
		`, t.Code, string(t.Type), nullStr(t.Category), t.Title, t.Content, nullStr(t.ParentCode),
			nullStr(t.SourceFile), t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, `SELECT id FROM telos WHERE code = ?`, t.Code).Scan(&id)
	})
	return id, err
}

// ByID fetches a single TELOS entry, for show(kind, id).
func (r *Telos) ByID(ctx context.Context, id int64) (*model.TelosEntry, error) {
	row := r.h.DB().QueryRowContext(ctx, telosSelect+` WHERE id = ?`, id)
	return scanTelos(row)
}

// Recent returns TELOS entries newest-first, for recent(kind="telos").
func (r *Telos) Recent(ctx context.Context, limit int) ([]model.TelosEntry, error) {
	rows, err := r.h.DB().QueryContext(ctx, telosSelect+` ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeloses(rows)
}

// Count returns the total number of TELOS entries, for stats().
func (r *Telos) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.h.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM telos`).Scan(&n)
	return n, err
}

const telosSelect = `SELECT id, code, type, category, title, content, parent_code, source_file, created_at, updated_at FROM telos`

func scanTelos(row *sql.Row) (*model.TelosEntry, error) {
	var t model.TelosEntry
	var typ string
	var category, parentCode, sourceFile sql.NullString
	if err := row.Scan(&t.ID, &t.Code, &typ, &category, &t.Title, &t.Content, &parentCode, &sourceFile, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	t.Type = model.TelosType(typ)
	t.Category = strPtr(category)
	t.ParentCode = strPtr(parentCode)
	t.SourceFile = strPtr(sourceFile)
	return &t, nil
}

func scanTeloses(rows *sql.Rows) ([]model.TelosEntry, error) {
	var out []model.TelosEntry
	for rows.Next() {
		var t model.TelosEntry
		var typ string
		var category, parentCode, sourceFile sql.NullString
		if err := rows.Scan(&t.ID, &t.Code, &typ, &category, &t.Title, &t.Content, &parentCode, &sourceFile, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Type = model.TelosType(typ)
		t.Category = strPtr(category)
		t.ParentCode = strPtr(parentCode)
		t.SourceFile = strPtr(sourceFile)
		out = append(out, t)
	}
	return out, rows.Err()
}
