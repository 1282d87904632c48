// ABOUTME: Typed CRUD for the optional Document entity — imported files
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

// Documents is the typed repository for Document rows.
type Documents struct {
	h *store.Handle
}

// NewDocuments wraps h.
func NewDocuments(h *store.Handle) *Documents { return &Documents{h: h} }

// Upsert inserts or replaces a document keyed by its unique Path.
func (r *Documents) Upsert(ctx context.Context, d model.Document) (int64, error) {
	if d.Path == "" || d.Title == "" {
		return 0, fmt.Errorf("document path and title required: %w", memerr.ErrInvalidInput)
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	var id int64
	err := r.h.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents (path, title, type, content, summary, size_bytes, file_modified_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				title = excluded.title, type = excluded.type, content = excluded.content,
				summary = excluded.summary, size_bytes = excluded.size_bytes,
				file_modified_at = excluded.file_modified_at, updated_at = excluded.updated_at
		`, d.Path, d.Title, string(d.Type), d.Content, nullStr(d.Summary), d.SizeBytes, d.FileModifiedAt, d.CreatedAt, d.UpdatedAt)
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, `SELECT id FROM documents WHERE path = ?`, d.Path).Scan(&id)
	})
	return id, err
}

// ByID fetches a single document, for show(kind, id).
func (r *Documents) ByID(ctx context.Context, id int64) (*model.Document, error) {
	row := r.h.DB().QueryRowContext(ctx, documentSelect+` WHERE id = ?`, id)
	return scanDocument(row)
}

// Recent returns documents newest-first, for recent(kind="documents").
func (r *Documents) Recent(ctx context.Context, limit int) ([]model.Document, error) {
	rows, err := r.h.DB().QueryContext(ctx, documentSelect+` ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Count returns the total number of documents, for stats().
func (r *Documents) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.h.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

const documentSelect = `SELECT id, path, title, type, content, summary, size_bytes, file_modified_at, created_at, updated_at FROM documents`

func scanDocument(row *sql.Row) (*model.Document, error) {
	var d model.Document
	var typ string
	var summary sql.NullString
	var fileModifiedAt sql.NullTime
	if err := row.Scan(&d.ID, &d.Path, &d.Title, &typ, &d.Content, &summary, &d.SizeBytes, &fileModifiedAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	d.Type = model.DocumentType(typ)
	d.Summary = strPtr(summary)
	if fileModifiedAt.Valid {
		d.FileModifiedAt = fileModifiedAt.Time
	}
	return &d, nil
}

func scanDocuments(rows *sql.Rows) ([]model.Document, error) {
	var out []model.Document
	for rows.Next() {
		var d model.Document
		var typ string
		var summary sql.NullString
		var fileModifiedAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.Path, &d.Title, &typ, &d.Content, &summary, &d.SizeBytes, &fileModifiedAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.Type = model.DocumentType(typ)
		d.Summary = strPtr(summary)
		if fileModifiedAt.Valid {
			d.FileModifiedAt = fileModifiedAt.Time
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
