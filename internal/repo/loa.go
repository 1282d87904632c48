// ABOUTME: Typed CRUD for the LoA entry entity — curated extracts forming a forest via parent
package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/store"
)

// LoA is the typed repository for LoA entry rows.
type LoA struct {
	h *store.Handle
}

// NewLoA wraps h.
func NewLoA(h *store.Handle) *LoA { return &LoA{h: h} }

// Create inserts e, trusting the caller-supplied range with no deep
// validation, per §4.2.
func (r *LoA) Create(ctx context.Context, e model.LoAEntry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	var id int64
	err := r.h.Transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO loa (created_at, title, description, extract, range_start, range_end, parent, session_ref, project, tags, message_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.CreatedAt, e.Title, nullStr(e.Description), e.Extract, nullInt64(e.RangeStart), nullInt64(e.RangeEnd),
			nullInt64(e.Parent), nullStr(e.SessionRef), nullStr(e.Project), nullStr(e.Tags), nullInt(e.MessageCount))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// ByID fetches a single LoA entry, for show(kind, id) / loa_show.
func (r *LoA) ByID(ctx context.Context, id int64) (*model.LoAEntry, error) {
	row := r.h.DB().QueryRowContext(ctx, loaSelect+` WHERE id = ?`, id)
	return scanLoA(row)
}

// Latest returns the most recently created LoA entry overall, used to find
// the current range_end for messages_since_last_loa.
func (r *LoA) Latest(ctx context.Context) (*model.LoAEntry, error) {
	row := r.h.DB().QueryRowContext(ctx, loaSelect+` ORDER BY created_at DESC, id DESC LIMIT 1`)
	return scanLoA(row)
}

// List returns LoA entries newest-first, capped at limit, for loa_list.
func (r *LoA) List(ctx context.Context, limit int) ([]model.LoAEntry, error) {
	rows, err := r.h.DB().QueryContext(ctx, loaSelect+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoAs(rows)
}

// Recent mirrors List with an optional project filter, for recent(kind="loa").
func (r *LoA) Recent(ctx context.Context, project string, limit int) ([]model.LoAEntry, error) {
	if project == "" {
		return r.List(ctx, limit)
	}
	rows, err := r.h.DB().QueryContext(ctx, loaSelect+` WHERE project = ? ORDER BY created_at DESC, id DESC LIMIT ?`, project, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoAs(rows)
}

// Count returns the total number of LoA entries, for stats().
func (r *LoA) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.h.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM loa`).Scan(&n)
	return n, err
}

const loaSelect = `SELECT id, created_at, title, description, extract, range_start, range_end, parent, session_ref, project, tags, message_count FROM loa`

func scanLoA(row *sql.Row) (*model.LoAEntry, error) {
	var e model.LoAEntry
	var description, sessionRef, project, tags sql.NullString
	var rangeStart, rangeEnd, parent sql.NullInt64
	var messageCount sql.NullInt64
	if err := row.Scan(&e.ID, &e.CreatedAt, &e.Title, &description, &e.Extract, &rangeStart, &rangeEnd,
		&parent, &sessionRef, &project, &tags, &messageCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	e.Description = strPtr(description)
	e.RangeStart = int64Ptr(rangeStart)
	e.RangeEnd = int64Ptr(rangeEnd)
	e.Parent = int64Ptr(parent)
	e.SessionRef = strPtr(sessionRef)
	e.Project = strPtr(project)
	e.Tags = strPtr(tags)
	e.MessageCount = intPtr(messageCount)
	return &e, nil
}

func scanLoAs(rows *sql.Rows) ([]model.LoAEntry, error) {
	var out []model.LoAEntry
	for rows.Next() {
		var e model.LoAEntry
		var description, sessionRef, project, tags sql.NullString
		var rangeStart, rangeEnd, parent sql.NullInt64
		var messageCount sql.NullInt64
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Title, &description, &e.Extract, &rangeStart, &rangeEnd,
			&parent, &sessionRef, &project, &tags, &messageCount); err != nil {
			return nil, err
		}
		e.Description = strPtr(description)
		e.RangeStart = int64Ptr(rangeStart)
		e.RangeEnd = int64Ptr(rangeEnd)
		e.Parent = int64Ptr(parent)
		e.SessionRef = strPtr(sessionRef)
		e.Project = strPtr(project)
		e.Tags = strPtr(tags)
		e.MessageCount = intPtr(messageCount)
		out = append(out, e)
	}
	return out, rows.Err()
}
