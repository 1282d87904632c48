// ABOUTME: Typed CRUD for the immutable Message entity
package repo

import (
	"context"
	"database/sql"

	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/store"
)

// Messages is the typed repository for Message rows.
type Messages struct {
	h *store.Handle
}

// NewMessages wraps h.
func NewMessages(h *store.Handle) *Messages { return &Messages{h: h} }

// AddBatch inserts msgs in a single transaction and returns the count
// inserted, per §4.2.
func (r *Messages) AddBatch(ctx context.Context, msgs []model.Message) (int, error) {
	if len(msgs) == 0 {
		return 0, nil
	}
	n := 0
	err := r.h.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO messages (session_ref, ts, role, content, project)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, m := range msgs {
			if _, err := stmt.ExecContext(ctx, m.SessionRef, m.TS, string(m.Role), m.Content, nullStr(m.Project)); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

// ByID fetches a single message, for show(kind, id).
func (r *Messages) ByID(ctx context.Context, id int64) (*model.Message, error) {
	row := r.h.DB().QueryRowContext(ctx, `
		SELECT id, session_ref, ts, role, content, project FROM messages WHERE id = ?
	`, id)
	return scanMessage(row)
}

// BySession returns every message for sessionRef ordered by (ts, id).
func (r *Messages) BySession(ctx context.Context, sessionRef string) ([]model.Message, error) {
	rows, err := r.h.DB().QueryContext(ctx, `
		SELECT id, session_ref, ts, role, content, project FROM messages
		WHERE session_ref = ? ORDER BY ts, id
	`, sessionRef)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// Range returns messages with id in [start, end] ordered by (ts, id), used
// by loa_messages (loa_quote).
func (r *Messages) Range(ctx context.Context, start, end int64) ([]model.Message, error) {
	rows, err := r.h.DB().QueryContext(ctx, `
		SELECT id, session_ref, ts, role, content, project FROM messages
		WHERE id >= ? AND id <= ? ORDER BY ts, id
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// SinceID returns messages with id > afterID, ordered by (ts, id), optionally
// capped to the last limit rows (tail semantics), for messages_since_last_loa.
func (r *Messages) SinceID(ctx context.Context, afterID int64, limit int) ([]model.Message, error) {
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = r.h.DB().QueryContext(ctx, `
			SELECT id, session_ref, ts, role, content, project FROM (
				SELECT id, session_ref, ts, role, content, project FROM messages
				WHERE id > ? ORDER BY ts DESC, id DESC LIMIT ?
			) ORDER BY ts, id
		`, afterID, limit)
	} else {
		rows, err = r.h.DB().QueryContext(ctx, `
			SELECT id, session_ref, ts, role, content, project FROM messages
			WHERE id > ? ORDER BY ts, id
		`, afterID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// All returns every message, optionally tail-limited, used when no LoA
// exists yet.
func (r *Messages) All(ctx context.Context, limit int) ([]model.Message, error) {
	return r.SinceID(ctx, 0, limit)
}

// Recent returns the most recent messages, newest first, for recent(kind).
func (r *Messages) Recent(ctx context.Context, project string, limit int) ([]model.Message, error) {
	var rows *sql.Rows
	var err error
	if project != "" {
		rows, err = r.h.DB().QueryContext(ctx, `
			SELECT id, session_ref, ts, role, content, project FROM messages
			WHERE project = ? ORDER BY ts DESC, id DESC LIMIT ?
		`, project, limit)
	} else {
		rows, err = r.h.DB().QueryContext(ctx, `
			SELECT id, session_ref, ts, role, content, project FROM messages
			ORDER BY ts DESC, id DESC LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// Count returns the total number of messages, for stats().
func (r *Messages) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.h.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n)
	return n, err
}

func scanMessage(row *sql.Row) (*model.Message, error) {
	var m model.Message
	var role string
	var project sql.NullString
	if err := row.Scan(&m.ID, &m.SessionRef, &m.TS, &role, &m.Content, &project); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	m.Role = model.Role(role)
	m.Project = strPtr(project)
	return &m, nil
}

func scanMessages(rows *sql.Rows) ([]model.Message, error) {
	var out []model.Message
	for rows.Next() {
		var m model.Message
		var role string
		var project sql.NullString
		if err := rows.Scan(&m.ID, &m.SessionRef, &m.TS, &role, &m.Content, &project); err != nil {
			return nil, err
		}
		m.Role = model.Role(role)
		m.Project = strPtr(project)
		out = append(out, m)
	}
	return out, rows.Err()
}
