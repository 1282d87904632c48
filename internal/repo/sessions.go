// ABOUTME: Typed CRUD for the Session entity, including the cascade-delete contract
// ABOUTME: Upsert/scan idiom grounded on harperreed-memory's storage/sqlite/blocks.go
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/store"
)

// Sessions is the typed repository for Session rows.
type Sessions struct {
	h *store.Handle
}

// NewSessions wraps h.
func NewSessions(h *store.Handle) *Sessions { return &Sessions{h: h} }

// Create inserts a new session, failing with ErrDuplicate if external_id
// already exists.
func (r *Sessions) Create(ctx context.Context, s model.Session) (int64, error) {
	var id int64
	err := r.h.Transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (external_id, started_at, ended_at, summary, project, cwd, branch, model)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, s.ExternalID, s.StartedAt, nullTime(s.EndedAt), nullStr(s.Summary), nullStr(s.Project),
			nullStr(s.CWD), nullStr(s.Branch), nullStr(s.Model))
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("session %q: %w", s.ExternalID, memerr.ErrDuplicate)
			}
			return fmt.Errorf("insert session: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// Exists reports whether a session with externalID already exists.
func (r *Sessions) Exists(ctx context.Context, externalID string) (bool, error) {
	var n int
	err := r.h.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE external_id = ?`, externalID).Scan(&n)
	return n > 0, err
}

// Count returns the total number of sessions, for stats().
func (r *Sessions) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.h.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n)
	return n, err
}

// GetByExternalID fetches one session, or nil if not found.
func (r *Sessions) GetByExternalID(ctx context.Context, externalID string) (*model.Session, error) {
	row := r.h.DB().QueryRowContext(ctx, `
		SELECT id, external_id, started_at, ended_at, summary, project, cwd, branch, model
		FROM sessions WHERE external_id = ?`, externalID)
	return scanSession(row)
}

// UpdateSummary sets EndedAt and Summary on an existing session — the only
// permitted mutation per §3.
func (r *Sessions) UpdateSummary(ctx context.Context, externalID string, endedAt time.Time, summary string) error {
	return r.h.Transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE sessions SET ended_at = ?, summary = ? WHERE external_id = ?
		`, endedAt, summary, externalID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("session %q: %w", externalID, memerr.ErrNotFound)
		}
		return nil
	})
}

// DeleteCascade implements §4.2's delete_session_cascade: within one
// transaction, finds the session's message id range, deletes LoA entries
// whose range falls entirely inside it (descendants before ancestors so FK
// references resolve), then the messages, then the session row. Returns the
// number of messages deleted.
func (r *Sessions) DeleteCascade(ctx context.Context, externalID string) (int64, error) {
	var deleted int64
	err := r.h.Transaction(ctx, func(tx *sql.Tx) error {
		var minID, maxID sql.NullInt64
		err := tx.QueryRowContext(ctx, `
			SELECT MIN(id), MAX(id) FROM messages WHERE session_ref = ?
		`, externalID).Scan(&minID, &maxID)
		if err != nil {
			return err
		}

		if minID.Valid {
			if err := deleteContainedLoA(ctx, tx, minID.Int64, maxID.Int64); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_ref = ?`, externalID)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE external_id = ?`, externalID); err != nil {
			return err
		}
		return nil
	})
	return deleted, err
}

// deleteContainedLoA deletes every LoA entry whose range is fully contained
// in [minID, maxID], children before parents so no FK reference to an
// about-to-be-deleted row survives. Per §9 Open Question 1, entries that
// only partially overlap the deleted range are left untouched.
func deleteContainedLoA(ctx context.Context, tx *sql.Tx, minID, maxID int64) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM loa WHERE range_start IS NOT NULL AND range_end IS NOT NULL
		AND range_start >= ? AND range_end <= ?
	`, minID, maxID)
	if err != nil {
		return err
	}
	var contained []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		contained = append(contained, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(contained) == 0 {
		return nil
	}

	contained = topoSortChildrenFirst(ctx, tx, contained)
	for _, id := range contained {
		if _, err := tx.ExecContext(ctx, `DELETE FROM loa WHERE id = ?`, id); err != nil {
			return err
		}
	}
	return nil
}

// topoSortChildrenFirst orders ids so that no id appears before any of its
// descendants within the set, by repeatedly peeling off leaves (entries
// whose children, if any, are not themselves in the remaining set).
func topoSortChildrenFirst(ctx context.Context, tx *sql.Tx, ids []int64) []int64 {
	remaining := make(map[int64]bool, len(ids))
	for _, id := range ids {
		remaining[id] = true
	}
	childOf := make(map[int64][]int64)
	for id := range remaining {
		var parent sql.NullInt64
		_ = tx.QueryRowContext(ctx, `SELECT parent FROM loa WHERE id = ?`, id).Scan(&parent)
		if parent.Valid {
			childOf[parent.Int64] = append(childOf[parent.Int64], id)
		}
	}

	var ordered []int64
	for len(remaining) > 0 {
		progressed := false
		for id := range remaining {
			hasRemainingChild := false
			for _, c := range childOf[id] {
				if remaining[c] {
					hasRemainingChild = true
					break
				}
			}
			if !hasRemainingChild {
				ordered = append(ordered, id)
				delete(remaining, id)
				progressed = true
			}
		}
		if !progressed {
			// Cycle guard: should not happen for a tree, but avoid hanging.
			for id := range remaining {
				ordered = append(ordered, id)
				delete(remaining, id)
			}
		}
	}
	return ordered
}

func scanSession(row *sql.Row) (*model.Session, error) {
	var s model.Session
	var endedAt sql.NullTime
	var summary, project, cwd, branch, mdl sql.NullString
	err := row.Scan(&s.ID, &s.ExternalID, &s.StartedAt, &endedAt, &summary, &project, &cwd, &branch, &mdl)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.EndedAt = timePtr(endedAt)
	s.Summary = strPtr(summary)
	s.Project = strPtr(project)
	s.CWD = strPtr(cwd)
	s.Branch = strPtr(branch)
	s.Model = strPtr(mdl)
	return &s, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}
