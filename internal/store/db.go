// ABOUTME: Embedded SQLite handle: open/init/transaction primitives, schema versioning, file permissions
// ABOUTME: Grounded on harperreed-memory's storage/sqlite/db.go, DSN pragmas on itsddvn-goclaw's sqlite.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/memexlabs/memex/internal/memerr"
)

// Handle wraps the single *sql.DB the process keeps open against the memory
// store. Per DESIGN NOTES §9 there is no package-level singleton: the
// process root constructs exactly one Handle and passes it to every
// component by reference.
type Handle struct {
	db   *sql.DB
	path string
}

// Open opens the store at path without applying migrations. It fails with
// ErrNotInitialized if the file does not already exist; callers that intend
// to create the store must use Init first.
func Open(path string) (*Handle, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("open %s: %w", path, memerr.ErrNotInitialized)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return openHandle(path)
}

// Init creates the directory and database file if missing, applies the
// schema (idempotently), and records/validates the schema version. It
// returns whether the file was newly created.
func Init(path string) (h *Handle, created bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, false, fmt.Errorf("create data dir: %w", err)
	}
	_, statErr := os.Stat(path)
	created = os.IsNotExist(statErr)

	h, err = openHandle(path)
	if err != nil {
		return nil, false, err
	}
	if err := h.migrate(); err != nil {
		h.Close()
		return nil, false, err
	}
	if err := h.lockDownPermissions(); err != nil {
		h.Close()
		return nil, false, err
	}
	return h, created, nil
}

func openHandle(path string) (*Handle, error) {
	dsn := fmt.Sprintf(
		"%s?_pragma=foreign_keys(ON)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Handle{db: db, path: path}, nil
}

func (h *Handle) migrate() error {
	var onDisk int
	err := h.db.QueryRow(`SELECT version FROM schema_meta WHERE id = 1`).Scan(&onDisk)
	switch {
	case err == sql.ErrNoRows:
		onDisk = 0
	case err != nil && isNoSuchTable(err):
		onDisk = 0
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	}

	if onDisk > SchemaVersion {
		return fmt.Errorf("on-disk schema version %d newer than %d: %w", onDisk, SchemaVersion, memerr.ErrSchemaTooNew)
	}

	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := h.db.Exec(
		`INSERT INTO schema_meta (id, version) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version = excluded.version`,
		SchemaVersion,
	); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

func isNoSuchTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// lockDownPermissions enforces invariant 6: the data file and its WAL/SHM
// sidecars are owner-only readable.
func (h *Handle) lockDownPermissions() error {
	for _, suffix := range []string{"", "-wal", "-shm"} {
		p := h.path + suffix
		if _, err := os.Stat(p); err == nil {
			if err := os.Chmod(p, 0600); err != nil {
				return fmt.Errorf("chmod %s: %w", p, err)
			}
		}
	}
	return nil
}

// Transaction runs fn within an exclusive write transaction. Any error
// returned by fn rolls back the whole transaction; suspension points (HTTP,
// subprocess, filesystem walks) must never occur inside fn per §5.
func (h *Handle) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// DB exposes the underlying *sql.DB for read-only query construction in the
// repository layer. Writers must go through Transaction.
func (h *Handle) DB() *sql.DB { return h.db }

// Path returns the on-disk path of the store file.
func (h *Handle) Path() string { return h.path }

// Size returns the current size in bytes of the store file, used by stats().
func (h *Handle) Size() (int64, error) {
	info, err := os.Stat(h.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Close releases the underlying database connection.
func (h *Handle) Close() error {
	return h.db.Close()
}
