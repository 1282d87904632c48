// ABOUTME: Vector store: upsert-by-(source_kind,source_id) and brute-force cosine top-k scan
// ABOUTME: Grounded on harperreed-memory's EmbeddingStore, generalized to the spec's entity set
package vector

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/store"
)

// Store persists and queries embeddings via the shared store.Handle.
type Store struct {
	h *store.Handle
}

// New wraps h in a vector Store.
func New(h *store.Handle) *Store {
	return &Store{h: h}
}

// Upsert replaces any existing embedding for (sourceKind, sourceID), per
// invariant 3: at most one row per (source_kind, source_id).
func (s *Store) Upsert(ctx context.Context, sourceKind string, sourceID int64, modelName string, vec []float32) error {
	blob := EncodeVector(vec)
	return s.h.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO embeddings (source_kind, source_id, model, dimensions, vector, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(source_kind, source_id) DO UPDATE SET
				model = excluded.model,
				dimensions = excluded.dimensions,
				vector = excluded.vector,
				created_at = excluded.created_at
		`, sourceKind, sourceID, modelName, len(vec), blob, time.Now().UTC())
		return err
	})
}

// Get returns the embedding for (sourceKind, sourceID), or nil if absent.
func (s *Store) Get(ctx context.Context, sourceKind string, sourceID int64) (*model.Embedding, error) {
	row := s.h.DB().QueryRowContext(ctx, `
		SELECT id, source_kind, source_id, model, dimensions, vector, created_at
		FROM embeddings WHERE source_kind = ? AND source_id = ?
	`, sourceKind, sourceID)
	return scanEmbedding(row)
}

func scanEmbedding(row *sql.Row) (*model.Embedding, error) {
	var e model.Embedding
	var blob []byte
	if err := row.Scan(&e.ID, &e.SourceKind, &e.SourceID, &e.Model, &e.Dimensions, &blob, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	vec, err := DecodeVector(blob, e.Dimensions)
	if err != nil {
		return nil, err
	}
	e.Vector = vec
	return &e, nil
}

// MissingEmbeddings returns up to limit source ids (row ids of the given
// kind's base table) that have no embeddings row, used by
// embed_backfill. When force is true, every row of kind is returned instead.
func (s *Store) MissingEmbeddings(ctx context.Context, kind string, limit int, force bool) ([]int64, error) {
	table := kind // base table shares its name with the kind across the schema
	var query string
	if force {
		query = fmt.Sprintf(`SELECT id FROM %s ORDER BY id LIMIT ?`, table)
	} else {
		query = fmt.Sprintf(`
			SELECT t.id FROM %s t
			LEFT JOIN embeddings e ON e.source_kind = ? AND e.source_id = t.id
			WHERE e.id IS NULL
			ORDER BY t.id LIMIT ?`, table)
	}
	var rows *sql.Rows
	var err error
	if force {
		rows, err = s.h.DB().QueryContext(ctx, query, limit)
	} else {
		rows, err = s.h.DB().QueryContext(ctx, query, kind, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Result is one hit from a brute-force similarity scan.
type Result struct {
	SourceKind string
	SourceID   int64
	Score      float64
}

// SearchSimilar performs the brute-force scan described in §4.4: decode
// every row (optionally filtered by sourceKind), score by cosine similarity
// against query, sort descending, and truncate to limit.
func (s *Store) SearchSimilar(ctx context.Context, query []float32, sourceKind string, limit int) ([]Result, error) {
	var rows *sql.Rows
	var err error
	if sourceKind != "" {
		rows, err = s.h.DB().QueryContext(ctx,
			`SELECT source_kind, source_id, dimensions, vector FROM embeddings WHERE source_kind = ?`, sourceKind)
	} else {
		rows, err = s.h.DB().QueryContext(ctx,
			`SELECT source_kind, source_id, dimensions, vector FROM embeddings`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var kind string
		var id int64
		var dims int
		var blob []byte
		if err := rows.Scan(&kind, &id, &dims, &blob); err != nil {
			return nil, err
		}
		if dims != len(query) {
			// Dimension mismatch against a stale model's rows is not a
			// programmer error here (the caller controls the query vector,
			// not these rows) — skip rather than panic.
			continue
		}
		vec, err := DecodeVector(blob, dims)
		if err != nil {
			continue
		}
		results = append(results, Result{
			SourceKind: kind,
			SourceID:   id,
			Score:      CosineSimilarity(query, vec),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Stats returns the row count and total vector byte size, for embed_stats().
func (s *Store) Stats(ctx context.Context) (count int64, totalBytes int64, err error) {
	err = s.h.DB().QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(vector)), 0) FROM embeddings`,
	).Scan(&count, &totalBytes)
	return count, totalBytes, err
}
