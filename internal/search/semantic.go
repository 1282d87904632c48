// ABOUTME: Semantic (embedding) search per §4.6(b), projecting hits through the same rules as lexical
package search

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/memexlabs/memex/internal/embedclient"
	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/store"
	"github.com/memexlabs/memex/internal/vector"
)

// Semantic embeds query, runs a brute-force cosine scan per requested kind
// via the vector store, and projects hits through the same content rules
// lexical search uses. Callers should fall back to lexical-only when this
// returns an error wrapping memerr.ErrServiceUnavailable.
func Semantic(ctx context.Context, h *store.Handle, ec *embedclient.Client, vs *vector.Store, query string, kinds []model.Kind, limit int) ([]Result, error) {
	if len(kinds) == 0 {
		kinds = AllKinds
	}

	embedded, err := ec.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	var merged []Result
	for _, k := range kinds {
		hits, err := vs.SearchSimilar(ctx, embedded.Vector, string(k), limit)
		if err != nil {
			return nil, fmt.Errorf("semantic search kind %s: %w", k, err)
		}
		for _, hit := range hits {
			r, err := projectByID(ctx, h, k, hit.SourceID)
			if err != nil {
				return nil, err
			}
			if r == nil {
				continue // source row deleted since the embedding was created
			}
			r.Score = hit.Score
			r.Tag = TagVec
			merged = append(merged, *r)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// projectByID fetches and projects a single entity by kind+id, mirroring
// the lexical kindQueries' content rules but without an FTS match.
func projectByID(ctx context.Context, h *store.Handle, k model.Kind, id int64) (*Result, error) {
	switch k {
	case model.KindMessage:
		return projectMessage(ctx, h, id)
	case model.KindDecision:
		return projectSimple(ctx, h, model.KindDecision, `SELECT decision, project, created_at FROM decisions WHERE id = ?`, id, false)
	case model.KindLearning:
		return projectSimple(ctx, h, model.KindLearning, `SELECT problem, project, created_at FROM learnings WHERE id = ?`, id, false)
	case model.KindBreadcrumb:
		return projectSimple(ctx, h, model.KindBreadcrumb, `SELECT content, project, created_at FROM breadcrumbs WHERE id = ?`, id, false)
	case model.KindLoA:
		return projectLoA(ctx, h, id)
	case model.KindTelos:
		return projectTelos(ctx, h, id)
	case model.KindDocument:
		return projectDocument(ctx, h, id)
	}
	return nil, fmt.Errorf("unsupported kind for projection: %s", k)
}

func projectMessage(ctx context.Context, h *store.Handle, id int64) (*Result, error) {
	var content string
	var project sql.NullString
	var ts time.Time
	row := h.DB().QueryRowContext(ctx, `SELECT content, project, ts FROM messages WHERE id = ?`, id)
	if err := row.Scan(&content, &project, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &Result{Kind: model.KindMessage, ID: id, Project: project.String, CreatedAt: ts, Content: truncate(content, 200)}, nil
}

// projectSimple handles the {text, project, created_at} shape shared by
// decisions, learnings, and breadcrumbs.
func projectSimple(ctx context.Context, h *store.Handle, k model.Kind, q string, id int64, _ bool) (*Result, error) {
	var content string
	var project sql.NullString
	var ts time.Time
	row := h.DB().QueryRowContext(ctx, q, id)
	if err := row.Scan(&content, &project, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &Result{Kind: k, ID: id, Project: project.String, CreatedAt: ts, Content: content}, nil
}

func projectLoA(ctx context.Context, h *store.Handle, id int64) (*Result, error) {
	var title, extract string
	var project sql.NullString
	var ts time.Time
	row := h.DB().QueryRowContext(ctx, `SELECT title, extract, project, created_at FROM loa WHERE id = ?`, id)
	if err := row.Scan(&title, &extract, &project, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &Result{Kind: model.KindLoA, ID: id, Project: project.String, CreatedAt: ts,
		Content: title + ": " + truncate(extract, 200)}, nil
}

func projectTelos(ctx context.Context, h *store.Handle, id int64) (*Result, error) {
	var code, title string
	var ts time.Time
	row := h.DB().QueryRowContext(ctx, `SELECT code, title, created_at FROM telos WHERE id = ?`, id)
	if err := row.Scan(&code, &title, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &Result{Kind: model.KindTelos, ID: id, CreatedAt: ts, Content: code + ": " + title}, nil
}

func projectDocument(ctx context.Context, h *store.Handle, id int64) (*Result, error) {
	var content string
	var ts time.Time
	row := h.DB().QueryRowContext(ctx, `SELECT content, created_at FROM documents WHERE id = ?`, id)
	if err := row.Scan(&content, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &Result{Kind: model.KindDocument, ID: id, CreatedAt: ts, Content: truncate(content, 400)}, nil
}
