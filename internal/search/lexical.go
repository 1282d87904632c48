// ABOUTME: Lexical (FTS5) search across entity kinds, fused/ranked per §4.6(a)
// ABOUTME: bm25-rank-to-score normalization grounded on itsddvn-goclaw's SearchFTS
package search

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/store"
)

// kindQuery describes how to run an FTS query for one entity kind and
// project the result row back into a Result.
type kindQuery struct {
	kind          model.Kind
	sql           string // %s placeholder for the optional project filter clause
	projectColumn string // empty if this kind carries no project column
	scan          func(rows *sql.Rows) (Result, error)
}

var kindQueries = map[model.Kind]kindQuery{
	model.KindMessage: {
		kind:          model.KindMessage,
		projectColumn: "m.project",
		sql: `SELECT m.id, m.content, m.project, m.ts, 1.0/(1.0+abs(messages_fts.rank)) AS score
			FROM messages_fts JOIN messages m ON m.id = messages_fts.rowid
			WHERE messages_fts MATCH ? %s ORDER BY rank LIMIT ?`,
		scan: func(rows *sql.Rows) (Result, error) {
			var id int64
			var content string
			var project sql.NullString
			var ts time.Time
			var score float64
			if err := rows.Scan(&id, &content, &project, &ts, &score); err != nil {
				return Result{}, err
			}
			return Result{Kind: model.KindMessage, ID: id, Project: project.String, CreatedAt: ts,
				Content: truncate(content, 200), Score: score}, nil
		},
	},
	model.KindDecision: {
		kind:          model.KindDecision,
		projectColumn: "d.project",
		sql: `SELECT d.id, d.decision, d.project, d.created_at, 1.0/(1.0+abs(decisions_fts.rank)) AS score
			FROM decisions_fts JOIN decisions d ON d.id = decisions_fts.rowid
			WHERE decisions_fts MATCH ? %s ORDER BY rank LIMIT ?`,
		scan: func(rows *sql.Rows) (Result, error) {
			var id int64
			var text string
			var project sql.NullString
			var createdAt time.Time
			var score float64
			if err := rows.Scan(&id, &text, &project, &createdAt, &score); err != nil {
				return Result{}, err
			}
			return Result{Kind: model.KindDecision, ID: id, Project: project.String, CreatedAt: createdAt,
				Content: text, Score: score}, nil
		},
	},
	model.KindLearning: {
		kind:          model.KindLearning,
		projectColumn: "l.project",
		sql: `SELECT l.id, l.problem, l.project, l.created_at, 1.0/(1.0+abs(learnings_fts.rank)) AS score
			FROM learnings_fts JOIN learnings l ON l.id = learnings_fts.rowid
			WHERE learnings_fts MATCH ? %s ORDER BY rank LIMIT ?`,
		scan: func(rows *sql.Rows) (Result, error) {
			var id int64
			var text string
			var project sql.NullString
			var createdAt time.Time
			var score float64
			if err := rows.Scan(&id, &text, &project, &createdAt, &score); err != nil {
				return Result{}, err
			}
			return Result{Kind: model.KindLearning, ID: id, Project: project.String, CreatedAt: createdAt,
				Content: text, Score: score}, nil
		},
	},
	model.KindBreadcrumb: {
		kind:          model.KindBreadcrumb,
		projectColumn: "b.project",
		sql: `SELECT b.id, b.content, b.project, b.created_at, 1.0/(1.0+abs(breadcrumbs_fts.rank)) AS score
			FROM breadcrumbs_fts JOIN breadcrumbs b ON b.id = breadcrumbs_fts.rowid
			WHERE breadcrumbs_fts MATCH ? %s ORDER BY rank LIMIT ?`,
		scan: func(rows *sql.Rows) (Result, error) {
			var id int64
			var text string
			var project sql.NullString
			var createdAt time.Time
			var score float64
			if err := rows.Scan(&id, &text, &project, &createdAt, &score); err != nil {
				return Result{}, err
			}
			return Result{Kind: model.KindBreadcrumb, ID: id, Project: project.String, CreatedAt: createdAt,
				Content: text, Score: score}, nil
		},
	},
	model.KindLoA: {
		kind:          model.KindLoA,
		projectColumn: "o.project",
		sql: `SELECT o.id, o.title, o.extract, o.project, o.created_at, 1.0/(1.0+abs(loa_fts.rank)) AS score
			FROM loa_fts JOIN loa o ON o.id = loa_fts.rowid
			WHERE loa_fts MATCH ? %s ORDER BY rank LIMIT ?`,
		scan: func(rows *sql.Rows) (Result, error) {
			var id int64
			var title, extract string
			var project sql.NullString
			var createdAt time.Time
			var score float64
			if err := rows.Scan(&id, &title, &extract, &project, &createdAt, &score); err != nil {
				return Result{}, err
			}
			return Result{Kind: model.KindLoA, ID: id, Project: project.String, CreatedAt: createdAt,
				Content: title + ": " + truncate(extract, 200), Score: score}, nil
		},
	},
	model.KindTelos: {
		kind: model.KindTelos,
		sql: `SELECT t.id, t.code, t.title, t.created_at, 1.0/(1.0+abs(telos_fts.rank)) AS score
			FROM telos_fts JOIN telos t ON t.id = telos_fts.rowid
			WHERE telos_fts MATCH ? ORDER BY rank LIMIT ?`,
		scan: func(rows *sql.Rows) (Result, error) {
			var id int64
			var code, title string
			var createdAt time.Time
			var score float64
			if err := rows.Scan(&id, &code, &title, &createdAt, &score); err != nil {
				return Result{}, err
			}
			return Result{Kind: model.KindTelos, ID: id, CreatedAt: createdAt,
				Content: code + ": " + title, Score: score}, nil
		},
	},
	model.KindDocument: {
		kind: model.KindDocument,
		sql: `SELECT doc.id, snippet(documents_fts, 2, '**', '**', '...', 16), doc.created_at, 1.0/(1.0+abs(documents_fts.rank)) AS score
			FROM documents_fts JOIN documents doc ON doc.id = documents_fts.rowid
			WHERE documents_fts MATCH ? ORDER BY rank LIMIT ?`,
		scan: func(rows *sql.Rows) (Result, error) {
			var id int64
			var snip string
			var createdAt time.Time
			var score float64
			if err := rows.Scan(&id, &snip, &createdAt, &score); err != nil {
				return Result{}, err
			}
			return Result{Kind: model.KindDocument, ID: id, CreatedAt: createdAt, Content: snip, Score: score}, nil
		},
	},
}

// AllKinds is every searchable kind, in a stable order.
var AllKinds = model.AllKinds

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Lexical runs the §4.6(a) lexical search: union over kinds, top-2·limit
// per kind, merged by score, truncated to limit.
func Lexical(ctx context.Context, h *store.Handle, query string, kinds []model.Kind, project string, limit int) ([]Result, error) {
	if len(kinds) == 0 {
		kinds = AllKinds
	}
	perKindLimit := 2 * limit

	var merged []Result
	for _, k := range kinds {
		kq, ok := kindQueries[k]
		if !ok {
			continue
		}
		results, err := runKindQuery(ctx, h, kq, query, project, perKindLimit)
		if err != nil {
			return nil, fmt.Errorf("lexical search kind %s: %w", k, err)
		}
		merged = append(merged, results...)
	}

	// Score is 1/(1+abs(rank)): it falls as relevance rises (bm25 rank is
	// negative, best match has the largest abs(rank)), so the best matches
	// sort first in ascending order, not descending.
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score < merged[j].Score })
	if len(merged) > limit {
		merged = merged[:limit]
	}
	for i := range merged {
		merged[i].Tag = TagFTS
	}
	return merged, nil
}

func runKindQuery(ctx context.Context, h *store.Handle, kq kindQuery, query, project string, limit int) ([]Result, error) {
	var rows *sql.Rows
	var err error
	switch {
	case kq.projectColumn != "" && project != "":
		sqlStr := fmt.Sprintf(kq.sql, "AND "+kq.projectColumn+" = ?")
		rows, err = h.DB().QueryContext(ctx, sqlStr, query, project, limit)
	case kq.projectColumn != "":
		sqlStr := fmt.Sprintf(kq.sql, "")
		rows, err = h.DB().QueryContext(ctx, sqlStr, query, limit)
	default:
		rows, err = h.DB().QueryContext(ctx, kq.sql, query, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		r, err := kq.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
