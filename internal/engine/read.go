// ABOUTME: recent / show / stats engine operations
package engine

import (
	"context"
	"fmt"

	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/model"
)

// Recent returns the most-recent rows of kind, optionally filtered by
// project (telos and documents carry no project column and ignore it).
func (e *Engine) Recent(ctx context.Context, kind model.Kind, project string, limit int) ([]model.Entity, error) {
	if err := e.requireInit(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	switch kind {
	case model.KindMessage:
		rows, err := e.messages.Recent(ctx, project, limit)
		return toEntities(rows, err)
	case model.KindDecision:
		rows, err := e.decisions.Recent(ctx, project, limit)
		return toEntities(rows, err)
	case model.KindLearning:
		rows, err := e.learnings.Recent(ctx, project, limit)
		return toEntities(rows, err)
	case model.KindBreadcrumb:
		rows, err := e.breadcrumbs.Recent(ctx, project, limit)
		return toEntities(rows, err)
	case model.KindLoA:
		rows, err := e.loa.Recent(ctx, project, limit)
		return toEntities(rows, err)
	case model.KindTelos:
		rows, err := e.telos.Recent(ctx, limit)
		return toEntities(rows, err)
	case model.KindDocument:
		rows, err := e.documents.Recent(ctx, limit)
		return toEntities(rows, err)
	}
	return nil, fmt.Errorf("unknown kind %q: %w", kind, memerr.ErrInvalidInput)
}

// toEntities adapts a typed slice of entities into []model.Entity,
// forwarding any repo error.
func toEntities[T model.Entity](rows []T, err error) ([]model.Entity, error) {
	if err != nil {
		return nil, err
	}
	out := make([]model.Entity, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, nil
}

// Show fetches a single record by kind and id.
func (e *Engine) Show(ctx context.Context, kind model.Kind, id int64) (model.Entity, error) {
	if err := e.requireInit(); err != nil {
		return nil, err
	}

	switch kind {
	case model.KindMessage:
		m, err := e.messages.ByID(ctx, id)
		return entityOrNotFound(m, err)
	case model.KindDecision:
		d, err := e.decisions.ByID(ctx, id)
		return entityOrNotFound(d, err)
	case model.KindLearning:
		l, err := e.learnings.ByID(ctx, id)
		return entityOrNotFound(l, err)
	case model.KindBreadcrumb:
		b, err := e.breadcrumbs.ByID(ctx, id)
		return entityOrNotFound(b, err)
	case model.KindLoA:
		o, err := e.loa.ByID(ctx, id)
		return entityOrNotFound(o, err)
	case model.KindTelos:
		t, err := e.telos.ByID(ctx, id)
		return entityOrNotFound(t, err)
	case model.KindDocument:
		doc, err := e.documents.ByID(ctx, id)
		return entityOrNotFound(doc, err)
	}
	return nil, fmt.Errorf("unknown kind %q: %w", kind, memerr.ErrInvalidInput)
}

// entityOrNotFound converts a typed *T, nil-on-absent repo result into the
// model.Entity interface, translating absence into ErrNotFound.
func entityOrNotFound[T model.Entity](row *T, err error) (model.Entity, error) {
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, memerr.ErrNotFound
	}
	return *row, nil
}

// Stats is the stats() return shape: row counts per kind plus file size.
type Stats struct {
	Sessions    int64
	Counts      map[model.Kind]int64
	DBSizeBytes int64
	Embeddings  EmbedStats
}

// Stats returns row counts per kind and the store file size.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	if err := e.requireInit(); err != nil {
		return Stats{}, err
	}

	sessions, err := e.sessions.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	counts := make(map[model.Kind]int64, 7)
	if counts[model.KindMessage], err = e.messages.Count(ctx); err != nil {
		return Stats{}, err
	}
	if counts[model.KindDecision], err = e.decisions.Count(ctx); err != nil {
		return Stats{}, err
	}
	if counts[model.KindLearning], err = e.learnings.Count(ctx); err != nil {
		return Stats{}, err
	}
	if counts[model.KindBreadcrumb], err = e.breadcrumbs.Count(ctx); err != nil {
		return Stats{}, err
	}
	if counts[model.KindLoA], err = e.loa.Count(ctx); err != nil {
		return Stats{}, err
	}
	if counts[model.KindTelos], err = e.telos.Count(ctx); err != nil {
		return Stats{}, err
	}
	if counts[model.KindDocument], err = e.documents.Count(ctx); err != nil {
		return Stats{}, err
	}

	size, err := e.handle.Size()
	if err != nil {
		return Stats{}, err
	}

	embedStats, err := e.EmbedStats(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Stats{Sessions: sessions, Counts: counts, DBSizeBytes: size, Embeddings: embedStats}, nil
}
