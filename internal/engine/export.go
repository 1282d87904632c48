// ABOUTME: Whole-store export engine operation, grounded on the teacher's Storage.Export
package engine

import (
	"context"

	"github.com/memexlabs/memex/internal/export"
)

const exportAllLimit = 1_000_000

// Export fetches every decision, learning, breadcrumb, LoA entry, TELOS
// entry, and document in the store and assembles them into one snapshot.
func (e *Engine) Export(ctx context.Context) (export.Data, error) {
	if err := e.requireInit(); err != nil {
		return export.Data{}, err
	}

	decisions, err := e.decisions.Recent(ctx, "", exportAllLimit)
	if err != nil {
		return export.Data{}, err
	}
	learnings, err := e.learnings.Recent(ctx, "", exportAllLimit)
	if err != nil {
		return export.Data{}, err
	}
	breadcrumbs, err := e.breadcrumbs.Recent(ctx, "", exportAllLimit)
	if err != nil {
		return export.Data{}, err
	}
	loaEntries, err := e.loa.Recent(ctx, "", exportAllLimit)
	if err != nil {
		return export.Data{}, err
	}
	telosEntries, err := e.telos.Recent(ctx, exportAllLimit)
	if err != nil {
		return export.Data{}, err
	}
	documents, err := e.documents.Recent(ctx, exportAllLimit)
	if err != nil {
		return export.Data{}, err
	}

	return export.Snapshot(decisions, learnings, breadcrumbs, loaEntries, telosEntries, documents), nil
}
