// ABOUTME: embed_backfill / embed_stats engine operations
package engine

import (
	"context"
	"fmt"

	"github.com/memexlabs/memex/internal/model"
)

// EmbedBackfillInput parametrizes embed_backfill, per §4.11.
type EmbedBackfillInput struct {
	Kind  model.Kind
	Limit int
	Force bool
}

// EmbedBackfillResult reports how many rows were embedded and any
// per-row failures, which do not abort the batch.
type EmbedBackfillResult struct {
	Embedded int
	Errors   []error
}

// EmbedBackfill iterates rows of Kind missing an embedding (unless Force)
// and embeds each via C5, storing via C4.
func (e *Engine) EmbedBackfill(ctx context.Context, in EmbedBackfillInput) (EmbedBackfillResult, error) {
	if err := e.requireInit(); err != nil {
		return EmbedBackfillResult{}, err
	}
	if !in.Kind.IsValid() {
		return EmbedBackfillResult{}, fmt.Errorf("unknown kind %q", in.Kind)
	}
	if in.Limit <= 0 {
		in.Limit = 100
	}

	ids, err := e.vectors.MissingEmbeddings(ctx, string(in.Kind), in.Limit, in.Force)
	if err != nil {
		return EmbedBackfillResult{}, err
	}

	var result EmbedBackfillResult
	for _, id := range ids {
		entity, err := e.Show(ctx, in.Kind, id)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		embedded, err := e.embedder.Embed(ctx, entity.RenderPreview())
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		if err := e.vectors.Upsert(ctx, string(in.Kind), id, embedded.Model, embedded.Vector); err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Embedded++
	}
	return result, nil
}

// EmbedStats is the embed_stats() return shape.
type EmbedStats struct {
	Count      int64
	TotalBytes int64
}

// EmbedStats returns the embedding row count and total vector byte size.
func (e *Engine) EmbedStats(ctx context.Context) (EmbedStats, error) {
	if err := e.requireInit(); err != nil {
		return EmbedStats{}, err
	}
	count, totalBytes, err := e.vectors.Stats(ctx)
	if err != nil {
		return EmbedStats{}, err
	}
	return EmbedStats{Count: count, TotalBytes: totalBytes}, nil
}
