// ABOUTME: Hybrid search orchestration: lexical + semantic fused via RRF, §4.6(c)/(d)
package search

import (
	"context"
	"errors"

	"github.com/memexlabs/memex/internal/embedclient"
	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/store"
	"github.com/memexlabs/memex/internal/vector"
)

// HybridOutcome carries the fused results plus whether semantic search was
// actually available, so callers can surface embeddings_available=false
// rather than raising an error when the embedding service is down.
type HybridOutcome struct {
	Results             []Result
	EmbeddingsAvailable bool
}

// Hybrid runs lexical and semantic search and fuses them with RRF. If the
// embedding service is unavailable, it degrades to lexical-only per §4.6(d)
// rather than failing the request.
func Hybrid(ctx context.Context, h *store.Handle, ec *embedclient.Client, vs *vector.Store, query string, kinds []model.Kind, project string, limit int) (HybridOutcome, error) {
	lexResults, err := Lexical(ctx, h, query, kinds, project, limit)
	if err != nil {
		return HybridOutcome{}, err
	}

	semResults, err := Semantic(ctx, h, ec, vs, query, kinds, limit)
	if err != nil {
		if errors.Is(err, memerr.ErrServiceUnavailable) {
			return HybridOutcome{Results: lexResults, EmbeddingsAvailable: false}, nil
		}
		return HybridOutcome{}, err
	}

	fused := RRF(lexResults, semResults)
	if len(fused) > limit {
		fused = fused[:limit]
	}
	return HybridOutcome{Results: fused, EmbeddingsAvailable: true}, nil
}
