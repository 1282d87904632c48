// ABOUTME: search / semantic / hybrid engine operations, thin wrappers over C6
package engine

import (
	"context"

	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/search"
)

// QueryOptions narrows a search/semantic/hybrid call, per §4.11.
type QueryOptions struct {
	Project string
	Kinds   []model.Kind
	Limit   int
}

func (o QueryOptions) limitOrDefault() int {
	if o.Limit <= 0 {
		return 20
	}
	return o.Limit
}

// Search runs lexical-only search.
func (e *Engine) Search(ctx context.Context, query string, opts QueryOptions) ([]search.Result, error) {
	if err := e.requireInit(); err != nil {
		return nil, err
	}
	return search.Lexical(ctx, e.handle, query, opts.Kinds, opts.Project, opts.limitOrDefault())
}

// Semantic runs vector-only search.
func (e *Engine) Semantic(ctx context.Context, query string, opts QueryOptions) ([]search.Result, error) {
	if err := e.requireInit(); err != nil {
		return nil, err
	}
	return search.Semantic(ctx, e.handle, e.embedder, e.vectors, query, opts.Kinds, opts.limitOrDefault())
}

// HybridResult is the hybrid() return shape: results plus whether the
// embedding service was actually reachable.
type HybridResult struct {
	Results             []search.Result
	EmbeddingsAvailable bool
}

// Hybrid runs lexical+semantic search fused via RRF, degrading silently to
// lexical-only if the embedding service is unavailable.
func (e *Engine) Hybrid(ctx context.Context, query string, opts QueryOptions) (HybridResult, error) {
	if err := e.requireInit(); err != nil {
		return HybridResult{}, err
	}
	outcome, err := search.Hybrid(ctx, e.handle, e.embedder, e.vectors, query, opts.Kinds, opts.Project, opts.limitOrDefault())
	if err != nil {
		return HybridResult{}, err
	}
	return HybridResult{Results: outcome.Results, EmbeddingsAvailable: outcome.EmbeddingsAvailable}, nil
}
