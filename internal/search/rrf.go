// ABOUTME: Reciprocal Rank Fusion merging lexical and semantic result lists per §4.6(c)
// ABOUTME: Grounded on jholhewres-goclaw__sqlite_store.go's rank-fusion merge
package search

import "sort"

// k is the RRF smoothing constant: RRF(d) = Σ_list 1/(k + rank_i(d) + 1),
// summed over every list d appears in, with zero-based ranks.
const k = 60

// RRF fuses lists (already ordered best-first) by identity, tagging each
// fused result fts/vec/both depending on which list(s) it appeared in.
// Only lexical and semantic are expected as inputs, so "both" always means
// exactly those two, but the implementation makes no assumption about the
// number of lists beyond tag collapsing to "both" once more than one list
// contributes.
func RRF(lists ...[]Result) []Result {
	type fused struct {
		result Result
		score  float64
		inFTS  bool
		inVec  bool
	}

	byIdentity := make(map[string]*fused)
	var order []string

	for _, list := range lists {
		for rank, r := range list {
			f, ok := byIdentity[r.Identity()]
			if !ok {
				f = &fused{result: r}
				byIdentity[r.Identity()] = f
				order = append(order, r.Identity())
			}
			f.score += 1.0 / float64(k+rank+1)
			switch r.Tag {
			case TagVec:
				f.inVec = true
			default:
				f.inFTS = true
			}
		}
	}

	out := make([]Result, 0, len(order))
	for _, id := range order {
		f := byIdentity[id]
		r := f.result
		r.Score = f.score
		switch {
		case f.inFTS && f.inVec:
			r.Tag = TagBoth
		case f.inVec:
			r.Tag = TagVec
		default:
			r.Tag = TagFTS
		}
		out = append(out, r)
	}

	// Stable-sort descending by fused score; ties keep first-seen order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
