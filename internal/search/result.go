// ABOUTME: Shared search result type and §4.6 content-projection rules
package search

import (
	"time"

	"github.com/memexlabs/memex/internal/model"
)

// Tag identifies which retrieval list(s) produced a hybrid result.
type Tag string

const (
	TagFTS  Tag = "fts"
	TagVec  Tag = "vec"
	TagBoth Tag = "both"
)

// Result is one hit from lexical, semantic, or hybrid search, carrying the
// §4.6 content projection so the caller can render a preview without a
// second fetch.
type Result struct {
	Kind      model.Kind
	ID        int64
	Project   string
	CreatedAt time.Time
	Content   string
	Score     float64
	Tag       Tag
}

// Identity returns the "{kind}:{id}" dedup key used by RRF fusion.
func (r Result) Identity() string {
	return string(r.Kind) + ":" + itoa(r.ID)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
