// ABOUTME: Tests for Reciprocal Rank Fusion merging of lexical and semantic result lists
package search

import (
	"testing"

	"github.com/memexlabs/memex/internal/model"
)

func resultAt(kind model.Kind, id int64, tag Tag) Result {
	return Result{Kind: kind, ID: id, Tag: tag}
}

func TestRRF_SoleListKeepsOrderAndTag(t *testing.T) {
	lexical := []Result{
		resultAt(model.KindMessage, 1, TagFTS),
		resultAt(model.KindMessage, 2, TagFTS),
	}

	fused := RRF(lexical)

	if len(fused) != 2 {
		t.Fatalf("want 2 results, got %d", len(fused))
	}
	if fused[0].ID != 1 || fused[0].Tag != TagFTS {
		t.Errorf("want id=1 tag=fts first, got id=%d tag=%s", fused[0].ID, fused[0].Tag)
	}
}

func TestRRF_OverlapTaggedBoth(t *testing.T) {
	lexical := []Result{resultAt(model.KindDecision, 7, TagFTS)}
	semantic := []Result{resultAt(model.KindDecision, 7, TagVec)}

	fused := RRF(lexical, semantic)

	if len(fused) != 1 {
		t.Fatalf("want 1 fused result, got %d", len(fused))
	}
	if fused[0].Tag != TagBoth {
		t.Errorf("want tag=both for a result present in both lists, got %s", fused[0].Tag)
	}
}

func TestRRF_OverlapScoresHigherThanSingleList(t *testing.T) {
	lexical := []Result{
		resultAt(model.KindMessage, 1, TagFTS),
		resultAt(model.KindMessage, 2, TagFTS),
	}
	semantic := []Result{
		resultAt(model.KindMessage, 2, TagVec),
		resultAt(model.KindMessage, 3, TagVec),
	}

	fused := RRF(lexical, semantic)

	var scoreByID = make(map[int64]float64, len(fused))
	for _, r := range fused {
		scoreByID[r.ID] = r.Score
	}

	if scoreByID[2] <= scoreByID[1] {
		t.Errorf("id=2 (present in both lists) should outrank id=1 (one list): got %v vs %v", scoreByID[2], scoreByID[1])
	}
	if scoreByID[2] <= scoreByID[3] {
		t.Errorf("id=2 (present in both lists) should outrank id=3 (one list): got %v vs %v", scoreByID[2], scoreByID[3])
	}
}

func TestRRF_DistinctKindsNeverCollide(t *testing.T) {
	lexical := []Result{resultAt(model.KindMessage, 1, TagFTS)}
	semantic := []Result{resultAt(model.KindDecision, 1, TagVec)}

	fused := RRF(lexical, semantic)

	if len(fused) != 2 {
		t.Fatalf("want 2 distinct results for the same id across different kinds, got %d", len(fused))
	}
}

func TestRRF_EmptyInput(t *testing.T) {
	fused := RRF()
	if len(fused) != 0 {
		t.Errorf("want empty result for no input lists, got %d", len(fused))
	}
}
