// ABOUTME: Tests for transcript parsing, turn filtering/truncation, and flattening
package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/memexlabs/memex/internal/model"
)

func TestParseTranscript_SkipsBlankAndMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"sessionId":"s1","message":{"role":"user","content":"hi there friend"}}`,
		"",
		"not json at all",
		`{"sessionId":"s1","message":{"role":"assistant","content":"hello back to you"}}`,
	}, "\n")

	records, err := ParseTranscript(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2 valid records, got %d", len(records))
	}
}

func TestTurns_FiltersNonMessageAndShortAndToolResultShaped(t *testing.T) {
	records := []Record{
		{Message: nil},                                                     // no message: dropped
		{Message: &recordMessage{Role: "system", Content: strContent("x")}}, // wrong role: dropped
		{Message: &recordMessage{Role: "user", Content: strContent("hi")}},  // too short: dropped
		{Message: &recordMessage{Role: "user", Content: strContent(`[{"type":"tool_result"}]`)}}, // tool-result shaped: dropped
		{Message: &recordMessage{Role: "assistant", Content: strContent("a perfectly normal reply")}},
	}

	turns := Turns(records)
	if len(turns) != 1 {
		t.Fatalf("want 1 surviving turn, got %d", len(turns))
	}
	if turns[0].Role != "assistant" || turns[0].Text != "a perfectly normal reply" {
		t.Errorf("unexpected surviving turn: %+v", turns[0])
	}
}

func TestTurns_TruncatesOverlongMessages(t *testing.T) {
	long := strings.Repeat("z", maxTurnChars+500)
	records := []Record{
		{Message: &recordMessage{Role: "user", Content: strContent(long)}},
	}
	turns := Turns(records)
	if len(turns) != 1 {
		t.Fatalf("want 1 turn, got %d", len(turns))
	}
	if !strings.HasSuffix(turns[0].Text, "...") {
		t.Error("want truncated text to end with an ellipsis marker")
	}
	if len(turns[0].Text) != maxTurnChars+len("...") {
		t.Errorf("want truncated length %d, got %d", maxTurnChars+3, len(turns[0].Text))
	}
}

func TestNormalize_JoinsRoleTaggedTurns(t *testing.T) {
	turns := []Turn{
		{Role: "user", Text: "question one"},
		{Role: "assistant", Text: "answer one"},
	}
	got := Normalize(turns)
	want := "[USER]: question one\n\n[ASSISTANT]: answer one"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

// strContent builds a model.Content as a JSON string would unmarshal into
// it, since its fields are private to the model package.
func strContent(s string) model.Content {
	var c model.Content
	b, _ := json.Marshal(s)
	_ = json.Unmarshal(b, &c)
	return c
}
