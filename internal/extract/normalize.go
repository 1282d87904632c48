// ABOUTME: Transcript NDJSON parsing and turn-flattening shared by the extraction pipeline (C7) and ingest parser (C9)
// ABOUTME: Grounded on the teacher's core/context_hydrator.go limitTokens truncation idiom
package extract

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/memexlabs/memex/internal/model"
)

const (
	// maxTurnChars is the per-message truncation ceiling before an ellipsis
	// marker is appended.
	maxTurnChars = 4000
	// minTurnChars below which a flattened message is dropped as noise.
	minTurnChars = 10
)

// Record is one line of a transcript's newline-delimited JSON stream.
type Record struct {
	SessionID string        `json:"sessionId"`
	Timestamp string        `json:"timestamp"`
	Cwd       string        `json:"cwd"`
	GitBranch string        `json:"gitBranch"`
	Message   *recordMessage `json:"message"`
}

type recordMessage struct {
	Role    string       `json:"role"`
	Content model.Content `json:"content"`
}

// ParseTranscript decodes a newline-delimited JSON transcript, skipping
// blank lines and lines that fail to parse as a Record (malformed lines
// are not valid message records by definition, so they are ignored rather
// than failing the whole read, matching §4.7's "non-message lines are
// ignored").
func ParseTranscript(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var records []Record
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Turn is one flattened, filtered conversational turn.
type Turn struct {
	Role      string
	Text      string
	Timestamp string // the originating record's raw timestamp, if any
}

// Turns extracts user/assistant turns from records, applying the §4.7
// drop rules (short messages, tool-result-shaped payloads) and truncation.
func Turns(records []Record) []Turn {
	var turns []Turn
	for _, rec := range records {
		if rec.Message == nil {
			continue
		}
		role := rec.Message.Role
		if role != "user" && role != "assistant" {
			continue
		}
		text := strings.TrimSpace(rec.Message.Content.Flatten())
		if shouldDrop(text) {
			continue
		}
		turns = append(turns, Turn{Role: role, Text: truncateTurn(text), Timestamp: rec.Timestamp})
	}
	return turns
}

// shouldDrop reports whether a flattened message is noise per §4.7: too
// short, or shaped like a raw tool-result payload that slipped past the
// block-type filter in model.Content.Flatten.
func shouldDrop(text string) bool {
	if len(text) < minTurnChars {
		return true
	}
	return strings.HasPrefix(text, "[{") || strings.HasPrefix(text, `{"tool_use_id"`)
}

func truncateTurn(text string) string {
	if len(text) <= maxTurnChars {
		return text
	}
	return text[:maxTurnChars] + "..."
}

// Normalize joins turns into the single flattened document the extractor
// consumes: "[ROLE]: text" per turn, separated by blank lines.
func Normalize(turns []Turn) string {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		parts = append(parts, "["+strings.ToUpper(t.Role)+"]: "+t.Text)
	}
	return strings.Join(parts, "\n\n")
}
