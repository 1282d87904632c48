// ABOUTME: Tests for line-boundary chunking of oversize normalized transcripts
package extract

import (
	"strings"
	"testing"
)

func TestChunkText_UnderThresholdReturnsWhole(t *testing.T) {
	text := "line one\nline two\nline three"
	chunks := ChunkText(text, 1000, 500)

	if len(chunks) != 1 {
		t.Fatalf("want 1 chunk under threshold, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("want chunk to equal input verbatim, got %q", chunks[0])
	}
}

func TestChunkText_SplitsOnLineBoundaries(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = strings.Repeat("x", 10)
	}
	text := strings.Join(lines, "\n")

	chunks := ChunkText(text, 50, 40)

	if len(chunks) < 2 {
		t.Fatalf("want multiple chunks for oversize text, got %d", len(chunks))
	}
	for _, c := range chunks {
		for _, line := range strings.Split(c, "\n") {
			if line != strings.Repeat("x", 10) {
				t.Errorf("chunk split mid-line: %q", line)
			}
		}
	}
}

func TestChunkText_SingleOverlongLineKeptWhole(t *testing.T) {
	longLine := strings.Repeat("y", 1000)
	text := "short\n" + longLine + "\nshort"

	chunks := ChunkText(text, 10, 50)

	found := false
	for _, c := range chunks {
		if strings.Contains(c, longLine) {
			found = true
		}
	}
	if !found {
		t.Error("want the oversize single line preserved whole in some chunk")
	}
}

func TestChunkText_Reassembles(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line content here"
	}
	text := strings.Join(lines, "\n")

	chunks := ChunkText(text, 50, 60)
	rejoined := strings.Join(chunks, "\n")

	if rejoined != text {
		t.Errorf("rejoined chunks should reconstruct the original text exactly")
	}
}
