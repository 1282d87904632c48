// ABOUTME: Tests for the subprocess-backed fallback extractor
package llmextract

import (
	"context"
	"strings"
	"testing"
)

func TestSubprocessExtractor_Extract_EchoesStdinViaCat(t *testing.T) {
	e := NewSubprocessExtractor("cat", nil)
	out, err := e.Extract(context.Background(), "be terse", "the transcript body")
	if err != nil {
		t.Fatalf("want no error from a working command, got %v", err)
	}
	if !strings.Contains(out, "the transcript body") || !strings.Contains(out, "be terse") {
		t.Errorf("want stdout to echo the combined prompt and text, got %q", out)
	}
}

func TestSubprocessExtractor_Extract_FailsForUnknownCommand(t *testing.T) {
	e := NewSubprocessExtractor("definitely-not-a-real-command-xyz", nil)
	_, err := e.Extract(context.Background(), "p", "t")
	if err == nil {
		t.Fatal("want an error for a command that doesn't exist")
	}
}
