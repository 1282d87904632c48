// ABOUTME: Secondary extractor — runs a configured CLI command as a fallback when the primary fails
// ABOUTME: Grounded on DESIGN NOTES §9's subprocess-as-blocking-boundary rule, mirrors the teacher's pre-lock OpenAI call
package llmextract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// SubprocessExtractor shells out to a configured command, writing the
// system prompt and text to stdin and reading the model's output from
// stdout. It is invoked only after the primary extractor has already
// failed or timed out, entirely outside any DB transaction.
type SubprocessExtractor struct {
	command string
	args    []string
}

// NewSubprocessExtractor builds a fallback extractor from an already
// shellwords-tokenized command line (tokenization and allow-listing is the
// caller's responsibility — see internal/project for the same discipline
// applied to git subprocess calls).
func NewSubprocessExtractor(command string, args []string) *SubprocessExtractor {
	return &SubprocessExtractor{command: command, args: args}
}

// Extract implements extract.Extractor.
func (e *SubprocessExtractor) Extract(ctx context.Context, systemPrompt, text string) (string, error) {
	cmd := exec.CommandContext(ctx, e.command, e.args...)
	cmd.Stdin = strings.NewReader(systemPrompt + "\n\n---\n\n" + text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("secondary extractor %q: %w (stderr: %s)", e.command, err, stderr.String())
	}
	return stdout.String(), nil
}
