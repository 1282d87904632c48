// ABOUTME: Whole-store export to YAML or Markdown, grounded on the teacher's
// ABOUTME: internal/storage/sqlite/export.go Export/ExportToYAML/ExportToMarkdown idiom
package export

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/memexlabs/memex/internal/model"
)

// Data is the complete exportable snapshot of a store, one section per kind.
type Data struct {
	Version     string             `yaml:"version"`
	ExportedAt  string             `yaml:"exported_at"`
	Tool        string             `yaml:"tool"`
	Decisions   []model.Decision   `yaml:"decisions,omitempty"`
	Learnings   []model.Learning   `yaml:"learnings,omitempty"`
	Breadcrumbs []model.Breadcrumb `yaml:"breadcrumbs,omitempty"`
	LoA         []model.LoAEntry   `yaml:"loa,omitempty"`
	Telos       []model.TelosEntry `yaml:"telos,omitempty"`
	Documents   []model.Document   `yaml:"documents,omitempty"`
}

// Snapshot builds a Data from already-fetched per-kind rows. The caller
// (internal/engine) owns the repo calls; this package only owns rendering.
func Snapshot(decisions []model.Decision, learnings []model.Learning, breadcrumbs []model.Breadcrumb,
	loa []model.LoAEntry, telos []model.TelosEntry, documents []model.Document) Data {
	return Data{
		Version:     "1",
		ExportedAt:  time.Now().Format(time.RFC3339),
		Tool:        "memexctl",
		Decisions:   decisions,
		Learnings:   learnings,
		Breadcrumbs: breadcrumbs,
		LoA:         loa,
		Telos:       telos,
		Documents:   documents,
	}
}

// WriteYAML encodes data as indented YAML, mirroring the teacher's
// yaml.NewEncoder(file); encoder.SetIndent(2) idiom.
func WriteYAML(w io.Writer, data Data) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding export as yaml: %w", err)
	}
	return nil
}

// WriteMarkdown renders data as a human-readable report, one section per
// non-empty kind, mirroring the teacher's ExportToMarkdown heading/table idiom.
func WriteMarkdown(w io.Writer, data Data) error {
	fmt.Fprintf(w, "# Memory Export\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", data.ExportedAt)

	if len(data.Decisions) > 0 {
		fmt.Fprintln(w, "## Decisions")
		fmt.Fprintln(w)
		for _, d := range data.Decisions {
			fmt.Fprintf(w, "- **%s** (%s)\n", d.Decision, d.Status)
			if d.Reasoning != nil {
				fmt.Fprintf(w, "  - reasoning: %s\n", *d.Reasoning)
			}
		}
		fmt.Fprintln(w)
	}

	if len(data.Learnings) > 0 {
		fmt.Fprintln(w, "## Learnings")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Problem | Solution | Prevention |")
		fmt.Fprintln(w, "|---------|----------|------------|")
		for _, l := range data.Learnings {
			fmt.Fprintf(w, "| %s | %s | %s |\n", l.Problem, derefOr(l.Solution), derefOr(l.Prevention))
		}
		fmt.Fprintln(w)
	}

	if len(data.Breadcrumbs) > 0 {
		fmt.Fprintln(w, "## Breadcrumbs")
		fmt.Fprintln(w)
		for _, b := range data.Breadcrumbs {
			fmt.Fprintf(w, "- (%d) %s\n", b.Importance, b.Content)
		}
		fmt.Fprintln(w)
	}

	if len(data.LoA) > 0 {
		fmt.Fprintln(w, "## Library of Alexandria")
		fmt.Fprintln(w)
		for _, o := range data.LoA {
			fmt.Fprintf(w, "### %s\n\n%s\n\n", o.Title, o.Extract)
		}
	}

	if len(data.Telos) > 0 {
		fmt.Fprintln(w, "## TELOS")
		fmt.Fprintln(w)
		for _, t := range data.Telos {
			fmt.Fprintf(w, "- **%s** [%s] %s\n", t.Code, t.Type, t.Title)
		}
		fmt.Fprintln(w)
	}

	if len(data.Documents) > 0 {
		fmt.Fprintln(w, "## Documents")
		fmt.Fprintln(w)
		for _, d := range data.Documents {
			fmt.Fprintf(w, "- [%s] %s (%s)\n", d.Type, d.Title, d.Path)
		}
	}

	return nil
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
