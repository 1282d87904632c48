// ABOUTME: Tests for whole-store export rendering to YAML and Markdown
package export

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/memexlabs/memex/internal/model"
)

func strptr(s string) *string { return &s }

func sampleData() Data {
	return Snapshot(
		[]model.Decision{{Decision: "use sqlite", Status: model.DecisionStatus("active"), Reasoning: strptr("simplicity")}},
		[]model.Learning{{Problem: "flaky test", Solution: strptr("retry with backoff")}},
		[]model.Breadcrumb{{Content: "remember the deadline", Importance: 3}},
		nil,
		nil,
		nil,
	)
}

func TestSnapshot_SetsVersionAndTool(t *testing.T) {
	data := sampleData()
	if data.Version != "1" || data.Tool != "memexctl" {
		t.Errorf("unexpected snapshot metadata: %+v", data)
	}
	if data.ExportedAt == "" {
		t.Error("want ExportedAt populated")
	}
}

func TestWriteYAML_RoundTrips(t *testing.T) {
	data := sampleData()
	var buf bytes.Buffer
	if err := WriteYAML(&buf, data); err != nil {
		t.Fatal(err)
	}

	var got Data
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Decisions) != 1 || got.Decisions[0].Decision != "use sqlite" {
		t.Errorf("decisions did not round-trip: %+v", got.Decisions)
	}
	if len(got.LoA) != 0 {
		t.Errorf("want omitempty to drop the empty LoA section, got %v", got.LoA)
	}
}

func TestWriteMarkdown_OmitsEmptySectionsAndRendersPopulatedOnes(t *testing.T) {
	data := sampleData()
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, data); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "## Decisions") {
		t.Error("want a Decisions section for non-empty decisions")
	}
	if !strings.Contains(out, "use sqlite") {
		t.Error("want the decision text rendered")
	}
	if strings.Contains(out, "## TELOS") {
		t.Error("want the TELOS section omitted when there are no entries")
	}
	if strings.Contains(out, "## Library of Alexandria") {
		t.Error("want the LoA section omitted when there are no entries")
	}
}

func TestDerefOr(t *testing.T) {
	if derefOr(nil) != "" {
		t.Error("want empty string for a nil pointer")
	}
	s := "value"
	if derefOr(&s) != "value" {
		t.Error("want the dereferenced value for a non-nil pointer")
	}
}
