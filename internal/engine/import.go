// ABOUTME: import_sessions engine operation — batch transcript ingestion, §4.8/§4.9
package engine

import (
	"context"
	"path/filepath"

	"github.com/memexlabs/memex/internal/extract"
	"github.com/memexlabs/memex/internal/ingest"
	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/scanner"
)

// ImportSessionsInput parametrizes import_sessions, per §4.11/§6.
type ImportSessionsInput struct {
	Root      string
	Limit     int
	Unlimited bool
	DryRun    bool
	Verbose   bool
}

// ImportedSession reports one transcript that was (or would be, under
// DryRun) ingested.
type ImportedSession struct {
	Path       string
	ExternalID string
	Project    string
	Messages   int
	Skipped    bool
	Err        error
}

// ImportSessionsResult summarizes a batch import for CLI reporting.
type ImportSessionsResult struct {
	Candidates       []scanner.Candidate
	Imported         []ImportedSession
	Extracted        []extract.Result
	ExtractionErrors []error
}

// ImportSessions walks Root for transcript candidates and, for each new
// session (one not already present by external id), parses and ingests it.
// Unlike Dump, existing sessions are left untouched rather than re-ingested.
func (e *Engine) ImportSessions(ctx context.Context, in ImportSessionsInput) (*ImportSessionsResult, error) {
	if err := e.requireInit(); err != nil {
		return nil, err
	}
	if in.Root == "" {
		return nil, memerr.ErrInvalidInput
	}

	candidates, err := scanner.Scan(in.Root)
	if err != nil {
		return nil, err
	}

	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}
	if !in.Unlimited && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := &ImportSessionsResult{Candidates: candidates}
	if in.DryRun {
		return result, nil
	}

	var fresh []scanner.Candidate
	for _, c := range candidates {
		imported, err := e.importOne(ctx, c)
		if err != nil {
			imported.Err = err
		} else if !imported.Skipped {
			fresh = append(fresh, c)
		}
		result.Imported = append(result.Imported, imported)
	}

	if e.extractor != nil && len(fresh) > 0 {
		labelFor := func(c scanner.Candidate) (string, string) {
			return c.Path, filepath.Base(c.ProjectDir)
		}
		processed, errs := scanner.ExtractCandidates(ctx, fresh, e.extractor, false, labelFor)
		result.Extracted = processed
		result.ExtractionErrors = errs
	}

	return result, nil
}

func (e *Engine) importOne(ctx context.Context, c scanner.Candidate) (ImportedSession, error) {
	parsed, err := ingest.ParseFile(c.Path)
	if err != nil {
		return ImportedSession{Path: c.Path}, err
	}

	exists, err := e.sessions.Exists(ctx, parsed.Session.ExternalID)
	if err != nil {
		return ImportedSession{Path: c.Path, ExternalID: parsed.Session.ExternalID}, err
	}
	if exists {
		return ImportedSession{
			Path:       c.Path,
			ExternalID: parsed.Session.ExternalID,
			Project:    projectOf(parsed.Session),
			Skipped:    true,
		}, nil
	}

	if _, err := e.sessions.Create(ctx, parsed.Session); err != nil {
		return ImportedSession{Path: c.Path, ExternalID: parsed.Session.ExternalID}, err
	}
	n, err := e.messages.AddBatch(ctx, parsed.Messages)
	if err != nil {
		return ImportedSession{Path: c.Path, ExternalID: parsed.Session.ExternalID}, err
	}

	return ImportedSession{
		Path:       c.Path,
		ExternalID: parsed.Session.ExternalID,
		Project:    projectOf(parsed.Session),
		Messages:   n,
	}, nil
}

func projectOf(s model.Session) string {
	if s.Project == nil {
		return ""
	}
	return *s.Project
}
