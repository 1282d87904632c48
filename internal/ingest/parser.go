// ABOUTME: NDJSON transcript → Session+Message parsing, §4.9
// ABOUTME: Shares turn-flattening rules with the extraction pipeline via internal/extract
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/memexlabs/memex/internal/extract"
	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/project"
)

// Parsed is one transcript's worth of extracted session and messages, ready
// for repo.Sessions.Create / repo.Messages.AddBatch.
type Parsed struct {
	Session  model.Session
	Messages []model.Message
}

// ParseFile reads path as an NDJSON transcript and produces a Session plus
// its Messages, following the same turn-flattening rules C7 uses.
func ParseFile(path string) (*Parsed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := extract.ParseTranscript(f)
	if err != nil {
		return nil, err
	}

	sessionID := firstSessionID(records)
	if sessionID == "" {
		sessionID = filenameStem(path)
	}
	cwd := firstCwd(records)
	branch := firstBranch(records)
	proj := project.Detect(cwd)

	startedAt := firstTimestamp(records)

	turns := extract.Turns(records)
	messages := make([]model.Message, 0, len(turns))
	for i, t := range turns {
		ts := startedAt.Add(time.Duration(i) * time.Millisecond)
		if parsed, err := time.Parse(time.RFC3339, t.Timestamp); err == nil {
			ts = parsed
		}
		msg := model.Message{
			SessionRef: sessionID,
			TS:         ts,
			Role:       model.Role(t.Role),
			Content:    t.Text,
		}
		if proj != "" {
			p := proj
			msg.Project = &p
		}
		messages = append(messages, msg)
	}

	session := model.Session{
		ExternalID: sessionID,
		StartedAt:  startedAt,
	}
	if proj != "" {
		session.Project = &proj
	}
	if cwd != "" {
		session.CWD = &cwd
	}
	if branch != "" {
		session.Branch = &branch
	}

	return &Parsed{Session: session, Messages: messages}, nil
}

func firstSessionID(records []extract.Record) string {
	for _, r := range records {
		if r.SessionID != "" {
			return r.SessionID
		}
	}
	return ""
}

func firstCwd(records []extract.Record) string {
	for _, r := range records {
		if r.Cwd != "" {
			return r.Cwd
		}
	}
	return ""
}

func firstBranch(records []extract.Record) string {
	for _, r := range records {
		if r.GitBranch != "" {
			return r.GitBranch
		}
	}
	return ""
}

func firstTimestamp(records []extract.Record) time.Time {
	for _, r := range records {
		if r.Timestamp == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, r.Timestamp); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

// filenameStem falls back to the transcript's filename, stripped of its
// extension, as a session identifier when no record carries a sessionId.
func filenameStem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return fmt.Sprintf("session_%s_%s", time.Now().UTC().Format("20060102_150405"), uuid.New().String()[:8])
	}
	return stem
}
