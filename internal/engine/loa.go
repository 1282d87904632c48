// ABOUTME: loa_write / dump / loa_quote / loa_show / loa_list / messages_since_last_loa engine operations
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/memexlabs/memex/internal/extract"
	"github.com/memexlabs/memex/internal/ingest"
	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/model"
)

const loaDigestPrompt = `You are curating a durable "library of Alexandria" extract from a span of conversation messages. Write a concise, well-organized extract capturing the decisions, insights, and context worth remembering long after this conversation ends. Do not use the session-extraction heading format; write prose and bullet points as fits the material.`

// MessagesSinceLastLoA returns the messages after the most recent LoA
// entry's range_end (or all messages if none exists), honoring an optional
// tail limit, per §4.2.
func (e *Engine) MessagesSinceLastLoA(ctx context.Context, limit int) (messages []model.Message, startID, endID int64, err error) {
	if err = e.requireInit(); err != nil {
		return nil, 0, 0, err
	}

	latest, err := e.loa.Latest(ctx)
	if err != nil {
		return nil, 0, 0, err
	}

	var afterID int64
	if latest != nil && latest.RangeEnd != nil {
		afterID = *latest.RangeEnd
	}

	messages, err = e.messages.SinceID(ctx, afterID, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	if len(messages) == 0 {
		return messages, 0, 0, nil
	}
	return messages, messages[0].ID, messages[len(messages)-1].ID, nil
}

// LoAQuote returns the messages quoted by a LoA entry's range, in
// timestamp order.
func (e *Engine) LoAQuote(ctx context.Context, id int64) ([]model.Message, error) {
	if err := e.requireInit(); err != nil {
		return nil, err
	}
	entry, err := e.loa.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, memerr.ErrNotFound
	}
	if !entry.HasRange() {
		return nil, nil
	}
	return e.messages.Range(ctx, *entry.RangeStart, *entry.RangeEnd)
}

// LoAShow fetches a single LoA entry by id.
func (e *Engine) LoAShow(ctx context.Context, id int64) (*model.LoAEntry, error) {
	if err := e.requireInit(); err != nil {
		return nil, err
	}
	entry, err := e.loa.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, memerr.ErrNotFound
	}
	return entry, nil
}

// LoAList lists LoA entries newest-first.
func (e *Engine) LoAList(ctx context.Context, limit int) ([]model.LoAEntry, error) {
	if err := e.requireInit(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return e.loa.List(ctx, limit)
}

// LoAWriteInput parametrizes loa_write, per §4.11.
type LoAWriteInput struct {
	Title     string
	Project   *string
	Continues *int64
	Tags      *string
	Limit     int
}

// LoAWrite fetches messages since the last LoA entry (or a tail limit),
// calls the extractor for a digest, creates the LoA entry, and embeds it.
func (e *Engine) LoAWrite(ctx context.Context, in LoAWriteInput) (*model.LoAEntry, error) {
	if err := e.requireInit(); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, fmt.Errorf("loa title required: %w", memerr.ErrInvalidInput)
	}

	messages, startID, endID, err := e.MessagesSinceLastLoA(ctx, in.Limit)
	if err != nil {
		return nil, err
	}

	var body string
	for _, m := range messages {
		body += "[" + string(m.Role) + "]: " + m.Content + "\n\n"
	}

	var extractText string
	if e.extractor != nil && e.extractor.Primary != nil {
		extractText, err = e.extractor.Primary.Extract(ctx, loaDigestPrompt, body)
		if err != nil && e.extractor.Secondary != nil {
			extractText, err = e.extractor.Secondary.Extract(ctx, loaDigestPrompt, body)
		}
		if err != nil {
			return nil, fmt.Errorf("loa digest extraction: %w", memerr.ErrServiceUnavailable)
		}
	} else {
		extractText = body
	}

	entry := model.LoAEntry{
		CreatedAt:    time.Now().UTC(),
		Title:        in.Title,
		Extract:      extractText,
		Project:      in.Project,
		Tags:         in.Tags,
		Parent:       in.Continues,
		MessageCount: intPtr(len(messages)),
	}
	if len(messages) > 0 {
		entry.RangeStart = &startID
		entry.RangeEnd = &endID
	}

	id, err := e.loa.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	if embedded, embedErr := e.embedder.Embed(ctx, entry.RenderPreview()); embedErr == nil {
		_ = e.vectors.Upsert(ctx, string(model.KindLoA), id, embedded.Model, embedded.Vector)
	}

	return &entry, nil
}

func intPtr(v int) *int { return &v }

// DumpInput parametrizes dump, per §4.11/§6.
type DumpInput struct {
	TranscriptPath string
	Title          string
	Project        *string
	Continues      *int64
	Tags           *string
	Limit          int
	SkipExtract    bool
}

// Dump re-ingests the transcript at TranscriptPath (deleting any prior
// rows for its external session id), optionally runs the extraction
// pipeline over it, and then runs LoAWrite.
func (e *Engine) Dump(ctx context.Context, in DumpInput) (*model.LoAEntry, error) {
	if err := e.requireInit(); err != nil {
		return nil, err
	}

	parsed, err := ingest.ParseFile(in.TranscriptPath)
	if err != nil {
		return nil, err
	}

	if _, err := e.sessions.DeleteCascade(ctx, parsed.Session.ExternalID); err != nil {
		return nil, err
	}
	if _, err := e.sessions.Create(ctx, parsed.Session); err != nil {
		return nil, err
	}
	if _, err := e.messages.AddBatch(ctx, parsed.Messages); err != nil {
		return nil, err
	}

	if !in.SkipExtract && e.extractor != nil {
		sessionLabel := parsed.Session.ExternalID
		project := ""
		if parsed.Session.Project != nil {
			project = *parsed.Session.Project
		}
		if _, err := e.extractor.Run(ctx, extract.RunOptions{
			Path:         in.TranscriptPath,
			Cwd:          derefOr(parsed.Session.CWD, ""),
			Force:        true,
			SessionLabel: sessionLabel,
			Project:      project,
		}); err != nil {
			return nil, err
		}
	}

	return e.LoAWrite(ctx, LoAWriteInput{
		Title:     in.Title,
		Project:   in.Project,
		Continues: in.Continues,
		Tags:      in.Tags,
		Limit:     in.Limit,
	})
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
