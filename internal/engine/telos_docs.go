// ABOUTME: telos/document import engine operations — the two optional non-core entity kinds
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/memexlabs/memex/internal/model"
)

// ImportTelosInput parametrizes a single TELOS entry upsert.
type ImportTelosInput struct {
	Code       string
	Type       model.TelosType
	Title      string
	Content    string
	Category   *string
	ParentCode *string
	SourceFile *string
}

// ImportTelos upserts one TELOS entry, keyed by Code, and embeds it.
func (e *Engine) ImportTelos(ctx context.Context, in ImportTelosInput) (int64, error) {
	if err := e.requireInit(); err != nil {
		return 0, err
	}
	if !in.Type.IsValid() {
		in.Type = model.TelosOther
	}

	id, err := e.telos.Upsert(ctx, model.TelosEntry{
		Code:       in.Code,
		Type:       in.Type,
		Title:      in.Title,
		Content:    in.Content,
		Category:   in.Category,
		ParentCode: in.ParentCode,
		SourceFile: in.SourceFile,
	})
	if err != nil {
		return 0, err
	}

	entry, err := e.telos.ByID(ctx, id)
	if err == nil && entry != nil {
		if embedded, embedErr := e.embedder.Embed(ctx, entry.RenderPreview()); embedErr == nil {
			_ = e.vectors.Upsert(ctx, string(model.KindTelos), id, embedded.Model, embedded.Vector)
		}
	}
	return id, nil
}

// ImportTelosFile reads a markdown TELOS file (front-matter-free: the file
// basename minus extension becomes Code and Title) and upserts it.
func (e *Engine) ImportTelosFile(ctx context.Context, path string, typ model.TelosType) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	base := filepath.Base(path)
	code := strings.TrimSuffix(base, filepath.Ext(base))
	return e.ImportTelos(ctx, ImportTelosInput{
		Code:       code,
		Type:       typ,
		Title:      code,
		Content:    string(data),
		SourceFile: &path,
	})
}

// ImportDocumentInput parametrizes a single document upsert.
type ImportDocumentInput struct {
	Path           string
	Title          string
	Type           model.DocumentType
	Content        string
	Summary        *string
	SizeBytes      int64
	FileModifiedAt time.Time
}

// ImportDocument upserts one document, keyed by Path, and embeds it.
func (e *Engine) ImportDocument(ctx context.Context, in ImportDocumentInput) (int64, error) {
	if err := e.requireInit(); err != nil {
		return 0, err
	}
	if !in.Type.IsValid() {
		in.Type = model.DocOther
	}

	id, err := e.documents.Upsert(ctx, model.Document{
		Path:           in.Path,
		Title:          in.Title,
		Type:           in.Type,
		Content:        in.Content,
		Summary:        in.Summary,
		SizeBytes:      in.SizeBytes,
		FileModifiedAt: in.FileModifiedAt,
	})
	if err != nil {
		return 0, err
	}

	doc, err := e.documents.ByID(ctx, id)
	if err == nil && doc != nil {
		if embedded, embedErr := e.embedder.Embed(ctx, doc.RenderPreview()); embedErr == nil {
			_ = e.vectors.Upsert(ctx, string(model.KindDocument), id, embedded.Model, embedded.Vector)
		}
	}
	return id, nil
}

// ImportDocumentFile reads a file from disk and upserts it as a document.
func (e *Engine) ImportDocumentFile(ctx context.Context, path string, typ model.DocumentType) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	return e.ImportDocument(ctx, ImportDocumentInput{
		Path:           path,
		Title:          filepath.Base(path),
		Type:           typ,
		Content:        string(data),
		SizeBytes:      info.Size(),
		FileModifiedAt: info.ModTime(),
	})
}
