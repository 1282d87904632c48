// ABOUTME: ExtractionRecord persistence — single owner, whole-file JSON rewrite per update
// ABOUTME: Grounded on the teacher's internal/models/user_profile.go UserProfile.Save idiom
package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/memexlabs/memex/internal/model"
)

// trackerEntry is the on-disk shape for one path's record, per §6: the path
// itself is the map key, not a field.
type trackerEntry struct {
	SizeBytes   int64      `json:"size"`
	ExtractedAt *time.Time `json:"extractedAt,omitempty"`
	FailedAt    *time.Time `json:"failedAt,omitempty"`
	RetryAfter  *time.Time `json:"retryAfter,omitempty"`
}

// Tracker is the single owner of the extraction-state file. All access goes
// through Load/Get/Update/Save; callers never touch the file directly.
type Tracker struct {
	mu   sync.Mutex
	path string
	data map[string]trackerEntry
}

// NewTracker wraps the tracker file at path without reading it yet.
func NewTracker(path string) *Tracker {
	return &Tracker{path: path, data: make(map[string]trackerEntry)}
}

// Load reads the tracker file if present; a missing file is not an error,
// it just means every path starts absent.
func (t *Tracker) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	raw, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	var data map[string]trackerEntry
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}
	t.data = data
	return nil
}

// Get returns the record for path, or nil if absent.
func (t *Tracker) Get(path string) *model.ExtractionRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.data[path]
	if !ok {
		return nil
	}
	return &model.ExtractionRecord{
		Path:        path,
		SizeBytes:   e.SizeBytes,
		ExtractedAt: e.ExtractedAt,
		FailedAt:    e.FailedAt,
		RetryAfter:  e.RetryAfter,
	}
}

// Update replaces the record for path and rewrites the whole file.
func (t *Tracker) Update(rec model.ExtractionRecord) error {
	t.mu.Lock()
	t.data[rec.Path] = trackerEntry{
		SizeBytes:   rec.SizeBytes,
		ExtractedAt: rec.ExtractedAt,
		FailedAt:    rec.FailedAt,
		RetryAfter:  rec.RetryAfter,
	}
	t.mu.Unlock()
	return t.save()
}

func (t *Tracker) save() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(t.path), 0700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, t.path)
}
