// ABOUTME: Batch scanner — walks the transcript tree, orders candidates, rate-limits extraction, §4.8
// ABOUTME: Grounded on the teacher's os.ReadDir+filepath.Ext filtering idiom (legacy storage.go:keywordSearch), generalized to a recursive walk
package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/memexlabs/memex/internal/extract"
)

const (
	minCandidateBytes   = 2000
	mediumTierMaxBytes  = 500_000
	transcriptExtension = ".jsonl"
	extractionInterval  = 5 * time.Second
)

// Candidate is one transcript file eligible for extraction.
type Candidate struct {
	Path       string
	SizeBytes  int64
	ProjectDir string
	ModTime    time.Time
}

// Scan walks root and returns candidates ordered medium-tier-first
// (2KB..500KB), then larger files, largest-first within each tier.
func Scan(root string) ([]Candidate, error) {
	var candidates []Candidate
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), transcriptExtension) {
			return nil
		}
		if isSideAgentFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() < minCandidateBytes {
			return nil
		}
		candidates = append(candidates, Candidate{
			Path:       path,
			SizeBytes:  info.Size(),
			ProjectDir: filepath.Dir(path),
			ModTime:    info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := tier(candidates[i].SizeBytes), tier(candidates[j].SizeBytes)
		if ti != tj {
			return ti < tj // tier 0 (medium) before tier 1 (large)
		}
		return candidates[i].SizeBytes > candidates[j].SizeBytes // largest-first within a tier
	})
	return candidates, nil
}

// tier returns 0 for the medium 2KB..500KB band, 1 for anything larger.
func tier(size int64) int {
	if size <= mediumTierMaxBytes {
		return 0
	}
	return 1
}

// isSideAgentFile recognizes the subagent transcript naming convention so
// the scanner skips them; the primary session transcript is extracted
// instead.
func isSideAgentFile(path string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(path)), "sidechain")
}

// ExtractCandidates hands off each candidate in order to pipeline.Run,
// sleeping extractionInterval between extractions so a caller who has
// already selected its own candidate set (e.g. the import operation,
// restricted to sessions it just ingested) still gets C8's rate limit
// without re-walking the transcript tree.
func ExtractCandidates(ctx context.Context, candidates []Candidate, pipeline *extract.Pipeline, force bool, labelFor func(Candidate) (sessionLabel, projectName string)) ([]extract.Result, []error) {
	var processed []extract.Result
	var errs []error

	limiter := rate.NewLimiter(rate.Every(extractionInterval), 1)
	for i, c := range candidates {
		if i > 0 {
			if err := limiter.Wait(ctx); err != nil {
				errs = append(errs, err)
				break
			}
		}
		sessionLabel, projectName := labelFor(c)
		r, err := pipeline.Run(ctx, extract.RunOptions{
			Path:         c.Path,
			Cwd:          c.ProjectDir,
			Force:        force,
			SessionLabel: sessionLabel,
			Project:      projectName,
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		processed = append(processed, *r)
	}
	return processed, errs
}
