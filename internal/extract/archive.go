// ABOUTME: Persistence of a successful extraction to the five §6 output files
// ABOUTME: Grounded on the teacher's internal/models/user_profile.go whole-file-rewrite idiom, generalized to five files
package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SessionIndexEntry is one row of SESSION_INDEX.json.
type SessionIndexEntry struct {
	SessionID string   `json:"sessionId"`
	Project   string   `json:"project"`
	Date      string   `json:"date"`
	Timestamp string   `json:"timestamp"`
	Topics    []string `json:"topics"`
	Summary   string   `json:"summary"`
	File      string   `json:"file"`
}

// ErrorPattern is one entry of ERROR_PATTERNS.json's patterns array.
type ErrorPattern struct {
	Error string `json:"error"`
	Cause string `json:"cause"`
	Fix   string `json:"fix"`
	File  string `json:"file"`
	Date  string `json:"date"`
}

type errorPatternsFile struct {
	Patterns []ErrorPattern `json:"patterns"`
	Meta     struct {
		Purpose string `json:"purpose"`
		Updated string `json:"updated"`
	} `json:"meta"`
}

// Outcome bundles everything a successful extraction needs to persist.
type Outcome struct {
	SessionLabel string
	Project      string
	File         string
	Now          time.Time
	Extract      string
}

// Archive runs all five §6 persistence steps for a successful extraction.
// Each step is independent and logged by the caller; a failure in one does
// not roll back the others (§4.7 "atomically (each step independent but
// all logged)").
func Archive(memoryDir string, o Outcome, hotRecallCap, sessionIndexCap int) []error {
	var errs []error
	if err := appendDistilled(filepath.Join(memoryDir, "DISTILLED.md"), o); err != nil {
		errs = append(errs, err)
	}
	if err := updateHotRecall(filepath.Join(memoryDir, "HOT_RECALL.md"), o, hotRecallCap); err != nil {
		errs = append(errs, err)
	}
	if err := upsertSessionIndex(filepath.Join(memoryDir, "SESSION_INDEX.json"), o, sessionIndexCap); err != nil {
		errs = append(errs, err)
	}
	if err := appendDedupedLog(filepath.Join(memoryDir, "DECISIONS.log"), o, BulletsUnder(o.Extract, "DECISIONS MADE")); err != nil {
		errs = append(errs, err)
	}
	if err := appendDedupedLog(filepath.Join(memoryDir, "REJECTIONS.log"), o, BulletsUnder(o.Extract, "THINGS TO REJECT / AVOID")); err != nil {
		errs = append(errs, err)
	}
	if err := upsertErrorPatterns(filepath.Join(memoryDir, "ERROR_PATTERNS.json"), o); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func appendDistilled(path string, o Outcome) error {
	heading := "## " + o.Now.Format("2006-01-02") + " — " + o.SessionLabel + "\n\n"
	return appendFile(path, heading+o.Extract+"\n\n")
}

func updateHotRecall(path string, o Outcome, maxSessions int) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	var entries []string
	if len(existing) > 0 {
		entries = strings.Split(string(existing), "\n---\n")
	}
	newest := "## " + o.Now.Format("2006-01-02T15:04:05") + " — " + o.SessionLabel + "\n\n" + o.Extract
	entries = append([]string{newest}, entries...)
	if len(entries) > maxSessions {
		entries = entries[:maxSessions]
	}
	return writeFileAtomic(path, []byte(strings.Join(entries, "\n---\n")))
}

func upsertSessionIndex(path string, o Outcome, cap int) error {
	var entries []SessionIndexEntry
	if raw, err := os.ReadFile(path); err == nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return err
		}
	} else if err != nil && !os.IsNotExist(err) {
		return err
	}

	filtered := entries[:0:0]
	for _, e := range entries {
		if e.SessionID != o.SessionLabel {
			filtered = append(filtered, e)
		}
	}

	entry := SessionIndexEntry{
		SessionID: o.SessionLabel,
		Project:   o.Project,
		Date:      o.Now.Format("2006-01-02"),
		Timestamp: o.Now.Format(time.RFC3339),
		Topics:    topics(o.Extract),
		Summary:   firstSentenceSummary(o.Extract),
		File:      o.File,
	}
	filtered = append([]SessionIndexEntry{entry}, filtered...)

	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Timestamp > filtered[j].Timestamp })
	if len(filtered) > cap {
		filtered = filtered[:cap]
	}

	raw, err := json.MarshalIndent(filtered, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, raw)
}

// topics derives up to 5 topics from the first three bullets under each of
// DECISIONS MADE, MAIN IDEAS, and INSIGHTS, in that order, per §4.7.
func topics(extractText string) []string {
	var out []string
	for _, heading := range []string{"DECISIONS MADE", "MAIN IDEAS", "INSIGHTS"} {
		for i, b := range BulletsUnder(extractText, heading) {
			if i >= 3 || len(out) >= 5 {
				break // first three bullets per heading, five topics overall
			}
			out = append(out, b)
		}
		if len(out) >= 5 {
			break
		}
	}
	return out
}

func firstSentenceSummary(extractText string) string {
	bullets := BulletsUnder(extractText, "ONE SENTENCE SUMMARY")
	if len(bullets) > 0 {
		return bullets[0]
	}
	// ONE SENTENCE SUMMARY is usually prose, not a bullet; fall back to the
	// first non-empty line after the heading.
	lines := strings.Split(extractText, "\n")
	for i, line := range lines {
		if strings.Contains(strings.ToUpper(line), "ONE SENTENCE SUMMARY") {
			for j := i + 1; j < len(lines); j++ {
				if t := strings.TrimSpace(lines[j]); t != "" {
					return t
				}
			}
		}
	}
	return ""
}

func appendDedupedLog(path string, o Outcome, newLines []string) error {
	if len(newLines) == 0 {
		return nil
	}
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	seen := make(map[string]bool)
	for _, line := range strings.Split(string(existing), "\n") {
		parts := strings.SplitN(line, "|", 3)
		if len(parts) == 3 {
			seen[NormalizeForDedup(parts[2])] = true
		}
	}

	var toAppend strings.Builder
	date := o.Now.Format("2006-01-02")
	for _, line := range newLines {
		key := NormalizeForDedup(line)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		toAppend.WriteString(date + "|" + o.SessionLabel + "|" + line + "\n")
	}
	if toAppend.Len() == 0 {
		return nil
	}
	return appendFile(path, toAppend.String())
}

func upsertErrorPatterns(path string, o Outcome) error {
	bullets := BulletsUnder(o.Extract, "ERRORS FIXED")
	if len(bullets) == 0 {
		return nil
	}

	var f errorPatternsFile
	if raw, err := os.ReadFile(path); err == nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, &f); err != nil {
			return err
		}
	} else if err != nil && !os.IsNotExist(err) {
		return err
	}
	if f.Meta.Purpose == "" {
		f.Meta.Purpose = "Recurring error/fix pairs observed across sessions"
	}

	byKey := make(map[string]int, len(f.Patterns))
	for i, p := range f.Patterns {
		byKey[NormalizeForDedup(p.Error)] = i
	}

	date := o.Now.Format("2006-01-02")
	for _, b := range bullets {
		key := NormalizeForDedup(b)
		entry := ErrorPattern{Error: b, File: o.File, Date: date}
		if i, ok := byKey[key]; ok {
			f.Patterns[i] = entry
		} else {
			byKey[key] = len(f.Patterns)
			f.Patterns = append(f.Patterns, entry)
		}
	}
	f.Meta.Updated = date

	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, raw)
}

func appendFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(content)
	return err
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
