// ABOUTME: Project name detection from a cwd: git remote origin, basename fallback
// ABOUTME: Allow-lists the path before any subprocess call, per DESIGN NOTES §9's "never pass an unvalidated string to exec.Command"
package project

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// pathCharset rejects any cwd containing shell metacharacters before it is
// ever used as a subprocess's working directory.
var pathCharset = regexp.MustCompile(`^[A-Za-z0-9/_\-. ]+$`)

// Detect resolves a project name for cwd, per §4.10:
//  1. validate cwd's character set and that it exists; on failure, skip
//     straight to the basename/encoded-path fallback (never reaches exec).
//  2. try the git remote origin's repo name.
//  3. fall back to the directory's basename, or — for a Claude-style
//     encoded project directory name — the hyphen-joined remainder after
//     its "Projects" segment.
func Detect(cwd string) string {
	if cwd == "" {
		return ""
	}
	if isValidDir(cwd) {
		if name := remoteOriginName(cwd); name != "" {
			return name
		}
	}
	return basenameFallback(cwd)
}

func isValidDir(cwd string) bool {
	if !pathCharset.MatchString(cwd) {
		return false
	}
	info, err := os.Stat(cwd)
	return err == nil && info.IsDir()
}

func remoteOriginName(cwd string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "remote", "get-url", "origin")
	cmd.Dir = cwd
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return repoNameFromRemote(strings.TrimSpace(string(out)))
}

// repoNameFromRemote extracts the repo name from a git remote URL,
// handling both SSH ("git@host:org/repo.git") and HTTPS
// ("https://host/org/repo.git") forms.
func repoNameFromRemote(remote string) string {
	remote = strings.TrimSuffix(remote, ".git")
	if idx := strings.LastIndexAny(remote, "/:"); idx >= 0 && idx < len(remote)-1 {
		return remote[idx+1:]
	}
	return ""
}

// basenameFallback handles a plain local path and also the Claude-style
// encoded path variant, where an absolute path is flattened to a single
// hyphen-joined directory name (e.g. "-Users-alice-Projects-my-app").
func basenameFallback(cwd string) string {
	base := filepath.Base(cwd)
	if name := encodedProjectName(base); name != "" {
		return name
	}
	return base
}

// encodedProjectName locates the "projects" segment in a hyphen-joined
// encoded path and returns everything after it, re-joined with hyphens
// (the encoding is lossy about which hyphens were original path
// separators, so this is the best recoverable approximation).
func encodedProjectName(encoded string) string {
	parts := strings.Split(encoded, "-")
	for i, p := range parts {
		if strings.EqualFold(p, "projects") && i+1 < len(parts) {
			return strings.Join(parts[i+1:], "-")
		}
	}
	return ""
}
