// ABOUTME: Tests for project name detection from git remotes and encoded path fallbacks
package project

import "testing"

func TestRepoNameFromRemote(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		want   string
	}{
		{"ssh", "git@github.com:acme/widgets.git", "widgets"},
		{"https", "https://github.com/acme/widgets.git", "widgets"},
		{"https no .git suffix", "https://github.com/acme/widgets", "widgets"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repoNameFromRemote(tt.remote); got != tt.want {
				t.Errorf("repoNameFromRemote(%q) = %q, want %q", tt.remote, got, tt.want)
			}
		})
	}
}

func TestEncodedProjectName(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    string
	}{
		{"claude-style encoded path", "-Users-alice-Projects-my-app", "my-app"},
		{"no projects segment", "-Users-alice-Code-my-app", ""},
		{"case insensitive", "-home-bob-PROJECTS-widgets", "widgets"},
		{"trailing projects segment with nothing after", "-Users-alice-Projects", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodedProjectName(tt.encoded); got != tt.want {
				t.Errorf("encodedProjectName(%q) = %q, want %q", tt.encoded, got, tt.want)
			}
		})
	}
}

func TestBasenameFallback(t *testing.T) {
	tests := []struct {
		name string
		cwd  string
		want string
	}{
		{"plain path", "/home/alice/widgets", "widgets"},
		{"encoded path wins over basename", "/x/-Users-alice-Projects-my-app", "my-app"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basenameFallback(tt.cwd); got != tt.want {
				t.Errorf("basenameFallback(%q) = %q, want %q", tt.cwd, got, tt.want)
			}
		})
	}
}

func TestDetect_EmptyCwd(t *testing.T) {
	if got := Detect(""); got != "" {
		t.Errorf("Detect(\"\") = %q, want empty", got)
	}
}
