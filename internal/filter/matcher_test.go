package filter

import (
	"testing"
	"time"

	"github.com/masmgr/commitline/internal/git"
)

func TestNewMatcher_ValidPatterns(t *testing.T) {
	m, err := NewMatcher([]string{`\bfix(ed|es)?\b`, `\bbug\b`, `\bhotfix\b`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.patterns) != 3 {
		t.Errorf("expected 3 compiled patterns, got %d", len(m.patterns))
	}
}

func TestNewMatcher_InvalidPattern(t *testing.T) {
	if _, err := NewMatcher([]string{`[invalid`}); err == nil {
		t.Fatal("expected error for invalid pattern, got nil")
	}
}

func TestNewMatcher_SkipsBlankPatterns(t *testing.T) {
	m, err := NewMatcher([]string{"fix", "", "  ", "bug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.patterns) != 2 {
		t.Errorf("expected 2 compiled patterns, got %d", len(m.patterns))
	}
}

func TestMatch(t *testing.T) {
	m, err := NewMatcher([]string{`\bfix(ed|es)?\b`, `\bbug\b`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"matches fix", "fix: resolve null pointer", true},
		{"matches fixes", "fixes #123", true},
		{"matches bug", "bug in auth module", true},
		{"case insensitive", "FIX: resolve issue", true},
		{"body line", "update deps\n    fixes the build", true},
		{"no match", "add new feature", false},
		{"partial word no match", "prefix fixation suffix", false},
		{"empty message", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.message); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestMatch_NoPatternsKeepsEverything(t *testing.T) {
	m, err := NewMatcher(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Empty() {
		t.Error("expected empty matcher")
	}
	if !m.Match("anything") {
		t.Error("empty matcher should match every message")
	}
}

func TestApply(t *testing.T) {
	when := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	mk := func(hash, msg string) *git.Commit {
		c, err := git.NewCommit(hash, "Ann", "ann@example.com", when, msg, "/src/api")
		if err != nil {
			t.Fatalf("NewCommit: %v", err)
		}
		return c
	}
	commits := []*git.Commit{
		mk("a1", "fix login"),
		mk("a2", "add search"),
		mk("a3", "Fixed typo"),
	}

	m, err := NewMatcher([]string{`\bfix(ed)?\b`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := m.Apply(commits)

	if len(got) != 2 || got[0].Hash != "a1" || got[1].Hash != "a3" {
		t.Fatalf("Apply() kept %d commits, want a1 and a3", len(got))
	}
	if len(commits) != 3 {
		t.Error("Apply() modified its input")
	}
}
