// Package filter selects commits by matching their messages against
// regular expressions.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/masmgr/commitline/internal/git"
)

// Matcher keeps commits whose message matches any of its patterns.
// A matcher without patterns keeps everything.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles the given patterns. Patterns are case-insensitive and
// blank entries are ignored.
func NewMatcher(patterns []string) (*Matcher, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid message pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &Matcher{patterns: compiled}, nil
}

// Empty reports whether the matcher has no patterns.
func (m *Matcher) Empty() bool {
	return len(m.patterns) == 0
}

// Match reports whether message matches any pattern.
func (m *Matcher) Match(message string) bool {
	if m.Empty() {
		return true
	}
	for _, re := range m.patterns {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}

// Apply returns the commits whose message matches, preserving order.
// The input slice is not modified.
func (m *Matcher) Apply(commits []*git.Commit) []*git.Commit {
	if m.Empty() {
		return commits
	}
	kept := make([]*git.Commit, 0, len(commits))
	for _, c := range commits {
		if m.Match(c.Message) {
			kept = append(kept, c)
		}
	}
	return kept
}
