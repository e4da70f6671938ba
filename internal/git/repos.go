package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandRepoPaths resolves repository patterns into a de-duplicated list of
// paths, preserving order. Patterns may start with "~" and may contain
// doublestar globs ("~/work/*", "src/**/service"); globs only match
// directories. Plain paths are passed through unchecked so that a missing
// repository is still reported by the fetcher. Paths matching any exclude
// pattern are dropped.
func ExpandRepoPaths(patterns, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePathPattern(expandHome(pattern)) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	var paths []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		pattern = expandHome(pattern)

		if !hasMeta(pattern) {
			paths = append(paths, pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand repository pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if info, err := os.Stat(match); err == nil && info.IsDir() {
				paths = append(paths, match)
			}
		}
	}

	out := make([]string, 0, len(paths))
	for _, p := range dedupe(paths) {
		if excluded(p, exclude) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func excluded(path string, exclude []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, pattern := range exclude {
		pattern = filepath.ToSlash(expandHome(pattern))
		if matched, _ := doublestar.Match(pattern, slashed); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, RepoName(slashed)); matched {
			return true
		}
	}
	return false
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
