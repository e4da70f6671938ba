package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/masmgr/commitline/internal/git"
)

const (
	commitTimeLayout = "15:04"
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

// windowLabel describes the recency window, e.g. "last 7 days (UTC)".
func windowLabel(window time.Duration, loc *time.Location) string {
	zone := locationName(loc)
	if window <= 0 {
		return "all history (" + zone + ")"
	}
	days := windowDays(window)
	if days == 1 {
		return "last 1 day (" + zone + ")"
	}
	return fmt.Sprintf("last %d days (%s)", days, zone)
}

func windowDays(window time.Duration) int {
	if window <= 0 {
		return 0
	}
	return int(window / (24 * time.Hour))
}

func locationName(loc *time.Location) string {
	if loc == nil {
		return time.UTC.String()
	}
	return loc.String()
}

func repoNames(repos []string) []string {
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = git.RepoName(r)
	}
	return names
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

// messageLines splits a commit message into its trimmed lines.
func messageLines(msg string) []string {
	if msg == "" {
		return nil
	}
	lines := strings.Split(msg, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// subject returns the first line of a commit message.
func subject(msg string) string {
	if idx := strings.IndexByte(msg, '\n'); idx != -1 {
		return strings.TrimSpace(msg[:idx])
	}
	return strings.TrimSpace(msg)
}

func truncateMessage(msg string, maxLen int) string {
	runes := []rune(msg)
	if len(runes) <= maxLen {
		return msg
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// openOutputWriter resolves the destination: an explicit Writer, then a file
// at OutputPath, then stdout. The returned file is non-nil only when the
// caller must close it.
func openOutputWriter(options OutputOptions) (io.Writer, *os.File, error) {
	if options.Writer != nil {
		return options.Writer, nil, nil
	}
	if options.OutputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(options.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
