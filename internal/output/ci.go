package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type         string `json:"type"`
	TotalCommits int    `json:"totalCommits"`
	Days         int    `json:"days"`
	Repos        int    `json:"repos"`
	Authors      int    `json:"authors"`
	Skipped      int    `json:"skipped"`
}

// CICommitEntry represents a single commit in CI output.
type CICommitEntry struct {
	Type string `json:"type"`
	Day  string `json:"day,omitempty"`
	JSONCommit
}

// CISkippedEntry reports a repository or commit left out of the merge.
type CISkippedEntry struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// CITimelineWriter writes timelines as NDJSON (one JSON object per line) for CI pipelines.
type CITimelineWriter struct{}

// Write outputs the timeline as NDJSON.
func (w *CITimelineWriter) Write(report *TimelineReport, options OutputOptions) error {
	days := limitTop(report.Days, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{
		Type:         "summary",
		TotalCommits: report.Summary.TotalCommits,
		Days:         report.Summary.Days,
		Repos:        len(report.Summary.Repos),
		Authors:      len(report.Summary.Authors),
		Skipped:      len(report.Skipped),
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, day := range days {
		for _, c := range day.Commits {
			entry := CICommitEntry{Type: "commit", Day: day.Key, JSONCommit: NewJSONCommit(c)}
			if err := writeNDJSONLine(out, entry); err != nil {
				return err
			}
		}
	}

	return writeNDJSONSkipped(out, report.Skipped)
}

// CICommitListWriter writes commit lists as NDJSON.
type CICommitListWriter struct{}

// Write outputs the commit list as NDJSON.
func (w *CICommitListWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	repos := make(map[string]bool)
	authors := make(map[string]bool)
	for _, c := range report.Commits {
		repos[c.SourceRepo] = true
		authors[c.ContributorKey()] = true
	}

	summary := CISummary{
		Type:         "summary",
		TotalCommits: len(report.Commits),
		Repos:        len(repos),
		Authors:      len(authors),
		Skipped:      len(report.Skipped),
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, c := range commits {
		if err := writeNDJSONLine(out, CICommitEntry{Type: "commit", JSONCommit: NewJSONCommit(c)}); err != nil {
			return err
		}
	}

	return writeNDJSONSkipped(out, report.Skipped)
}

func writeNDJSONSkipped(w io.Writer, skipped []error) error {
	for _, err := range skipped {
		if werr := writeNDJSONLine(w, CISkippedEntry{Type: "skipped", Error: err.Error()}); werr != nil {
			return werr
		}
	}
	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
