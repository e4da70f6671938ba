package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/masmgr/commitline/internal/git"
)

// JSONCommit is the JSON record of a single commit.
type JSONCommit struct {
	Hash       string `json:"hash"`
	Author     string `json:"author"`
	Email      string `json:"email"`
	Date       string `json:"date"`
	Message    string `json:"message"`
	SourceRepo string `json:"sourceRepo"`
}

// JSONDay is one calendar day of a JSON timeline.
type JSONDay struct {
	Date    string       `json:"date"`
	Label   string       `json:"label"`
	Commits []JSONCommit `json:"commits"`
}

// JSONRepoActivity is the commit count of one repository along with its
// busiest 24-hour stretch.
type JSONRepoActivity struct {
	Repo        string  `json:"repo"`
	Name        string  `json:"name"`
	Commits     int     `json:"commits"`
	PeakCommits int     `json:"peakCommits"`
	PeakStart   string  `json:"peakStart,omitempty"`
	Burst       float64 `json:"burst"`
}

// JSONAuthorActivity is the commit count of one contributor.
type JSONAuthorActivity struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Commits int    `json:"commits"`
}

// JSONTimelineReport is the JSON output structure for timelines.
type JSONTimelineReport struct {
	Repos        []string             `json:"repos"`
	WindowDays   int                  `json:"windowDays"`
	Timezone     string               `json:"timezone"`
	Now          string               `json:"now"`
	GeneratedAt  string               `json:"generatedAt"`
	TotalCommits int                  `json:"totalCommits"`
	Days         []JSONDay            `json:"days"`
	Repositories []JSONRepoActivity   `json:"repositories"`
	Authors      []JSONAuthorActivity `json:"authors"`
	Skipped      []string             `json:"skipped,omitempty"`
}

// JSONCommitListReport is the JSON output structure for commit lists.
type JSONCommitListReport struct {
	Repos        []string     `json:"repos"`
	GeneratedAt  string       `json:"generatedAt"`
	TotalCommits int          `json:"totalCommits"`
	Commits      []JSONCommit `json:"commits"`
	Skipped      []string     `json:"skipped,omitempty"`
}

// NewJSONCommit converts a commit into its JSON record.
func NewJSONCommit(c *git.Commit) JSONCommit {
	return JSONCommit{
		Hash:       c.Hash,
		Author:     c.Author,
		Email:      c.Email,
		Date:       c.ISOTimestamp(),
		Message:    c.Message,
		SourceRepo: c.SourceRepo,
	}
}

func jsonCommits(commits []*git.Commit) []JSONCommit {
	out := make([]JSONCommit, len(commits))
	for i, c := range commits {
		out[i] = NewJSONCommit(c)
	}
	return out
}

// JSONTimelineWriter writes timelines as JSON.
type JSONTimelineWriter struct{}

// Write outputs the timeline as JSON.
func (w *JSONTimelineWriter) Write(report *TimelineReport, options OutputOptions) error {
	days := limitTop(report.Days, options.Top)

	jsonDays := make([]JSONDay, len(days))
	for i, d := range days {
		jsonDays[i] = JSONDay{
			Date:    d.Key,
			Label:   d.Label(),
			Commits: jsonCommits(d.Commits),
		}
	}

	repos := make([]JSONRepoActivity, len(report.Summary.Repos))
	for i, r := range report.Summary.Repos {
		repos[i] = JSONRepoActivity{
			Repo:        r.Repo,
			Name:        r.Name,
			Commits:     r.Commits,
			PeakCommits: r.Peak.Commits,
			Burst:       r.Peak.Score(),
		}
		if !r.Peak.Start.IsZero() {
			repos[i].PeakStart = r.Peak.Start.UTC().Format(git.ISOLayout)
		}
	}
	authors := make([]JSONAuthorActivity, len(report.Summary.Authors))
	for i, a := range report.Summary.Authors {
		authors[i] = JSONAuthorActivity{Name: a.Name, Email: a.Email, Commits: a.Commits}
	}

	jsonReport := JSONTimelineReport{
		Repos:        report.Repos,
		WindowDays:   windowDays(report.Window),
		Timezone:     locationName(report.Location),
		Now:          report.Now.UTC().Format(time.RFC3339),
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		TotalCommits: report.Summary.TotalCommits,
		Days:         jsonDays,
		Repositories: repos,
		Authors:      authors,
		Skipped:      errorStrings(report.Skipped),
	}

	return writeJSON(jsonReport, options)
}

// JSONCommitListWriter writes commit lists as JSON.
type JSONCommitListWriter struct{}

// Write outputs the commit list as JSON.
func (w *JSONCommitListWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	jsonReport := JSONCommitListReport{
		Repos:        report.Repos,
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		TotalCommits: len(report.Commits),
		Commits:      jsonCommits(commits),
		Skipped:      errorStrings(report.Skipped),
	}

	return writeJSON(jsonReport, options)
}

func writeJSON(data interface{}, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return encodeJSON(out, data)
}

func encodeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
