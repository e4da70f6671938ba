package output

import (
	"io"
	"time"

	"github.com/masmgr/commitline/internal/aggregation"
	"github.com/masmgr/commitline/internal/git"
	"github.com/masmgr/commitline/internal/timeline"
)

// Compile-time interface conformance checks.
var (
	_ TimelineReportWriter = (*ConsoleTimelineWriter)(nil)
	_ TimelineReportWriter = (*JSONTimelineWriter)(nil)
	_ TimelineReportWriter = (*CSVTimelineWriter)(nil)
	_ TimelineReportWriter = (*MarkdownTimelineWriter)(nil)
	_ TimelineReportWriter = (*CITimelineWriter)(nil)

	_ CommitListWriter = (*ConsoleCommitListWriter)(nil)
	_ CommitListWriter = (*JSONCommitListWriter)(nil)
	_ CommitListWriter = (*CSVCommitListWriter)(nil)
	_ CommitListWriter = (*MarkdownCommitListWriter)(nil)
	_ CommitListWriter = (*CICommitListWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int    // days for timelines, commits for lists; 0 means all
	OutputPath string // file to create; empty means Writer or stdout
	Writer     io.Writer
}

// TimelineReport holds a day-grouped multi-repository timeline.
type TimelineReport struct {
	Repos       []string
	Window      time.Duration // <= 0 means no cutoff was applied
	Location    *time.Location
	Now         time.Time // reference time for the cutoff
	GeneratedAt time.Time
	Days        []timeline.Day
	Summary     aggregation.Summary
	Skipped     []error
}

// CommitListReport holds a flat list of merged commits, newest first.
type CommitListReport struct {
	Repos       []string
	GeneratedAt time.Time
	Commits     []*git.Commit
	Skipped     []error
}

// TimelineReportWriter writes timeline reports.
type TimelineReportWriter interface {
	Write(report *TimelineReport, options OutputOptions) error
}

// CommitListWriter writes flat commit lists.
type CommitListWriter interface {
	Write(report *CommitListReport, options OutputOptions) error
}

// NewTimelineReportWriter creates a timeline writer for the specified format.
func NewTimelineReportWriter(format OutputFormat) TimelineReportWriter {
	switch format {
	case FormatJSON:
		return &JSONTimelineWriter{}
	case FormatCSV:
		return &CSVTimelineWriter{}
	case FormatMarkdown:
		return &MarkdownTimelineWriter{}
	case FormatCI:
		return &CITimelineWriter{}
	default:
		return &ConsoleTimelineWriter{}
	}
}

// NewCommitListWriter creates a commit list writer for the specified format.
func NewCommitListWriter(format OutputFormat) CommitListWriter {
	switch format {
	case FormatJSON:
		return &JSONCommitListWriter{}
	case FormatCSV:
		return &CSVCommitListWriter{}
	case FormatMarkdown:
		return &MarkdownCommitListWriter{}
	case FormatCI:
		return &CICommitListWriter{}
	default:
		return &ConsoleCommitListWriter{}
	}
}
