package output

import (
	"encoding/csv"

	"github.com/masmgr/commitline/internal/git"
)

var csvCommitHeader = []string{"Hash", "Author", "Email", "Date", "Message", "SourceRepo"}

func csvCommitRow(c *git.Commit) []string {
	return []string{c.Hash, c.Author, c.Email, c.ISOTimestamp(), c.Message, c.SourceRepo}
}

// CSVTimelineWriter writes timelines as CSV, one row per commit.
type CSVTimelineWriter struct{}

// Write outputs the timeline as CSV.
func (w *CSVTimelineWriter) Write(report *TimelineReport, options OutputOptions) error {
	days := limitTop(report.Days, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	writer := csv.NewWriter(out)

	headers := append([]string{"Day"}, csvCommitHeader...)
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, day := range days {
		for _, c := range day.Commits {
			row := append([]string{day.Key}, csvCommitRow(c)...)
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVCommitListWriter writes commit lists as CSV.
type CSVCommitListWriter struct{}

// Write outputs the commit list as CSV.
func (w *CSVCommitListWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	writer := csv.NewWriter(out)

	if err := writer.Write(csvCommitHeader); err != nil {
		return err
	}
	for _, c := range commits {
		if err := writer.Write(csvCommitRow(c)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
