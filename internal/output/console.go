package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/masmgr/commitline/internal/git"
)

var (
	titleColor   = color.New(color.FgGreen)
	dayColor     = color.New(color.FgCyan, color.Bold)
	timeColor    = color.New(color.FgYellow)
	repoColor    = color.New(color.FgMagenta)
	skippedColor = color.New(color.FgYellow)
)

// ConsoleTimelineWriter writes timelines as day-grouped text.
type ConsoleTimelineWriter struct{}

// Write outputs the timeline to the console:
//
//	Mon Jan 08
//	  11:00 - Ann (api)
//	      fix login redirect
func (w *ConsoleTimelineWriter) Write(report *TimelineReport, options OutputOptions) error {
	days := limitTop(report.Days, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	titleColor.Fprintln(out, "Commit Timeline")
	fmt.Fprintf(out, "Repositories: %s\n", strings.Join(repoNames(report.Repos), ", "))
	fmt.Fprintf(out, "Window: %s\n", windowLabel(report.Window, report.Location))
	fmt.Fprintf(out, "Total commits: %d across %d days\n", report.Summary.TotalCommits, report.Summary.Days)

	if len(days) == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "No commits in the selected window.")
	}

	for _, day := range days {
		fmt.Fprintln(out)
		dayColor.Fprintln(out, day.Label())
		loc := day.Location()
		for _, c := range day.Commits {
			writeConsoleCommit(out, c, c.Timestamp.In(loc).Format(commitTimeLayout))
		}
	}

	if len(report.Summary.Repos) > 1 || len(report.Summary.Authors) > 0 {
		fmt.Fprintln(out)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Repository\tCommits\tPeak 24h")
		for _, r := range report.Summary.Repos {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", r.Name, r.Commits, r.Peak.Commits)
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Author\tEmail\tCommits")
		for _, a := range report.Summary.Authors {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", a.Name, a.Email, a.Commits)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	writeConsoleSkipped(out, report.Skipped)
	return nil
}

// ConsoleCommitListWriter writes flat commit lists as text.
type ConsoleCommitListWriter struct{}

// Write outputs the commit list to the console, newest first.
func (w *ConsoleCommitListWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	titleColor.Fprintln(out, "Merged Commits")
	fmt.Fprintf(out, "Repositories: %s\n", strings.Join(repoNames(report.Repos), ", "))
	fmt.Fprintf(out, "Total commits: %d\n\n", len(report.Commits))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tHash\tDate\tAuthor\tRepo\tMessage")
	for i, c := range commits {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			c.ShortHash(),
			c.ISOTimestamp(),
			c.Author,
			c.RepoName(),
			truncateMessage(subject(c.Message), 60),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	writeConsoleSkipped(out, report.Skipped)
	return nil
}

func writeConsoleCommit(out io.Writer, c *git.Commit, clock string) {
	fmt.Fprintf(out, "  %s - %s (%s)\n", timeColor.Sprint(clock), c.Author, repoColor.Sprint(c.RepoName()))
	for _, line := range messageLines(c.Message) {
		fmt.Fprintf(out, "      %s\n", line)
	}
}

func writeConsoleSkipped(out io.Writer, skipped []error) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintln(out)
	skippedColor.Fprintf(out, "Skipped (%d):\n", len(skipped))
	for _, err := range skipped {
		fmt.Fprintf(out, "  %s\n", err)
	}
}
