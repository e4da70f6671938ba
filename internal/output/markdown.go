package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownTimelineWriter writes timelines as Markdown, one section per day.
type MarkdownTimelineWriter struct{}

// Write outputs the timeline as Markdown.
func (w *MarkdownTimelineWriter) Write(report *TimelineReport, options OutputOptions) error {
	days := limitTop(report.Days, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# Commit Timeline")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repositories:** %s\n\n", escapeMarkdown(strings.Join(repoNames(report.Repos), ", ")))
	fmt.Fprintf(out, "**Window:** %s\n\n", windowLabel(report.Window, report.Location))
	fmt.Fprintf(out, "**Total Commits:** %d across %d days\n\n", report.Summary.TotalCommits, report.Summary.Days)

	for _, day := range days {
		fmt.Fprintf(out, "## %s\n\n", day.Label())
		fmt.Fprintln(out, "| Time | Author | Repository | Hash | Message |")
		fmt.Fprintln(out, "|------|--------|------------|------|---------|")
		loc := day.Location()
		for _, c := range day.Commits {
			fmt.Fprintf(out, "| %s | %s | %s | `%s` | %s |\n",
				c.Timestamp.In(loc).Format(commitTimeLayout),
				escapeMarkdown(c.Author),
				escapeMarkdown(c.RepoName()),
				c.ShortHash(),
				escapeMarkdown(subject(c.Message)))
		}
		fmt.Fprintln(out)
	}

	if len(report.Summary.Authors) > 0 {
		fmt.Fprintln(out, "## Activity")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| Repository | Commits | Peak 24h |")
		fmt.Fprintln(out, "|------------|---------|----------|")
		for _, r := range report.Summary.Repos {
			fmt.Fprintf(out, "| %s | %d | %d |\n", escapeMarkdown(r.Name), r.Commits, r.Peak.Commits)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| Author | Email | Commits |")
		fmt.Fprintln(out, "|--------|-------|---------|")
		for _, a := range report.Summary.Authors {
			fmt.Fprintf(out, "| %s | %s | %d |\n", escapeMarkdown(a.Name), escapeMarkdown(a.Email), a.Commits)
		}
		fmt.Fprintln(out)
	}

	writeMarkdownSkipped(out, report.Skipped)
	return nil
}

// MarkdownCommitListWriter writes commit lists as a Markdown table.
type MarkdownCommitListWriter struct{}

// Write outputs the commit list as Markdown.
func (w *MarkdownCommitListWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Merged Commits")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repositories:** %s\n\n", escapeMarkdown(strings.Join(repoNames(report.Repos), ", ")))
	fmt.Fprintf(out, "**Total Commits:** %d\n\n", len(report.Commits))

	fmt.Fprintln(out, "| # | Date | Author | Repository | Hash | Message |")
	fmt.Fprintln(out, "|---|------|--------|------------|------|---------|")
	for i, c := range commits {
		fmt.Fprintf(out, "| %d | %s | %s | %s | `%s` | %s |\n",
			i+1,
			c.ISOTimestamp(),
			escapeMarkdown(c.Author),
			escapeMarkdown(c.RepoName()),
			c.ShortHash(),
			escapeMarkdown(subject(c.Message)))
	}
	fmt.Fprintln(out)

	writeMarkdownSkipped(out, report.Skipped)
	return nil
}

func writeMarkdownSkipped(out io.Writer, skipped []error) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintln(out, "## Skipped")
	fmt.Fprintln(out)
	for _, err := range skipped {
		fmt.Fprintf(out, "- %s\n", escapeMarkdown(err.Error()))
	}
	fmt.Fprintln(out)
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
