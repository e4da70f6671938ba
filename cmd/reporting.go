package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitline/internal/output"
)

func writeTimelineReport(c *cli.Context, report *output.TimelineReport) error {
	opts := OutputOptions(c)
	writer := output.NewTimelineReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeCommitList(c *cli.Context, report *output.CommitListReport) error {
	opts := OutputOptions(c)
	writer := output.NewCommitListWriter(opts.Format)
	return writer.Write(report, opts)
}
