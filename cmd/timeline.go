package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitline/internal/aggregation"
	"github.com/masmgr/commitline/internal/output"
	"github.com/masmgr/commitline/internal/timeline"
)

// TimelineCmd returns the timeline command.
func TimelineCmd() *cli.Command {
	return &cli.Command{
		Name:      "timeline",
		Aliases:   []string{"t"},
		Usage:     "Show recent commits of several repositories grouped by day",
		ArgsUsage: "[repo...]",
		Flags:     timelineFlags(),
		Action:    timelineAction,
	}
}

func timelineAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	result, err := ctx.MergeRepos(c)
	if err != nil {
		return err
	}

	commits := ctx.Matcher.Apply(result.Commits)
	builder := timeline.NewBuilder(ctx.Config.Window(), ctx.Location)
	days := builder.Build(commits, ctx.Now)
	ctx.Logger.Debug("built timeline",
		"commits", timeline.CommitCount(days),
		"days", len(days),
		"filtered", len(result.Commits)-len(commits),
		"dropped", len(commits)-timeline.CommitCount(days))

	report := &output.TimelineReport{
		Repos:       ctx.Repos,
		Window:      builder.Window(),
		Location:    builder.Location(),
		Now:         ctx.Now,
		GeneratedAt: time.Now(),
		Days:        days,
		Summary:     aggregation.Summarize(days),
		Skipped:     result.Skipped,
	}
	return writeTimelineReport(c, report)
}
