package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitline/internal/aggregation"
	"github.com/masmgr/commitline/internal/git"
	"github.com/masmgr/commitline/internal/output"
	"github.com/masmgr/commitline/internal/timeline"
)

const stdinName = "-"

// ParseCmd returns the parse command.
func ParseCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "repo-id",
			Usage: "Repository identifier stamped on every commit (default: file path or \"stdin\")",
		},
		&cli.BoolFlag{
			Name:  "timeline",
			Usage: "Group commits by day within the recency window instead of listing them",
		},
		&cli.BoolFlag{
			Name:  "lenient",
			Usage: "Skip malformed commit blocks instead of failing",
		},
	}
	flags = append(flags, windowFlags()...)
	flags = append(flags, filterFlags()...)
	flags = append(flags, outputFlags()...)

	return &cli.Command{
		Name:      "parse",
		Aliases:   []string{"p"},
		Usage:     "Parse saved `git log` output (file or stdin) as one repository",
		ArgsUsage: "[file]",
		Flags:     flags,
		Action:    parseAction,
	}
}

func parseAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	source := c.Args().First()
	raw, err := readLogInput(c, source)
	if err != nil {
		return err
	}

	repoID := c.String("repo-id")
	if repoID == "" {
		repoID = source
		if repoID == "" || repoID == stdinName {
			repoID = "stdin"
		}
	}

	var (
		commits []*git.Commit
		skipped []error
	)
	if c.Bool("lenient") {
		commits, skipped = git.ParseLogLenient(raw, repoID)
		for _, serr := range skipped {
			ctx.Logger.Warn("skipping malformed commit", "repo", repoID, "error", serr)
		}
	} else {
		commits, err = git.ParseLog(raw, repoID)
		if err != nil {
			return err
		}
	}
	ctx.Logger.Debug("parsed log", "repo", repoID, "commits", len(commits), "skipped", len(skipped))
	commits = ctx.Matcher.Apply(commits)

	repos := []string{repoID}

	if c.Bool("timeline") {
		builder := timeline.NewBuilder(ctx.Config.Window(), ctx.Location)
		days := builder.Build(commits, ctx.Now)
		return writeTimelineReport(c, &output.TimelineReport{
			Repos:       repos,
			Window:      builder.Window(),
			Location:    builder.Location(),
			Now:         ctx.Now,
			GeneratedAt: time.Now(),
			Days:        days,
			Summary:     aggregation.Summarize(days),
			Skipped:     skipped,
		})
	}

	return writeCommitList(c, &output.CommitListReport{
		Repos:       repos,
		GeneratedAt: time.Now(),
		Commits:     timeline.SortNewestFirst(commits),
		Skipped:     skipped,
	})
}

// readLogInput reads the log text from path, or from the app's reader when
// path is empty or "-".
func readLogInput(c *cli.Context, path string) (string, error) {
	if path == "" || path == stdinName {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read log file: %w", err)
	}
	return string(data), nil
}
