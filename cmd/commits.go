package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitline/internal/output"
	"github.com/masmgr/commitline/internal/timeline"
)

// CommitsCmd returns the commits command.
func CommitsCmd() *cli.Command {
	return &cli.Command{
		Name:      "commits",
		Aliases:   []string{"c"},
		Usage:     "List the merged commits of several repositories, newest first",
		ArgsUsage: "[repo...]",
		Flags:     append(append(fetchFlags(), filterFlags()...), outputFlags()...),
		Action:    commitsAction,
	}
}

func commitsAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	result, err := ctx.MergeRepos(c)
	if err != nil {
		return err
	}

	report := &output.CommitListReport{
		Repos:       ctx.Repos,
		GeneratedAt: time.Now(),
		Commits:     timeline.SortNewestFirst(ctx.Matcher.Apply(result.Commits)),
		Skipped:     result.Skipped,
	}
	return writeCommitList(c, report)
}
