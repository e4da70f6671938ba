package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitline/config"
	"github.com/masmgr/commitline/internal/filter"
	"github.com/masmgr/commitline/internal/git"
	"github.com/masmgr/commitline/internal/log"
	"github.com/masmgr/commitline/internal/output"
)

// newFetcher builds the history fetcher; tests replace it with a mock.
var newFetcher = git.NewFetcher

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config   *config.Config
	Logger   *slog.Logger
	Now      time.Time
	Location *time.Location
	Matcher  *filter.Matcher
	Repos    []string
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, sets up logging, resolves the reference time and
// timezone, and compiles message filters.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithWriter(c.App.ErrWriter, log.Format(cfg.Log.Format), cfg.Log.Level)

	now, err := parseNowFlag(c.String("now"))
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	matcher, err := filter.NewMatcher(cfg.Timeline.Grep)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Config:   cfg,
		Logger:   logger,
		Now:      now,
		Location: loc,
		Matcher:  matcher,
	}, nil
}

// ResolveRepos expands repository paths and globs into concrete directories,
// dropping configured exclusions. With no patterns the current directory is
// used.
func (ctx *CommandContext) ResolveRepos(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	repos, err := git.ExpandRepoPaths(patterns, ctx.Config.Repos.Exclude)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, errors.New("no repositories matched the given paths")
	}
	ctx.Repos = repos
	return repos, nil
}

// repoPatterns returns the repositories named on the command line, or the
// configured ones when no positional arguments are given.
func repoPatterns(c *cli.Context, cfg *config.Config) []string {
	args := c.Args().Slice()
	if len(args) == 0 {
		return cfg.Repos.Paths
	}
	return append(append([]string{}, c.StringSlice("repo")...), args...)
}

// MergeRepos fetches and merges the history of every resolved repository.
func (ctx *CommandContext) MergeRepos(c *cli.Context) (*git.MergeResult, error) {
	if _, err := ctx.ResolveRepos(repoPatterns(c, ctx.Config)); err != nil {
		return nil, err
	}

	fetcher := newFetcher(ctx.Config.FetchBackend(), ctx.Config.FetchOptions())
	merger := git.NewMerger(fetcher, git.MergeOptions{
		Policy:      ctx.Config.MergePolicy(),
		Concurrency: ctx.Config.Merge.Concurrency,
		Logger:      ctx.Logger,
	})

	ctx.Logger.Debug("merging repositories",
		"repos", len(ctx.Repos),
		"backend", string(ctx.Config.FetchBackend()),
		"policy", string(ctx.Config.MergePolicy()))

	result, err := merger.MergeAll(c.Context, ctx.Repos)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return result, nil
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	opts := output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
	}
	if opts.OutputPath == "" {
		opts.Writer = c.App.Writer
	}
	return opts
}
