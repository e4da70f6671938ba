package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitline/config"
	"github.com/masmgr/commitline/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "commitline",
		Usage:     "Merge the git histories of several repositories into one day-grouped timeline",
		UsageText: "commitline [global options] [repo...]\n   commitline command [command options] [repo...]",
		Version:   "1.0.0",
		Commands: []*cli.Command{
			TimelineCmd(),
			CommitsCmd(),
			ParseCmd(),
		},
		Flags:  append([]cli.Flag{configFlag()}, timelineFlags()...),
		Action: legacyAction,
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file (.json, .yaml)",
	}
}

// Output and logging flags shared by every command.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Limit the number of days (timeline) or commits (list); 0 shows all",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Load COMMITLINE_* variables from this .env file",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (DEBUG, INFO, WARN, ERROR)",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format (pretty, json)",
		},
	}
}

// Flags controlling how repository histories are fetched and merged.
func fetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Repository path or glob (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of repositories to leave out (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "History backend (gitcli, gogit)",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Revision to read history from (default: HEAD)",
		},
		&cli.IntFlag{
			Name:  "max-count",
			Usage: "Read at most this many commits per repository",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-repository fetch timeout (e.g. 30s, 2m)",
		},
		&cli.StringFlag{
			Name:  "on-error",
			Usage: "Failure policy (abort, skip-repo, skip-commit)",
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "Number of repositories fetched at once",
		},
	}
}

// Flags controlling the recency window and day bucketing.
func windowFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "days",
			Usage: "Recency window in days; 0 keeps all history",
		},
		&cli.StringFlag{
			Name:  "timezone",
			Usage: "Timezone for day grouping and display (utc, local or an IANA name)",
		},
		&cli.StringFlag{
			Name:  "now",
			Usage: "Reference time for the window (RFC3339, default: current time)",
		},
	}
}

// Flags selecting which commits are reported.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "grep",
			Usage: "Keep only commits whose message matches this regex (case-insensitive, repeatable)",
		},
	}
}

func timelineFlags() []cli.Flag {
	flags := append(fetchFlags(), windowFlags()...)
	flags = append(flags, filterFlags()...)
	return append(flags, outputFlags()...)
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch strings.ToLower(s) {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// parseNowFlag parses the --now flag; an empty value means the current time.
func parseNowFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now value: %s (expected RFC3339, e.g. 2024-01-08T12:00:00Z)", s)
	}
	return t, nil
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then COMMITLINE_* variables, then CLI flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ApplyEnv(cfg, c.String("env-file")); err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(c, cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyFlagOverrides(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("days") {
		cfg.Timeline.WindowDays = c.Int("days")
	}
	if c.IsSet("timezone") {
		cfg.Timeline.Timezone = c.String("timezone")
	}
	if c.IsSet("backend") {
		cfg.Fetch.Backend = c.String("backend")
	}
	if c.IsSet("branch") {
		cfg.Fetch.Branch = c.String("branch")
	}
	if c.IsSet("max-count") {
		cfg.Fetch.MaxCount = c.Int("max-count")
	}
	if c.IsSet("timeout") {
		secs, err := timeoutSeconds(c.Duration("timeout"))
		if err != nil {
			return err
		}
		cfg.Fetch.TimeoutSeconds = secs
	}
	if c.IsSet("on-error") {
		cfg.Merge.OnError = c.String("on-error")
	}
	if c.IsSet("concurrency") {
		cfg.Merge.Concurrency = c.Int("concurrency")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}

	if repos := c.StringSlice("repo"); len(repos) > 0 {
		cfg.Repos.Paths = repos
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Repos.Exclude = excludes
	}
	if patterns := c.StringSlice("grep"); len(patterns) > 0 {
		cfg.Timeline.Grep = patterns
	}
	return nil
}

// timeoutSeconds converts --timeout to the whole seconds kept in config.
// Zero disables the timeout, so fractional values are rejected rather than
// truncated.
func timeoutSeconds(d time.Duration) (int, error) {
	if d%time.Second != 0 {
		return 0, fmt.Errorf("%w: --timeout %s is not a whole number of seconds", config.ErrInvalidTimeout, d)
	}
	return int(d / time.Second), nil
}

// legacyAction handles the default command behavior: positional arguments
// are repository paths and a timeline is printed.
func legacyAction(c *cli.Context) error {
	if c.NArg() == 0 && !c.IsSet("repo") {
		return cli.ShowAppHelp(c)
	}
	return timelineAction(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
