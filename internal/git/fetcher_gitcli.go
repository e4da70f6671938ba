package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandContext builds the git process. Tests may replace it.
var CommandContext = exec.CommandContext

// CLIFetcher reads history by running the git command line tool.
type CLIFetcher struct {
	opts FetchOptions
}

// NewCLIFetcher creates a fetcher backed by the git executable.
func NewCLIFetcher(opts FetchOptions) *CLIFetcher {
	if opts.GitBinary == "" {
		opts.GitBinary = "git"
	}
	return &CLIFetcher{opts: opts}
}

// Fetch runs git log against repoPath and returns its standard output.
func (f *CLIFetcher) Fetch(ctx context.Context, repoPath string) (string, error) {
	if err := checkRepoDir(repoPath); err != nil {
		return "", err
	}

	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	args := f.logArgs(repoPath)
	cmd := CommandContext(ctx, f.opts.GitBinary, args...)
	cmd.Dir = repoPath
	cmd.Env = append(os.Environ(), "GIT_PAGER=cat", "LC_ALL=C")

	eb := &bytes.Buffer{}
	ob := &bytes.Buffer{}
	cmd.Stderr = eb
	cmd.Stdout = ob

	err := cmd.Run()
	if err == nil {
		return ob.String(), nil
	}

	stderr := strings.TrimSpace(eb.String())
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "", &FetchError{Repo: repoPath, Reason: FetchTimeout, Err: ctx.Err()}
	case ctx.Err() != nil:
		return "", &FetchError{Repo: repoPath, Reason: FetchCommandFailed, Err: ctx.Err()}
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return "", &FetchError{Repo: repoPath, Reason: FetchCommandUnavailable, Err: err}
	case strings.Contains(stderr, "does not have any commits yet"):
		return "", nil
	case strings.Contains(stderr, "not a git repository"):
		return "", &FetchError{Repo: repoPath, Reason: FetchNotRepository, Stderr: stderr, Err: err}
	default:
		return "", &FetchError{Repo: repoPath, Reason: FetchCommandFailed, Stderr: stderr, Err: err}
	}
}

// logArgs pins every option the parser depends on so user git config such
// as format.pretty or log.abbrevCommit cannot change the output.
func (f *CLIFetcher) logArgs(repoPath string) []string {
	args := []string{
		"-C", repoPath,
		"log",
		"--pretty=medium",
		"--no-abbrev-commit",
		"--no-color",
		"--no-decorate",
		"--date=default",
	}
	if f.opts.MaxCount > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", f.opts.MaxCount))
	}
	rev := strings.TrimSpace(f.opts.Revision)
	if rev != "" && !strings.EqualFold(rev, "HEAD") {
		args = append(args, rev, "--")
	}
	return args
}

func checkRepoDir(repoPath string) error {
	info, err := os.Stat(repoPath)
	if err != nil {
		return &FetchError{Repo: repoPath, Reason: FetchNotRepository, Err: err}
	}
	if !info.IsDir() {
		return &FetchError{Repo: repoPath, Reason: FetchNotRepository, Err: fmt.Errorf("not a directory")}
	}
	return nil
}
