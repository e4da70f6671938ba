package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// MergePolicy decides what happens when one repository fails to load.
type MergePolicy string

const (
	// PolicyAbort fails the whole merge on the first failing repository.
	PolicyAbort MergePolicy = "abort"
	// PolicySkipRepo leaves failing repositories out and reports them.
	PolicySkipRepo MergePolicy = "skip-repo"
	// PolicySkipCommit behaves like PolicySkipRepo for fetch failures and
	// additionally drops individual malformed commits instead of the repository.
	PolicySkipCommit MergePolicy = "skip-commit"
)

// ParseMergePolicy converts a config or flag value into a MergePolicy.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(s) {
	case "", PolicyAbort:
		return PolicyAbort, nil
	case PolicySkipRepo:
		return PolicySkipRepo, nil
	case PolicySkipCommit:
		return PolicySkipCommit, nil
	default:
		return "", fmt.Errorf("invalid merge policy %q (expected abort, skip-repo, skip-commit)", s)
	}
}

// DefaultConcurrency bounds the number of repositories fetched at once.
const DefaultConcurrency = 4

// MergeOptions configures a Merger.
type MergeOptions struct {
	Policy      MergePolicy
	Concurrency int
	Logger      *slog.Logger
}

// MergeResult holds the merged commits in repo-major order along with the
// failures skipped under a lenient policy.
type MergeResult struct {
	Commits []*Commit
	Skipped []error
}

// Merger loads and concatenates the history of several repositories.
type Merger struct {
	fetcher LogFetcher
	opts    MergeOptions
}

// NewMerger creates a merger that reads logs through fetcher.
func NewMerger(fetcher LogFetcher, opts MergeOptions) *Merger {
	if opts.Policy == "" {
		opts.Policy = PolicyAbort
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Merger{fetcher: fetcher, opts: opts}
}

type repoResult struct {
	commits []*Commit
	skipped []error
	err     error
}

// MergeAll fetches and parses every repository and concatenates the commits
// in the order of repoPaths (all commits of the first repository, then the
// second, ...). Fetches run concurrently; each carries its own repository
// path so no working directory is shared.
func (m *Merger) MergeAll(ctx context.Context, repoPaths []string) (*MergeResult, error) {
	repoPaths = dedupe(repoPaths)
	results := make([]repoResult, len(repoPaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Concurrency)

	for i, repoPath := range repoPaths {
		g.Go(func() error {
			res := m.loadRepo(gctx, repoPath)
			results[i] = res
			if res.err != nil && m.opts.Policy == PolicyAbort {
				return res.err
			}
			return nil
		})
	}
	waitErr := g.Wait()

	merged := &MergeResult{}
	for i, res := range results {
		if res.err != nil {
			if m.opts.Policy == PolicyAbort {
				continue
			}
			m.opts.Logger.Warn("skipping repository", "repo", repoPaths[i], "error", res.err)
			merged.Skipped = append(merged.Skipped, res.err)
			continue
		}
		for _, err := range res.skipped {
			m.opts.Logger.Warn("dropping malformed commit", "repo", repoPaths[i], "error", err)
		}
		merged.Skipped = append(merged.Skipped, res.skipped...)
		merged.Commits = append(merged.Commits, res.commits...)
	}

	if waitErr != nil {
		return nil, firstFailure(results, waitErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return merged, nil
}

func (m *Merger) loadRepo(ctx context.Context, repoPath string) repoResult {
	m.opts.Logger.Debug("fetching history", "repo", repoPath)
	raw, err := m.fetcher.Fetch(ctx, repoPath)
	if err != nil {
		return repoResult{err: err}
	}

	if m.opts.Policy == PolicySkipCommit {
		commits, errs := ParseLogLenient(raw, repoPath)
		m.opts.Logger.Debug("parsed history", "repo", repoPath, "commits", len(commits), "dropped", len(errs))
		return repoResult{commits: commits, skipped: errs}
	}

	commits, err := ParseLog(raw, repoPath)
	if err != nil {
		return repoResult{err: err}
	}
	m.opts.Logger.Debug("parsed history", "repo", repoPath, "commits", len(commits))
	return repoResult{commits: commits}
}

// firstFailure returns the error of the lowest-index repository that failed
// on its own, ignoring fetches cancelled because another repository failed.
func firstFailure(results []repoResult, fallback error) error {
	for _, res := range results {
		if res.err == nil {
			continue
		}
		if errors.Is(res.err, context.Canceled) {
			continue
		}
		return res.err
	}
	return fallback
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
