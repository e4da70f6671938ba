package git

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GoGitFetcher reads history with go-git and renders it in the default
// git log format, so the same parser handles both backends.
type GoGitFetcher struct {
	opts FetchOptions
}

// NewGoGitFetcher creates a fetcher that does not need a git executable.
func NewGoGitFetcher(opts FetchOptions) *GoGitFetcher {
	return &GoGitFetcher{opts: opts}
}

// Fetch walks the history of repoPath newest first.
func (f *GoGitFetcher) Fetch(ctx context.Context, repoPath string) (string, error) {
	if err := checkRepoDir(repoPath); err != nil {
		return "", err
	}

	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", &FetchError{Repo: repoPath, Reason: FetchNotRepository, Err: err}
	}

	from, err := f.startHash(repo)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// Repository without commits.
		return "", nil
	}
	if err != nil {
		return "", &FetchError{Repo: repoPath, Reason: FetchCommandFailed, Err: err}
	}

	cIter, err := repo.Log(&git.LogOptions{From: from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return "", &FetchError{Repo: repoPath, Reason: FetchCommandFailed, Err: err}
	}

	var b strings.Builder
	count := 0
	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.opts.MaxCount > 0 && count >= f.opts.MaxCount {
			return storer.ErrStop
		}
		if count > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatLogEntry(c.Hash.String(), c.Author.Name, c.Author.Email, c.Author.When, c.Message))
		count++
		return nil
	})
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "", &FetchError{Repo: repoPath, Reason: FetchTimeout, Err: err}
	case err != nil:
		return "", &FetchError{Repo: repoPath, Reason: FetchCommandFailed, Err: err}
	}

	return b.String(), nil
}

func (f *GoGitFetcher) startHash(repo *git.Repository) (plumbing.Hash, error) {
	rev := strings.TrimSpace(f.opts.Revision)
	if rev == "" || strings.EqualFold(rev, "HEAD") {
		ref, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return ref.Hash(), nil
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return *hash, nil
}

// FormatLogEntry renders one commit the way `git log` prints it by default.
func FormatLogEntry(hash, name, email string, when time.Time, message string) string {
	var b strings.Builder
	b.WriteString(commitPrefix)
	b.WriteString(hash)
	b.WriteString("\nAuthor: ")
	b.WriteString(name)
	b.WriteString(" <")
	b.WriteString(email)
	b.WriteString(">\nDate:   ")
	b.WriteString(when.Format(LogDateLayout))
	b.WriteString("\n\n")
	for _, line := range strings.Split(strings.TrimRight(message, "\n"), "\n") {
		if line != "" {
			b.WriteString("    ")
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
