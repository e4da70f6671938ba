package git

import (
	"path/filepath"
	"strings"
	"time"
)

// ISOLayout is the UTC timestamp layout exposed to report consumers.
const ISOLayout = "2006-01-02T15:04:05Z"

// Commit represents one change set parsed from a history log.
// A Commit is immutable once constructed; it is shared by pointer between
// the merged commit list and the timeline buckets built from it.
type Commit struct {
	Hash       string
	Author     string
	Email      string
	Timestamp  time.Time // always UTC
	Message    string
	SourceRepo string // repository the commit was read from
}

// NewCommit validates the required fields and returns a Commit whose
// timestamp is normalized to UTC. A missing field yields a *MalformedCommitError.
func NewCommit(hash, author, email string, when time.Time, message, sourceRepo string) (*Commit, error) {
	switch {
	case hash == "":
		return nil, &MalformedCommitError{Repo: sourceRepo, Block: -1, Field: FieldHash}
	case author == "":
		return nil, &MalformedCommitError{Repo: sourceRepo, Block: -1, Field: FieldAuthor}
	case email == "":
		return nil, &MalformedCommitError{Repo: sourceRepo, Block: -1, Field: FieldEmail}
	case when.IsZero():
		return nil, &MalformedCommitError{Repo: sourceRepo, Block: -1, Field: FieldDate}
	}

	return &Commit{
		Hash:       hash,
		Author:     author,
		Email:      email,
		Timestamp:  when.UTC(),
		Message:    message,
		SourceRepo: sourceRepo,
	}, nil
}

// ContributorKey returns a normalized identifier for grouping contributors.
func (c *Commit) ContributorKey() string {
	return strings.ToLower(c.Email)
}

// ShortHash returns the abbreviated commit hash.
func (c *Commit) ShortHash() string {
	if len(c.Hash) <= 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// ISOTimestamp returns the commit time as a UTC ISO-8601 string.
func (c *Commit) ISOTimestamp() string {
	return c.Timestamp.UTC().Format(ISOLayout)
}

// RepoName returns the last path component of the source repository.
func (c *Commit) RepoName() string {
	return RepoName(c.SourceRepo)
}

// RepoName returns a short display name for a repository path.
func RepoName(repoPath string) string {
	trimmed := strings.TrimRight(filepath.ToSlash(repoPath), "/")
	if trimmed == "" {
		return repoPath
	}
	if idx := strings.LastIndexByte(trimmed, '/'); idx != -1 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// FetchBackend selects how raw history logs are obtained.
type FetchBackend string

const (
	BackendGitCLI FetchBackend = "gitcli"
	BackendGoGit  FetchBackend = "gogit"
)

// FetchOptions configures a LogFetcher.
type FetchOptions struct {
	GitBinary string        // executable used by the CLI backend (default "git")
	Timeout   time.Duration // per-repository bound on the fetch; zero disables it
	Revision  string        // revision to start from; empty means HEAD
	MaxCount  int           // limit on commits read; zero means unlimited
}
