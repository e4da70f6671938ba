package git

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is. Structured details are available
// through errors.As on the concrete types below.
var (
	ErrFetch           = errors.New("fetch history")
	ErrMalformedCommit = errors.New("malformed commit")
	ErrDateParse       = errors.New("invalid commit date")
)

// Required commit header fields.
const (
	FieldHash   = "commit"
	FieldAuthor = "Author"
	FieldEmail  = "email"
	FieldDate   = "Date"
)

// FetchReason classifies why a history fetch failed.
type FetchReason string

const (
	FetchNotRepository      FetchReason = "not-repository"
	FetchCommandUnavailable FetchReason = "command-unavailable"
	FetchCommandFailed      FetchReason = "command-failed"
	FetchTimeout            FetchReason = "timeout"
)

// FetchError reports a failure to obtain the raw history of a repository.
type FetchError struct {
	Repo   string
	Reason FetchReason
	Stderr string
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s: %s", e.Repo, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// MalformedCommitError reports a commit block missing a required header line.
// Block is the zero-based index of the block within the log, or -1 when the
// commit was not built from a log block.
type MalformedCommitError struct {
	Repo  string
	Block int
	Field string
}

func (e *MalformedCommitError) Error() string {
	if e.Block < 0 {
		return fmt.Sprintf("malformed commit in %s: missing %s", e.Repo, e.Field)
	}
	return fmt.Sprintf("malformed commit in %s (block %d): missing %s", e.Repo, e.Block, e.Field)
}

func (e *MalformedCommitError) Is(target error) bool { return target == ErrMalformedCommit }

// DateParseError reports a Date: line that does not match the log date layout.
type DateParseError struct {
	Repo  string
	Block int
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid commit date in %s (block %d): %q: %v", e.Repo, e.Block, e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

func (e *DateParseError) Is(target error) bool { return target == ErrDateParse }
