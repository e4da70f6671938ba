package git

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// LogDateLayout is the date format of the default git log output, e.g.
// "Mon Jan 1 10:00:00 2024 +0000". Zero-padded days are accepted as well.
const LogDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// MessageSeparator joins the lines of a multi-line commit message.
const MessageSeparator = "\n    "

const (
	commitPrefix = "commit "
	authorPrefix = "Author:"
	datePrefix   = "Date:"
)

var commitMarker = regexp.MustCompile(`(?m)^commit [0-9a-f]+\b`)

// SplitBlocks splits a raw history log into commit blocks. A block starts at
// each line beginning with "commit <hex>" and runs up to the next marker.
// Text before the first marker forms its own block. Blank blocks are dropped.
func SplitBlocks(rawLog string) []string {
	starts := commitMarker.FindAllStringIndex(rawLog, -1)

	bounds := make([]int, 0, len(starts)+2)
	bounds = append(bounds, 0)
	for _, loc := range starts {
		if loc[0] != 0 {
			bounds = append(bounds, loc[0])
		}
	}
	bounds = append(bounds, len(rawLog))

	blocks := make([]string, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		block := rawLog[bounds[i]:bounds[i+1]]
		if strings.TrimSpace(block) == "" {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// ParseLog parses every commit block of rawLog and stamps each commit with
// repoID. The first block that fails to parse aborts the whole log.
func ParseLog(rawLog, repoID string) ([]*Commit, error) {
	blocks := SplitBlocks(rawLog)
	commits := make([]*Commit, 0, len(blocks))
	for i, block := range blocks {
		c, err := ParseBlock(block, repoID, i)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// ParseLogLenient parses rawLog like ParseLog but keeps going past bad
// blocks. It returns the commits that parsed and one error per rejected block.
func ParseLogLenient(rawLog, repoID string) ([]*Commit, []error) {
	blocks := SplitBlocks(rawLog)
	commits := make([]*Commit, 0, len(blocks))
	var errs []error
	for i, block := range blocks {
		c, err := ParseBlock(block, repoID, i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		commits = append(commits, c)
	}
	return commits, errs
}

// ParseBlock parses a single commit block. index identifies the block in
// error values.
func ParseBlock(block, repoID string, index int) (*Commit, error) {
	header, body := splitHeaderBody(block)

	commitLine, ok := findLine(header, commitPrefix)
	if !ok {
		return nil, &MalformedCommitError{Repo: repoID, Block: index, Field: FieldHash}
	}
	fields := strings.Fields(commitLine)
	if len(fields) == 0 {
		return nil, &MalformedCommitError{Repo: repoID, Block: index, Field: FieldHash}
	}
	hash := fields[0]

	authorLine, ok := findLine(header, authorPrefix)
	if !ok {
		return nil, &MalformedCommitError{Repo: repoID, Block: index, Field: FieldAuthor}
	}
	author, email, field := splitAuthorEmail(authorLine)
	if field != "" {
		return nil, &MalformedCommitError{Repo: repoID, Block: index, Field: field}
	}

	dateLine, ok := findLine(header, datePrefix)
	if !ok {
		return nil, &MalformedCommitError{Repo: repoID, Block: index, Field: FieldDate}
	}
	when, err := time.Parse(LogDateLayout, dateLine)
	if err != nil {
		return nil, &DateParseError{Repo: repoID, Block: index, Value: dateLine, Err: err}
	}

	c, err := NewCommit(hash, author, email, when, joinMessage(body), repoID)
	if err != nil {
		var malformed *MalformedCommitError
		if errors.As(err, &malformed) {
			malformed.Block = index
		}
		return nil, err
	}
	return c, nil
}

// splitHeaderBody separates the unindented header lines from the body, which
// starts at the first non-blank indented line.
func splitHeaderBody(block string) (header []string, body []string) {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if isBodyLine(line) {
			return lines[:i], lines[i:]
		}
	}
	return lines, nil
}

func isBodyLine(line string) bool {
	if line == "" || (line[0] != ' ' && line[0] != '\t') {
		return false
	}
	return strings.TrimSpace(line) != ""
}

// findLine returns the trimmed remainder of the first header line that
// starts with prefix.
func findLine(header []string, prefix string) (string, bool) {
	for _, line := range header {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return "", false
}

// splitAuthorEmail splits "Name <email>" and reports the missing field, if any.
func splitAuthorEmail(line string) (author, email, missing string) {
	open := strings.IndexByte(line, '<')
	end := strings.IndexByte(line, '>')
	if open == -1 || end == -1 || end < open {
		return "", "", FieldEmail
	}
	author = strings.TrimSpace(line[:open])
	email = strings.TrimSpace(line[open+1 : end])
	switch {
	case author == "":
		return "", "", FieldAuthor
	case email == "":
		return "", "", FieldEmail
	}
	return author, email, ""
}

func joinMessage(body []string) string {
	lines := make([]string, 0, len(body))
	for _, line := range body {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, MessageSeparator)
}
