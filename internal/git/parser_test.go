package git

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const twoCommitLog = `commit 9f1c2d3e4b5a69788796a5b4c3d2e1f001122334 (HEAD -> main)
Author: Ada Lovelace <ada@example.com>
Date:   Mon Jan 1 23:00:00 2024 +0000

    Add analytical engine notes

    Second paragraph with   trailing spaces

commit 1a2b3c4d5e6f708192a3b4c5d6e7f80910111213
Author: Ada Lovelace <ada@example.com>
Date:   Mon Jan 1 10:00:00 2024 +0000

    Initial commit
`

func TestSplitBlocks(t *testing.T) {
	tests := []struct {
		name     string
		log      string
		expected int
	}{
		{name: "Empty", log: "", expected: 0},
		{name: "Whitespace only", log: " \n\t\n", expected: 0},
		{name: "Two commits", log: twoCommitLog, expected: 2},
		{name: "Indented marker in message", log: "commit abc123\nAuthor: A <a@x>\nDate:   Mon Jan 1 10:00:00 2024 +0000\n\n    revert\n    commit def456 was wrong\n", expected: 1},
		{name: "Preamble becomes block", log: "garbage\ncommit abc123\n", expected: 2},
		{name: "Non hex token is not a marker", log: "commit abc123\n\ncommit xyz\n", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := SplitBlocks(tt.log)
			if len(blocks) != tt.expected {
				t.Fatalf("SplitBlocks() returned %d blocks, expected %d: %q", len(blocks), tt.expected, blocks)
			}
		})
	}
}

func TestParseLog_TwoCommitsSameDay(t *testing.T) {
	commits, err := ParseLog(twoCommitLog, "/src/engine")
	if err != nil {
		t.Fatalf("ParseLog: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("len(commits) = %d, expected 2", len(commits))
	}

	first := commits[0]
	if first.Hash != "9f1c2d3e4b5a69788796a5b4c3d2e1f001122334" {
		t.Errorf("Hash = %q", first.Hash)
	}
	if first.Author != "Ada Lovelace" {
		t.Errorf("Author = %q", first.Author)
	}
	if first.Email != "ada@example.com" {
		t.Errorf("Email = %q", first.Email)
	}
	if got := first.ISOTimestamp(); got != "2024-01-01T23:00:00Z" {
		t.Errorf("ISOTimestamp() = %q, expected 2024-01-01T23:00:00Z", got)
	}
	if first.SourceRepo != "/src/engine" {
		t.Errorf("SourceRepo = %q", first.SourceRepo)
	}
	wantMsg := "Add analytical engine notes" + MessageSeparator + "Second paragraph with   trailing spaces"
	if first.Message != wantMsg {
		t.Errorf("Message = %q, expected %q", first.Message, wantMsg)
	}

	if got := commits[1].ISOTimestamp(); got != "2024-01-01T10:00:00Z" {
		t.Errorf("second ISOTimestamp() = %q, expected 2024-01-01T10:00:00Z", got)
	}
	if commits[1].Message != "Initial commit" {
		t.Errorf("second Message = %q", commits[1].Message)
	}
}

func TestParseBlock_NormalizesToUTC(t *testing.T) {
	block := "commit abcdef\nAuthor: Bob <bob@example.com>\nDate:   Tue Mar 05 18:30:00 2024 +0530\n\n    msg\n"
	c, err := ParseBlock(block, "r", 0)
	if err != nil {
		t.Fatalf("ParseBlock: %v", err)
	}
	want := time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC)
	if !c.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, expected %v", c.Timestamp, want)
	}
	if c.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp location = %v, expected UTC", c.Timestamp.Location())
	}
}

func TestParseBlock_MergeCommitAndEmptyMessage(t *testing.T) {
	block := "commit abcdef\nMerge: 111 222\nAuthor: Bob <bob@example.com>\nDate:   Tue Mar 5 18:30:00 2024 +0000\n"
	c, err := ParseBlock(block, "r", 0)
	if err != nil {
		t.Fatalf("ParseBlock: %v", err)
	}
	if c.Message != "" {
		t.Errorf("Message = %q, expected empty", c.Message)
	}
}

func TestParseBlock_Errors(t *testing.T) {
	tests := []struct {
		name      string
		block     string
		field     string
		dateError bool
	}{
		{
			name:  "Missing commit line",
			block: "Author: A <a@example.com>\nDate:   Mon Jan 1 10:00:00 2024 +0000\n\n    msg\n",
			field: FieldHash,
		},
		{
			name:  "Missing author line",
			block: "commit abc123\nDate:   Mon Jan 1 10:00:00 2024 +0000\n\n    msg\n",
			field: FieldAuthor,
		},
		{
			name:  "Author only in message",
			block: "commit abc123\nDate:   Mon Jan 1 10:00:00 2024 +0000\n\n    Author: A <a@example.com>\n",
			field: FieldAuthor,
		},
		{
			name:  "Missing email",
			block: "commit abc123\nAuthor: A\nDate:   Mon Jan 1 10:00:00 2024 +0000\n\n    msg\n",
			field: FieldEmail,
		},
		{
			name:  "Empty author name",
			block: "commit abc123\nAuthor: <a@example.com>\nDate:   Mon Jan 1 10:00:00 2024 +0000\n\n    msg\n",
			field: FieldAuthor,
		},
		{
			name:  "Missing date line",
			block: "commit abc123\nAuthor: A <a@example.com>\n\n    msg\n",
			field: FieldDate,
		},
		{
			name:      "Bad date",
			block:     "commit abc123\nAuthor: A <a@example.com>\nDate:   2024-01-01 10:00:00 +0000\n\n    msg\n",
			dateError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseBlock(tt.block, "repo", 3)
			if c != nil {
				t.Fatalf("expected no commit, got %+v", c)
			}
			if tt.dateError {
				var dateErr *DateParseError
				if !errors.As(err, &dateErr) {
					t.Fatalf("expected DateParseError, got %v", err)
				}
				if !errors.Is(err, ErrDateParse) {
					t.Errorf("errors.Is(err, ErrDateParse) = false")
				}
				if dateErr.Block != 3 || dateErr.Repo != "repo" {
					t.Errorf("DateParseError = %+v", dateErr)
				}
				return
			}
			var malformed *MalformedCommitError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedCommitError, got %v", err)
			}
			if !errors.Is(err, ErrMalformedCommit) {
				t.Errorf("errors.Is(err, ErrMalformedCommit) = false")
			}
			if malformed.Field != tt.field {
				t.Errorf("Field = %q, expected %q", malformed.Field, tt.field)
			}
			if malformed.Block != 3 || malformed.Repo != "repo" {
				t.Errorf("MalformedCommitError = %+v", malformed)
			}
		})
	}
}

func TestParseLog_StrictStopsAtBadBlock(t *testing.T) {
	bad := strings.Replace(twoCommitLog, "Author: Ada Lovelace <ada@example.com>\nDate:   Mon Jan 1 10", "Date:   Mon Jan 1 10", 1)

	commits, err := ParseLog(bad, "r")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if commits != nil {
		t.Errorf("expected no commits on error, got %d", len(commits))
	}
	var malformed *MalformedCommitError
	if !errors.As(err, &malformed) || malformed.Block != 1 || malformed.Field != FieldAuthor {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseLogLenient_DropsBadBlock(t *testing.T) {
	bad := strings.Replace(twoCommitLog, "Author: Ada Lovelace <ada@example.com>\nDate:   Mon Jan 1 10", "Date:   Mon Jan 1 10", 1)

	commits, errs := ParseLogLenient(bad, "r")
	if len(commits) != 1 {
		t.Fatalf("len(commits) = %d, expected 1", len(commits))
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrMalformedCommit) {
		t.Fatalf("errs = %v, expected one malformed commit error", errs)
	}
}

func TestNewCommit_Validates(t *testing.T) {
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		hash   string
		author string
		email  string
		when   time.Time
		field  string
	}{
		{name: "Missing hash", author: "A", email: "a@x", when: when, field: FieldHash},
		{name: "Missing author", hash: "h", email: "a@x", when: when, field: FieldAuthor},
		{name: "Missing email", hash: "h", author: "A", when: when, field: FieldEmail},
		{name: "Missing date", hash: "h", author: "A", email: "a@x", field: FieldDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCommit(tt.hash, tt.author, tt.email, tt.when, "", "r")
			var malformed *MalformedCommitError
			if !errors.As(err, &malformed) || malformed.Field != tt.field {
				t.Fatalf("NewCommit() error = %v, expected missing %s", err, tt.field)
			}
		})
	}
}

func TestCommit_Helpers(t *testing.T) {
	c := &Commit{Hash: "0123456789abcdef", Email: "User@Example.Com", SourceRepo: "/home/me/work/api/"}
	if got := c.ShortHash(); got != "0123456" {
		t.Errorf("ShortHash() = %q", got)
	}
	if got := c.ContributorKey(); got != "user@example.com" {
		t.Errorf("ContributorKey() = %q", got)
	}
	if got := c.RepoName(); got != "api" {
		t.Errorf("RepoName() = %q", got)
	}
	if got := RepoName("."); got != "." {
		t.Errorf("RepoName(.) = %q", got)
	}
}
