package aggregation

import (
	"testing"
	"time"

	"github.com/masmgr/commitline/internal/git"
	"github.com/masmgr/commitline/internal/timeline"
)

func commit(t *testing.T, hash, author, email, repo string, when time.Time) *git.Commit {
	t.Helper()
	c, err := git.NewCommit(hash, author, email, when, "msg", repo)
	if err != nil {
		t.Fatalf("NewCommit: %v", err)
	}
	return c
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	commits := []*git.Commit{
		commit(t, "a1", "Ann", "ann@example.com", "/work/api", now.Add(-1*time.Hour)),
		commit(t, "a2", "Ann Smith", "ANN@example.com", "/work/api", now.Add(-30*time.Hour)),
		commit(t, "b1", "Bob", "bob@example.com", "/work/web", now.Add(-2*time.Hour)),
		commit(t, "c1", "Cid", "cid@example.com", "/work/web/", now.Add(-3*time.Hour)),
		commit(t, "z1", "Zed", "zed@example.com", "/work/zoo", now.Add(-4*time.Hour)),
	}
	days := timeline.NewBuilder(timeline.DefaultWindow, time.UTC).Build(commits, now)

	s := Summarize(days)

	if s.TotalCommits != 5 {
		t.Errorf("TotalCommits = %d, expected 5", s.TotalCommits)
	}
	if s.Days != 2 {
		t.Errorf("Days = %d, expected 2", s.Days)
	}

	// "/work/web" and "/work/web/" are distinct sources with the same name.
	if len(s.Repos) != 4 {
		t.Fatalf("len(Repos) = %d, expected 4", len(s.Repos))
	}
	if s.Repos[0].Name != "api" || s.Repos[0].Commits != 2 {
		t.Errorf("Repos[0] = %+v, expected api with 2 commits", s.Repos[0])
	}
	if s.Repos[0].Peak.Commits != 1 || s.Repos[0].Peak.Total != 2 {
		t.Errorf("Repos[0].Peak = %+v, expected 1 of 2 commits in the busiest day", s.Repos[0].Peak)
	}
	if !s.Repos[0].Peak.Start.Equal(now.Add(-30 * time.Hour)) {
		t.Errorf("Repos[0].Peak.Start = %v", s.Repos[0].Peak.Start)
	}
	if s.Repos[3].Name != "zoo" {
		t.Errorf("Repos[3] = %+v, expected zoo last", s.Repos[3])
	}

	if len(s.Authors) != 4 {
		t.Fatalf("len(Authors) = %d, expected 4", len(s.Authors))
	}
	if s.Authors[0].Name != "Ann" || s.Authors[0].Commits != 2 {
		t.Errorf("Authors[0] = %+v, expected Ann (newest name) with 2 commits", s.Authors[0])
	}
	if s.Authors[1].Name != "Bob" {
		t.Errorf("Authors[1] = %+v, expected Bob", s.Authors[1])
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalCommits != 0 || s.Days != 0 || len(s.Repos) != 0 || len(s.Authors) != 0 {
		t.Errorf("Summarize(nil) = %+v, expected zero summary", s)
	}
}
