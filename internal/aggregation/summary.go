// Package aggregation summarizes timeline activity per repository and author.
package aggregation

import (
	"sort"
	"strings"
	"time"

	"github.com/masmgr/commitline/internal/burst"
	"github.com/masmgr/commitline/internal/timeline"
)

// RepoActivity counts the commits of one repository.
type RepoActivity struct {
	Repo    string
	Name    string
	Commits int
	// Peak is the busiest 24-hour stretch of the repository.
	Peak burst.Peak

	times []time.Time
}

// AuthorActivity counts the commits of one contributor.
type AuthorActivity struct {
	Name    string
	Email   string
	Commits int
}

// Summary aggregates a timeline.
type Summary struct {
	TotalCommits int
	Days         int
	Repos        []RepoActivity
	Authors      []AuthorActivity
}

// Summarize counts commits per repository and per contributor. Contributors
// are grouped by lower-cased email; the name of their newest commit is kept.
// Both lists are ordered by commit count descending, then by name. Each
// repository also records its peak activity window.
func Summarize(days []timeline.Day) Summary {
	s := Summary{Days: len(days)}

	repoIdx := make(map[string]int)
	authorIdx := make(map[string]int)

	for _, day := range days {
		for _, c := range day.Commits {
			s.TotalCommits++

			i, ok := repoIdx[c.SourceRepo]
			if !ok {
				i = len(s.Repos)
				repoIdx[c.SourceRepo] = i
				s.Repos = append(s.Repos, RepoActivity{Repo: c.SourceRepo, Name: c.RepoName()})
			}
			s.Repos[i].Commits++
			s.Repos[i].times = append(s.Repos[i].times, c.Timestamp)

			key := c.ContributorKey()
			j, ok := authorIdx[key]
			if !ok {
				j = len(s.Authors)
				authorIdx[key] = j
				s.Authors = append(s.Authors, AuthorActivity{Name: c.Author, Email: c.Email})
			}
			s.Authors[j].Commits++
		}
	}

	calc := burst.NewCalculator(burst.DefaultWindow)
	for i := range s.Repos {
		s.Repos[i].Peak = calc.Peak(s.Repos[i].times)
		s.Repos[i].times = nil
	}

	sort.SliceStable(s.Repos, func(i, j int) bool {
		if s.Repos[i].Commits != s.Repos[j].Commits {
			return s.Repos[i].Commits > s.Repos[j].Commits
		}
		return s.Repos[i].Name < s.Repos[j].Name
	})
	sort.SliceStable(s.Authors, func(i, j int) bool {
		if s.Authors[i].Commits != s.Authors[j].Commits {
			return s.Authors[i].Commits > s.Authors[j].Commits
		}
		return strings.ToLower(s.Authors[i].Name) < strings.ToLower(s.Authors[j].Name)
	})

	return s
}
