// Package timeline groups commits into recency-filtered calendar days.
package timeline

import (
	"sort"
	"time"

	"github.com/masmgr/commitline/internal/git"
)

// DefaultWindow is the recency window used when none is configured.
const DefaultWindow = 7 * 24 * time.Hour

const (
	dayKeyLayout   = "2006-01-02"
	dayLabelLayout = "Mon Jan 02"
)

// Day is a bucket of commits sharing one calendar day.
type Day struct {
	// Date is the timestamp of the newest commit in the bucket.
	Date time.Time
	// Key is the calendar day (YYYY-MM-DD) in the builder's location.
	Key string
	// Commits is non-empty and ordered newest first.
	Commits []*git.Commit

	loc *time.Location
}

// Label returns the day formatted for display, e.g. "Mon Jan 01".
func (d Day) Label() string {
	return d.Date.In(d.location()).Format(dayLabelLayout)
}

// Location returns the timezone used to bucket and display the day.
func (d Day) Location() *time.Location {
	return d.location()
}

func (d Day) location() *time.Location {
	if d.loc == nil {
		return time.UTC
	}
	return d.loc
}

// Builder builds day-grouped timelines. The same location is used for
// bucketing and display so a commit never changes day between the two.
type Builder struct {
	window time.Duration
	loc    *time.Location
}

// NewBuilder creates a builder keeping commits newer than window.
// A window <= 0 keeps every commit; a nil location means UTC.
func NewBuilder(window time.Duration, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{window: window, loc: loc}
}

// Window returns the recency window.
func (b *Builder) Window() time.Duration {
	return b.window
}

// Location returns the bucketing timezone.
func (b *Builder) Location() *time.Location {
	return b.loc
}

// Build sorts commits newest first, drops those older than now-window and
// groups the rest by calendar day, newest day first. The input slice is not
// modified. A zero now means the current time.
func (b *Builder) Build(commits []*git.Commit, now time.Time) []Day {
	if now.IsZero() {
		now = time.Now()
	}

	sorted := SortNewestFirst(commits)

	if b.window > 0 {
		cutoff := now.Add(-b.window)
		// The first commit strictly older than cutoff; len(sorted) when
		// every commit is inside the window.
		idx := sort.Search(len(sorted), func(i int) bool {
			return sorted[i].Timestamp.Before(cutoff)
		})
		sorted = sorted[:idx]
	}

	var days []Day
	index := make(map[string]int)
	for _, c := range sorted {
		key := c.Timestamp.In(b.loc).Format(dayKeyLayout)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, Day{Date: c.Timestamp, Key: key, loc: b.loc})
		}
		days[i].Commits = append(days[i].Commits, c)
	}
	return days
}

// SortNewestFirst returns a copy of commits ordered by timestamp descending.
// Commits with equal timestamps keep their input order.
func SortNewestFirst(commits []*git.Commit) []*git.Commit {
	sorted := make([]*git.Commit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted
}

// CommitCount returns the number of commits across days.
func CommitCount(days []Day) int {
	n := 0
	for _, d := range days {
		n += len(d.Commits)
	}
	return n
}
