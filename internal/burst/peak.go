// Package burst measures how densely commits cluster in time.
package burst

import (
	"sort"
	"time"
)

// DefaultWindow is the span used to find the densest stretch of activity.
const DefaultWindow = 24 * time.Hour

// Peak describes the densest window of a commit series.
type Peak struct {
	Start   time.Time // timestamp of the first commit in the window
	Commits int       // commits inside the window
	Total   int       // commits in the whole series
}

// Score returns the share of all commits that fall in the peak window, in [0, 1].
func (p Peak) Score() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Commits) / float64(p.Total)
}

// Calculator finds peak activity using a sliding window.
type Calculator struct {
	window time.Duration
}

// NewCalculator creates a calculator with the given window; a window <= 0
// means DefaultWindow.
func NewCalculator(window time.Duration) *Calculator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Calculator{window: window}
}

// Window returns the sliding window span.
func (c *Calculator) Window() time.Duration {
	return c.window
}

// Peak returns the window holding the most commits. Ties keep the earliest
// window. The input is not modified and may be in any order.
func (c *Calculator) Peak(commitTimes []time.Time) Peak {
	if len(commitTimes) == 0 {
		return Peak{}
	}

	times := make([]time.Time, len(commitTimes))
	copy(times, commitTimes)

	// Merged histories arrive newest first; reversing is O(n).
	if !isSortedAscending(times) {
		if isSortedDescending(times) {
			reverse(times)
		} else {
			sort.Slice(times, func(i, j int) bool {
				return times[i].Before(times[j])
			})
		}
	}

	best := Peak{Start: times[0], Commits: 1, Total: len(times)}

	// Two-pointer sliding window: O(n)
	left := 0
	for right := 0; right < len(times); right++ {
		for times[right].Sub(times[left]) > c.window {
			left++
		}
		if count := right - left + 1; count > best.Commits {
			best.Commits = count
			best.Start = times[left]
		}
	}
	return best
}

func isSortedAscending(times []time.Time) bool {
	for i := 1; i < len(times); i++ {
		if times[i].Before(times[i-1]) {
			return false
		}
	}
	return true
}

func isSortedDescending(times []time.Time) bool {
	for i := 1; i < len(times); i++ {
		if times[i].After(times[i-1]) {
			return false
		}
	}
	return true
}

func reverse(times []time.Time) {
	for i, j := 0, len(times)-1; i < j; i, j = i+1, j-1 {
		times[i], times[j] = times[j], times[i]
	}
}
