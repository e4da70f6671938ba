package burst

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// --- Generators ---

func genCommitTimes() *rapid.Generator[[]time.Time] {
	return rapid.Custom(func(t *rapid.T) []time.Time {
		count := rapid.IntRange(0, 100).Draw(t, "count")
		times := make([]time.Time, count)
		for i := 0; i < count; i++ {
			dayOffset := rapid.IntRange(0, 60).Draw(t, fmt.Sprintf("day%d", i))
			hourOffset := rapid.IntRange(0, 23).Draw(t, fmt.Sprintf("hour%d", i))
			times[i] = base.Add(time.Duration(dayOffset)*24*time.Hour + time.Duration(hourOffset)*time.Hour)
		}
		return times
	})
}

func genWindow() *rapid.Generator[time.Duration] {
	return rapid.Custom(func(t *rapid.T) time.Duration {
		return time.Duration(rapid.IntRange(1, 14*24).Draw(t, "windowHours")) * time.Hour
	})
}

// --- Property Tests ---

func TestRapidPeak_ScoreBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		times := genCommitTimes().Draw(t, "times")
		p := NewCalculator(genWindow().Draw(t, "window")).Peak(times)

		if s := p.Score(); s < 0.0 || s > 1.0 {
			t.Fatalf("Score() = %f, expected in [0,1]", s)
		}
		if p.Total != len(times) {
			t.Fatalf("Total = %d, expected %d", p.Total, len(times))
		}
		if len(times) > 0 && (p.Commits < 1 || p.Commits > len(times)) {
			t.Fatalf("Commits = %d out of range", p.Commits)
		}
	})
}

func TestRapidPeak_SortOrderInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		times := genCommitTimes().Draw(t, "times")
		calc := NewCalculator(genWindow().Draw(t, "window"))

		reversed := make([]time.Time, len(times))
		for i, ts := range times {
			reversed[len(times)-1-i] = ts
		}

		if a, b := calc.Peak(times).Commits, calc.Peak(reversed).Commits; a != b {
			t.Fatalf("Peak depends on input order: %d vs %d", a, b)
		}
	})
}

func TestRapidPeak_MatchesBruteForce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		times := genCommitTimes().Draw(t, "times")
		window := genWindow().Draw(t, "window")

		want := 0
		for _, start := range times {
			n := 0
			for _, ts := range times {
				if !ts.Before(start) && ts.Sub(start) <= window {
					n++
				}
			}
			if n > want {
				want = n
			}
		}

		if got := NewCalculator(window).Peak(times).Commits; got != want {
			t.Fatalf("Peak().Commits = %d, brute force %d", got, want)
		}
	})
}

func TestRapidPeak_WiderWindowNeverSmaller(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		times := genCommitTimes().Draw(t, "times")
		narrow := genWindow().Draw(t, "window")

		a := NewCalculator(narrow).Peak(times).Commits
		b := NewCalculator(2 * narrow).Peak(times).Commits
		if b < a {
			t.Fatalf("wider window found fewer commits: %d < %d", b, a)
		}
	})
}
