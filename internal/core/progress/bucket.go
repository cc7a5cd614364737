// Package progress holds the pure computations behind commitments, streaks and
// levels. Nothing here performs I/O or reads the wall clock: "now" and "today"
// are always passed in, so identical inputs give identical outputs.
package progress

import (
	"time"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

// Bucketize splits dates into weekCount week-long buckets. Week i covers
// [weekStart+7i, weekStart+7i+6]; dates outside the window are dropped.
func Bucketize(dates []time.Time, weekStart time.Time, weekCount int) [][]time.Time {
	if weekCount <= 0 {
		return [][]time.Time{}
	}

	buckets := make([][]time.Time, weekCount)
	for i := range buckets {
		buckets[i] = []time.Time{}
	}

	start := domain.Day(weekStart)
	for _, d := range dates {
		offset := domain.DaysBetween(start, d)
		if offset < 0 || offset >= 7*weekCount {
			continue
		}
		buckets[offset/7] = append(buckets[offset/7], domain.Day(d))
	}

	return buckets
}

// Satisfied reports whether a bucket reaches the weekly target. Same-day
// records count individually.
func Satisfied(bucket []time.Time, target int) bool {
	return len(bucket) >= target
}

// CountBetween counts dates with from <= date <= to, duplicates included.
func CountBetween(dates []time.Time, from, to time.Time) int {
	from, to = domain.Day(from), domain.Day(to)

	n := 0
	for _, d := range dates {
		d = domain.Day(d)
		if !d.Before(from) && !d.After(to) {
			n++
		}
	}
	return n
}

// DailyCounts returns one counter per day starting at start.
func DailyCounts(dates []time.Time, start time.Time, days int) []int {
	counts := make([]int, days)
	start = domain.Day(start)

	for _, d := range dates {
		offset := domain.DaysBetween(start, d)
		if offset >= 0 && offset < days {
			counts[offset]++
		}
	}
	return counts
}
