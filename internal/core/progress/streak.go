package progress

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

const secondsPerDay = 24 * 60 * 60

func dayNumber(t time.Time) int64 {
	return domain.Day(t).Unix() / secondsPerDay
}

// Streak computes the trailing run of consecutive active days and the longest
// run in the whole history. Same-day duplicates collapse into one day.
//
// The trailing run is anchored at today when today is active, otherwise at
// yesterday, so a streak survives until the end of the day after the last activity.
func Streak(activeDates []time.Time, today time.Time) domain.StreakState {
	if len(activeDates) == 0 {
		return domain.StreakState{}
	}

	days := make(map[int64]struct{}, len(activeDates))
	for _, d := range activeDates {
		days[dayNumber(d)] = struct{}{}
	}

	anchor := dayNumber(today)
	if _, ok := days[anchor]; !ok {
		anchor--
	}

	current := 0
	for d := anchor; ; d-- {
		if _, ok := days[d]; !ok {
			break
		}
		current++
	}

	sorted := make([]int64, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return domain.StreakState{
		Current: current,
		Longest: max(longest, current),
	}
}
