package progress

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

func weeksBetween(start, now time.Time) int {
	days := domain.DaysBetween(start, now)
	if days < 0 {
		return (days - 6) / 7
	}
	return days / 7
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Progress scores a commitment against activity records as of now.
//
// Only weeks up to the current one are evaluated, but the percentage is taken
// over the full declared duration: weeks not reached yet count as failures.
// ThisWeekCount uses the Monday-aligned calendar week containing now, which can
// differ from the commitment's own current week when StartDate is not a Monday.
func Progress(c domain.Commitment, records []*domain.ActivityRecord, now time.Time) domain.CommitmentProgress {
	p := domain.CommitmentProgress{
		CommitmentID:  c.ID,
		Kind:          c.Kind,
		TargetPerWeek: c.TargetPerWeek,
		TotalWeeks:    c.DurationWeeks,
		WeeklyResults: []bool{},
		Weeks:         []domain.WeekResult{},
	}
	if c.DurationWeeks <= 0 {
		return p
	}

	today := domain.Day(now)
	dates := domain.Dates(domain.FilterByKind(records, c.Kind))

	p.CurrentWeek = clamp(weeksBetween(c.StartDate, today)+1, 1, c.DurationWeeks)

	satisfied := 0
	for i, bucket := range Bucketize(dates, c.StartDate, p.CurrentWeek) {
		ok := Satisfied(bucket, c.TargetPerWeek)
		if ok {
			satisfied++
		}
		p.WeeklyResults = append(p.WeeklyResults, ok)
		p.Weeks = append(p.Weeks, domain.WeekResult{WeekIndex: i, Count: len(bucket), Satisfied: ok})
	}

	weekStart := domain.StartOfWeek(today)
	p.ThisWeekCount = CountBetween(dates, weekStart, weekStart.AddDate(0, 0, 6))
	p.OverallProgress = int(math.Round(100 * float64(satisfied) / float64(c.DurationWeeks)))

	return p
}

// ProgressBatch evaluates many commitments against records already grouped by
// kind, so callers fetch each kind once regardless of how many commitments share it.
func ProgressBatch(commitments []*domain.Commitment, recordsByKind map[domain.ActivityKind][]*domain.ActivityRecord, now time.Time) []domain.CommitmentProgress {
	out := make([]domain.CommitmentProgress, 0, len(commitments))
	for _, c := range commitments {
		out = append(out, Progress(*c, recordsByKind[c.Kind], now))
	}
	return out
}
