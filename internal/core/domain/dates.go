package domain

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

// Day returns the calendar date of t as UTC midnight. The date is read in t's
// own location, so callers convert to the user's zone before calling it.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a calendar date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func FormatDay(t time.Time) string {
	return Day(t).Format(DayLayout)
}

// DaysBetween counts calendar days from a to b. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// StartOfWeek returns the Monday of the calendar week containing t.
func StartOfWeek(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// Today returns the current calendar date in loc (UTC when loc is nil).
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Day(now.In(loc))
}
