package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidActivityKind = errors.New("invalid activity kind (must be workout, checkin or meal)")
	ErrInvalidDate         = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrNotesTooLong        = errors.New("notes are too long (max 500 chars)")
	ErrUnauthorized        = errors.New("unauthorized access to resource")
)

const MaxNotesLen = 500

// ActivityKind can be one of:
//   - workout
//   - checkin (gym check-in)
//   - meal
type ActivityKind string

const (
	ActivityWorkout ActivityKind = "workout"
	ActivityCheckin ActivityKind = "checkin"
	ActivityMeal    ActivityKind = "meal"
)

var ActivityKinds = []ActivityKind{ActivityWorkout, ActivityCheckin, ActivityMeal}

func (k ActivityKind) String() string {
	return string(k)
}

func (k ActivityKind) IsValid() bool {
	switch k {
	case ActivityWorkout, ActivityCheckin, ActivityMeal:
		return true
	default:
		return false
	}
}

func ParseActivityKind(s string) (ActivityKind, error) {
	k := ActivityKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", ErrInvalidActivityKind
	}
	return k, nil
}

// ActivityRecord is an immutable, date-stamped fact. Several records may share
// the same calendar date.
type ActivityRecord struct {
	ID        string       `json:"id" db:"id"`
	UserID    string       `json:"user_id" db:"user_id"`
	Kind      ActivityKind `json:"kind" db:"kind"`
	Date      time.Time    `json:"date" db:"activity_date"`
	Notes     string       `json:"notes" db:"notes"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

func NewActivityRecord(userID string, kind ActivityKind, date time.Time, notes string) (*ActivityRecord, error) {
	rec := &ActivityRecord{
		UserID:    userID,
		Kind:      kind,
		Date:      Day(date),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: time.Now().UTC(),
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *ActivityRecord) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return ErrInvalidUserID
	}
	if !r.Kind.IsValid() {
		return ErrInvalidActivityKind
	}
	if r.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(r.Notes) > MaxNotesLen {
		return ErrNotesTooLong
	}
	return nil
}

// Dates extracts the calendar dates of records, keeping duplicates.
func Dates(records []*ActivityRecord) []time.Time {
	out := make([]time.Time, 0, len(records))
	for _, r := range records {
		out = append(out, Day(r.Date))
	}
	return out
}

// DatesUntil is Dates restricted to records on or before last.
func DatesUntil(records []*ActivityRecord, last time.Time) []time.Time {
	last = Day(last)
	out := make([]time.Time, 0, len(records))
	for _, r := range records {
		if d := Day(r.Date); !d.After(last) {
			out = append(out, d)
		}
	}
	return out
}

// FilterByKind keeps the records of a single kind.
func FilterByKind(records []*ActivityRecord, kind ActivityKind) []*ActivityRecord {
	out := make([]*ActivityRecord, 0, len(records))
	for _, r := range records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
