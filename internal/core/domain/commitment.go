package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrInvalidTarget      = errors.New("target per week must be between 1 and 50")
	ErrInvalidDuration    = errors.New("duration must be between 1 and 52 weeks")
	ErrCommitmentNotFound = errors.New("commitment not found")
	ErrCommitmentInactive = errors.New("commitment is no longer active")
)

const (
	MaxTargetPerWeek = 50
	MaxDurationWeeks = 52
)

// Commitment is a user-declared weekly goal, e.g. "3 workouts a week for 4 weeks".
// It is immutable after creation apart from soft deactivation.
type Commitment struct {
	ID            string       `json:"id" db:"id"`
	UserID        string       `json:"user_id" db:"user_id"`
	Kind          ActivityKind `json:"kind" db:"kind"`
	TargetPerWeek int          `json:"target_per_week" db:"target_per_week"`
	DurationWeeks int          `json:"duration_weeks" db:"duration_weeks"`
	StartDate     time.Time    `json:"start_date" db:"start_date"`
	Active        bool         `json:"active" db:"is_active"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
	DeactivatedAt *time.Time   `json:"deactivated_at,omitempty" db:"deactivated_at"`
}

func validateCommitment(kind ActivityKind, target, duration int) error {
	if !kind.IsValid() {
		return ErrInvalidActivityKind
	}
	if target <= 0 || target > MaxTargetPerWeek {
		return ErrInvalidTarget
	}
	if duration <= 0 || duration > MaxDurationWeeks {
		return ErrInvalidDuration
	}
	return nil
}

// NewCommitment validates the goal and aligns startDate to the Monday of its week.
func NewCommitment(userID string, kind ActivityKind, targetPerWeek, durationWeeks int, startDate time.Time) (*Commitment, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if err := validateCommitment(kind, targetPerWeek, durationWeeks); err != nil {
		return nil, err
	}
	if startDate.IsZero() {
		return nil, ErrInvalidDate
	}

	now := time.Now().UTC()

	return &Commitment{
		ID:            uuid.New().String(),
		UserID:        userID,
		Kind:          kind,
		TargetPerWeek: targetPerWeek,
		DurationWeeks: durationWeeks,
		StartDate:     StartOfWeek(startDate),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Validate re-checks a commitment loaded from storage before it reaches the engine.
func (c *Commitment) Validate() error {
	if c.UserID == "" {
		return ErrInvalidUserID
	}
	return validateCommitment(c.Kind, c.TargetPerWeek, c.DurationWeeks)
}

// EndDate is the last calendar day covered by the commitment.
func (c *Commitment) EndDate() time.Time {
	return Day(c.StartDate).AddDate(0, 0, 7*c.DurationWeeks-1)
}

func (c *Commitment) Deactivate() {
	if !c.Active {
		return
	}

	now := time.Now().UTC()
	c.Active = false
	c.DeactivatedAt = &now
	c.UpdatedAt = now
}
