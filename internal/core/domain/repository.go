package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type ActivityRepository interface {
	// Create persists a new record and assigns its ID when empty.
	Create(ctx context.Context, record *ActivityRecord) error

	GetByID(ctx context.Context, id string) (*ActivityRecord, error)

	// Delete removes the record. It requires userID to ensure the caller owns it.
	Delete(ctx context.Context, id string, userID string) error

	// ListByUserAndKind returns records of one kind with from <= date <= to,
	// ordered by date descending. A zero bound is treated as unbounded.
	ListByUserAndKind(ctx context.Context, userID string, kind ActivityKind, from, to time.Time) ([]*ActivityRecord, error)
}

type CommitmentRepository interface {
	Create(ctx context.Context, c *Commitment) error

	GetByID(ctx context.Context, id string) (*Commitment, error)

	// ListActiveByUserID returns the user's active commitments, oldest start first.
	ListActiveByUserID(ctx context.Context, userID string) ([]*Commitment, error)

	// Deactivate soft-deactivates the commitment. Deactivating twice yields ErrCommitmentInactive.
	Deactivate(ctx context.Context, id string, userID string) error
}

// StreakCache stores computed streaks keyed by user, kind and calendar day.
type StreakCache interface {
	Get(ctx context.Context, userID string, kind ActivityKind, day time.Time) (*StreakState, bool, error)
	Set(ctx context.Context, userID string, kind ActivityKind, day time.Time, state StreakState) error
	// Invalidate drops every cached day of (user, kind).
	Invalidate(ctx context.Context, userID string, kind ActivityKind) error
}
