package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

// StreakEnqueuer schedules a background streak recomputation.
type StreakEnqueuer interface {
	Enqueue(userID string, kind domain.ActivityKind)
}

// StreakInvalidator drops cached streaks that a write has made stale.
type StreakInvalidator interface {
	Invalidate(ctx context.Context, userID string, kind domain.ActivityKind)
}

// ActivityService writes activity records. After every write the cached
// streaks of that kind are dropped synchronously; the worker only warms the
// cache again.
type ActivityService struct {
	repo    domain.ActivityRepository
	streaks StreakInvalidator
	worker  StreakEnqueuer
	metrics *metrics.Manager
}

func NewActivityService(repo domain.ActivityRepository, streaks StreakInvalidator, worker StreakEnqueuer, m *metrics.Manager) *ActivityService {
	return &ActivityService{
		repo:    repo,
		streaks: streaks,
		worker:  worker,
		metrics: m,
	}
}

type LogActivityInput struct {
	UserID string
	Kind   string
	Date   time.Time
	Notes  string
}

type ListActivitiesInput struct {
	UserID string
	// Kind may be empty to list every kind.
	Kind string
	From time.Time
	To   time.Time
}

func (s *ActivityService) Log(ctx context.Context, input LogActivityInput) (*domain.ActivityRecord, error) {
	kind, err := domain.ParseActivityKind(input.Kind)
	if err != nil {
		return nil, err
	}

	record, err := domain.NewActivityRecord(input.UserID, kind, input.Date, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("activity service: failed to create record: %w", err)
	}

	s.metrics.ActivityLogged(kind.String())
	s.afterWrite(ctx, record.UserID, record.Kind)

	return record, nil
}

func (s *ActivityService) List(ctx context.Context, input ListActivitiesInput) ([]*domain.ActivityRecord, error) {
	if !input.From.IsZero() && !input.To.IsZero() && input.To.Before(input.From) {
		return nil, domain.ErrInvalidDate
	}

	kinds := domain.ActivityKinds
	if input.Kind != "" {
		kind, err := domain.ParseActivityKind(input.Kind)
		if err != nil {
			return nil, err
		}
		kinds = []domain.ActivityKind{kind}
	}

	out := make([]*domain.ActivityRecord, 0)
	for _, kind := range kinds {
		records, err := s.repo.ListByUserAndKind(ctx, input.UserID, kind, input.From, input.To)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}

	if len(kinds) > 1 {
		slices.SortStableFunc(out, func(a, b *domain.ActivityRecord) int {
			return b.Date.Compare(a.Date)
		})
	}

	return out, nil
}

func (s *ActivityService) GetByID(ctx context.Context, id string, userID string) (*domain.ActivityRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return record, nil
}

func (s *ActivityService) Delete(ctx context.Context, id string, userID string) error {
	record, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return err
		}
		return fmt.Errorf("activity service: failed to delete record: %w", err)
	}

	s.afterWrite(ctx, record.UserID, record.Kind)
	return nil
}

func (s *ActivityService) afterWrite(ctx context.Context, userID string, kind domain.ActivityKind) {
	if s.streaks != nil {
		s.streaks.Invalidate(ctx, userID, kind)
	}
	if s.worker != nil {
		s.worker.Enqueue(userID, kind)
	}
}
