package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/progress"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

// StreakService serves streaks from the cache and falls back to recomputing
// them from the full activity history. Cache failures never fail a request.
type StreakService struct {
	activities domain.ActivityRepository
	cache      domain.StreakCache
	metrics    *metrics.Manager
}

// NewStreakService accepts a nil cache, in which case every call recomputes.
func NewStreakService(activities domain.ActivityRepository, cache domain.StreakCache, m *metrics.Manager) *StreakService {
	return &StreakService{
		activities: activities,
		cache:      cache,
		metrics:    m,
	}
}

func (s *StreakService) Get(ctx context.Context, userID string, kind domain.ActivityKind, today time.Time) (domain.StreakState, error) {
	if !kind.IsValid() {
		return domain.StreakState{}, domain.ErrInvalidActivityKind
	}
	today = domain.Day(today)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, userID, kind, today)
		if err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("streak cache read failed")
		}
		s.metrics.StreakCacheLookup(ok)
		if ok && cached != nil {
			return *cached, nil
		}
	}

	return s.Refresh(ctx, userID, kind, today)
}

// Refresh recomputes the streak for (user, kind, today) and overwrites the cache entry.
func (s *StreakService) Refresh(ctx context.Context, userID string, kind domain.ActivityKind, today time.Time) (domain.StreakState, error) {
	today = domain.Day(today)

	records, err := s.activities.ListByUserAndKind(ctx, userID, kind, time.Time{}, today)
	if err != nil {
		return domain.StreakState{}, fmt.Errorf("streak service: failed to list activities: %w", err)
	}

	state := progress.Streak(domain.Dates(records), today)

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, kind, today, state); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("streak cache write failed")
		}
	}

	return state, nil
}

// Invalidate forgets every cached streak of (user, kind). Activity writes call
// it before returning, so the next read recomputes from the repository.
func (s *StreakService) Invalidate(ctx context.Context, userID string, kind domain.ActivityKind) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID, kind); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"kind":    kind,
		}).Error("streak cache invalidation failed")
	}
}

// GetAll returns the streak of every activity kind.
func (s *StreakService) GetAll(ctx context.Context, userID string, today time.Time) (map[domain.ActivityKind]domain.StreakState, error) {
	out := make(map[domain.ActivityKind]domain.StreakState, len(domain.ActivityKinds))
	for _, kind := range domain.ActivityKinds {
		st, err := s.Get(ctx, userID, kind, today)
		if err != nil {
			return nil, err
		}
		out[kind] = st
	}
	return out, nil
}
