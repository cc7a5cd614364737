package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/progress"
)

type DashboardService struct {
	activities  domain.ActivityRepository
	commitments domain.CommitmentRepository
	catalog     []domain.Achievement
}

func NewDashboardService(activities domain.ActivityRepository, commitments domain.CommitmentRepository) *DashboardService {
	return &DashboardService{
		activities:  activities,
		commitments: commitments,
		catalog:     domain.DefaultAchievements(),
	}
}

// Get builds the dashboard for the calendar week (Monday to Sunday) containing
// input.Today. Each kind's full history is loaded once, concurrently, and every
// figure is derived from those records.
func (s *DashboardService) Get(ctx context.Context, input domain.DashboardInput) (*domain.Dashboard, error) {
	today := domain.Day(input.Today)
	weekStart := domain.StartOfWeek(today)
	weekEnd := weekStart.AddDate(0, 0, 6)

	records := make([][]*domain.ActivityRecord, len(domain.ActivityKinds))
	var commitments []*domain.Commitment

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range domain.ActivityKinds {
		g.Go(func() error {
			recs, err := s.activities.ListByUserAndKind(gctx, input.UserID, kind, time.Time{}, time.Time{})
			if err != nil {
				return fmt.Errorf("dashboard: failed to list %s records: %w", kind, err)
			}
			records[i] = recs
			return nil
		})
	}
	g.Go(func() error {
		list, err := s.commitments.ListActiveByUserID(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("dashboard: failed to list commitments: %w", err)
		}
		commitments = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &domain.Dashboard{
		Date:          domain.FormatDay(today),
		WeekStart:     domain.FormatDay(weekStart),
		WeekEnd:       domain.FormatDay(weekEnd),
		WeeklyCounts:  make(map[domain.ActivityKind]int, len(domain.ActivityKinds)),
		DailyProgress: make(map[domain.ActivityKind][]int, len(domain.ActivityKinds)),
		Streaks:       make(map[domain.ActivityKind]domain.StreakState, len(domain.ActivityKinds)),
	}

	byKind := make(map[domain.ActivityKind][]*domain.ActivityRecord, len(domain.ActivityKinds))
	metrics := domain.AchievementMetrics{}

	for i, kind := range domain.ActivityKinds {
		byKind[kind] = records[i]
		dates := domain.Dates(records[i])

		d.WeeklyCounts[kind] = progress.CountBetween(dates, weekStart, weekEnd)
		d.DailyProgress[kind] = progress.DailyCounts(dates, weekStart, 7)

		streak := progress.Streak(domain.DatesUntil(records[i], today), today)
		d.Streaks[kind] = streak
		if streak.Longest > metrics[domain.MetricLongestStreak] {
			metrics[domain.MetricLongestStreak] = streak.Longest
		}
	}

	metrics[domain.MetricTotalWorkouts] = len(byKind[domain.ActivityWorkout])
	metrics[domain.MetricTotalCheckins] = len(byKind[domain.ActivityCheckin])
	metrics[domain.MetricTotalMeals] = len(byKind[domain.ActivityMeal])

	d.Commitments = progress.ProgressBatch(validCommitments(commitments), byKind, today)
	for _, p := range d.Commitments {
		if p.Completed() {
			metrics[domain.MetricCompletedCommitments]++
		}
	}

	d.Achievements = progress.EvaluateAchievements(s.catalog, metrics)
	d.TotalXP = progress.TotalXP(d.Achievements)
	d.Level = progress.LevelOf(d.TotalXP)

	return d, nil
}
