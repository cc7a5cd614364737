package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

func recs(kind domain.ActivityKind, dates ...string) []*domain.ActivityRecord {
	out := make([]*domain.ActivityRecord, 0, len(dates))
	for _, d := range dates {
		out = append(out, &domain.ActivityRecord{Kind: kind, Date: mustDay(d)})
	}
	return out
}

func TestDashboardService_Get(t *testing.T) {
	ctx := context.Background()
	uid := "user-1"
	today := mustDay("2024-01-10")
	unbounded := time.Time{}

	activities := new(MockActivityRepo)
	commitments := new(MockCommitmentRepo)
	service := services.NewDashboardService(activities, commitments)

	activities.On("ListByUserAndKind", mock.Anything, uid, domain.ActivityWorkout, unbounded, unbounded).
		Return(recs(domain.ActivityWorkout, "2024-01-10", "2024-01-09", "2024-01-08", "2024-01-04", "2024-01-03", "2024-01-02"), nil)
	activities.On("ListByUserAndKind", mock.Anything, uid, domain.ActivityCheckin, unbounded, unbounded).
		Return(recs(domain.ActivityCheckin, "2024-01-08"), nil)
	activities.On("ListByUserAndKind", mock.Anything, uid, domain.ActivityMeal, unbounded, unbounded).
		Return([]*domain.ActivityRecord{}, nil)
	commitments.On("ListActiveByUserID", mock.Anything, uid).Return([]*domain.Commitment{
		{ID: "c1", UserID: uid, Kind: domain.ActivityWorkout, TargetPerWeek: 3, DurationWeeks: 2, StartDate: mustDay("2024-01-01"), Active: true},
	}, nil)

	d, err := service.Get(ctx, domain.DashboardInput{UserID: uid, Today: today})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-10", d.Date)
	assert.Equal(t, "2024-01-08", d.WeekStart)
	assert.Equal(t, "2024-01-14", d.WeekEnd)

	assert.Equal(t, 3, d.WeeklyCounts[domain.ActivityWorkout])
	assert.Equal(t, 1, d.WeeklyCounts[domain.ActivityCheckin])
	assert.Equal(t, 0, d.WeeklyCounts[domain.ActivityMeal])
	assert.Equal(t, []int{1, 1, 1, 0, 0, 0, 0}, d.DailyProgress[domain.ActivityWorkout])
	assert.Len(t, d.DailyProgress[domain.ActivityMeal], 7)

	assert.Equal(t, domain.StreakState{Current: 3, Longest: 3}, d.Streaks[domain.ActivityWorkout])
	assert.Equal(t, domain.StreakState{Current: 0, Longest: 1}, d.Streaks[domain.ActivityCheckin])

	require.Len(t, d.Commitments, 1)
	assert.Equal(t, 100, d.Commitments[0].OverallProgress)

	unlocked := map[string]bool{}
	for _, a := range d.Achievements {
		unlocked[a.AchievementID] = a.Unlocked
	}
	assert.True(t, unlocked["first_workout"])
	assert.True(t, unlocked["first_checkin"])
	assert.True(t, unlocked["commitment_done"])
	assert.False(t, unlocked["workouts_10"])
	assert.False(t, unlocked["streak_7"])

	assert.Equal(t, 50+50+200, d.TotalXP)
	assert.Equal(t, domain.LevelState{Level: 3, CurrentLevelXP: 0, XPToNextLevel: 300}, d.Level)
}

func TestDashboardService_Get_StreaksIgnoreLaterRecords(t *testing.T) {
	ctx := context.Background()
	uid := "user-1"
	today := mustDay("2024-01-03")
	unbounded := time.Time{}

	activities := new(MockActivityRepo)
	commitments := new(MockCommitmentRepo)
	service := services.NewDashboardService(activities, commitments)

	workouts := recs(domain.ActivityWorkout, "2024-01-14", "2024-01-13", "2024-01-12", "2024-01-11", "2024-01-10", "2024-01-03", "2024-01-02")
	activities.On("ListByUserAndKind", mock.Anything, uid, domain.ActivityWorkout, unbounded, unbounded).Return(workouts, nil)
	activities.On("ListByUserAndKind", mock.Anything, uid, domain.ActivityCheckin, unbounded, unbounded).Return([]*domain.ActivityRecord{}, nil)
	activities.On("ListByUserAndKind", mock.Anything, uid, domain.ActivityMeal, unbounded, unbounded).Return([]*domain.ActivityRecord{}, nil)
	commitments.On("ListActiveByUserID", mock.Anything, uid).Return([]*domain.Commitment{}, nil)

	d, err := service.Get(ctx, domain.DashboardInput{UserID: uid, Today: today})
	require.NoError(t, err)

	// Same answer the streak service gives for that day, which reads up to today only.
	assert.Equal(t, domain.StreakState{Current: 2, Longest: 2}, d.Streaks[domain.ActivityWorkout])
}

func TestDashboardService_Get_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	activities := new(MockActivityRepo)
	commitments := new(MockCommitmentRepo)
	service := services.NewDashboardService(activities, commitments)
	dbErr := errors.New("db down")

	activities.On("ListByUserAndKind", mock.Anything, "u", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.ActivityRecord{}, nil)
	commitments.On("ListActiveByUserID", mock.Anything, "u").Return(nil, dbErr)

	_, err := service.Get(ctx, domain.DashboardInput{UserID: "u", Today: mustDay("2024-01-10")})

	assert.ErrorIs(t, err, dbErr)
}
