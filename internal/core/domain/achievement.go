package domain

// AchievementMetric names the aggregate an achievement is measured against.
type AchievementMetric string

const (
	MetricTotalWorkouts        AchievementMetric = "total_workouts"
	MetricTotalCheckins        AchievementMetric = "total_checkins"
	MetricTotalMeals           AchievementMetric = "total_meals"
	MetricLongestStreak        AchievementMetric = "longest_streak"
	MetricCompletedCommitments AchievementMetric = "completed_commitments"
)

type Achievement struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Metric      AchievementMetric `json:"metric"`
	Target      int               `json:"target"`
	XP          int               `json:"xp"`
}

// AchievementProgress is recomputed from scratch; Unlocked is derived from
// Progress only, never read from a stored flag.
type AchievementProgress struct {
	AchievementID string `json:"achievement_id"`
	Title         string `json:"title"`
	Progress      int    `json:"progress"`
	Target        int    `json:"target"`
	Unlocked      bool   `json:"unlocked"`
	XP            int    `json:"xp"`
}

// AchievementMetrics holds the aggregates evaluated against the catalog.
type AchievementMetrics map[AchievementMetric]int

func DefaultAchievements() []Achievement {
	return []Achievement{
		{ID: "first_workout", Title: "First Sweat", Description: "Log your first workout", Metric: MetricTotalWorkouts, Target: 1, XP: 50},
		{ID: "workouts_10", Title: "Getting Serious", Description: "Log 10 workouts", Metric: MetricTotalWorkouts, Target: 10, XP: 100},
		{ID: "workouts_50", Title: "Iron Habit", Description: "Log 50 workouts", Metric: MetricTotalWorkouts, Target: 50, XP: 300},
		{ID: "first_checkin", Title: "Through the Door", Description: "Check in at the gym", Metric: MetricTotalCheckins, Target: 1, XP: 50},
		{ID: "checkins_20", Title: "Regular", Description: "Check in 20 times", Metric: MetricTotalCheckins, Target: 20, XP: 150},
		{ID: "meals_30", Title: "Mindful Eater", Description: "Log 30 meals", Metric: MetricTotalMeals, Target: 30, XP: 100},
		{ID: "streak_7", Title: "One Week Strong", Description: "Keep a 7 day streak", Metric: MetricLongestStreak, Target: 7, XP: 150},
		{ID: "streak_30", Title: "Unbreakable", Description: "Keep a 30 day streak", Metric: MetricLongestStreak, Target: 30, XP: 500},
		{ID: "commitment_done", Title: "Promise Kept", Description: "Complete a commitment", Metric: MetricCompletedCommitments, Target: 1, XP: 200},
	}
}
