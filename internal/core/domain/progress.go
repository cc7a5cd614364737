package domain

import "time"

// WeekResult is derived on every call and never persisted.
type WeekResult struct {
	WeekIndex int  `json:"week_index"`
	Count     int  `json:"count"`
	Satisfied bool `json:"satisfied"`
}

type CommitmentProgress struct {
	CommitmentID    string       `json:"commitment_id"`
	Kind            ActivityKind `json:"kind"`
	TargetPerWeek   int          `json:"target_per_week"`
	CurrentWeek     int          `json:"current_week"`
	TotalWeeks      int          `json:"total_weeks"`
	ThisWeekCount   int          `json:"this_week_count"`
	WeeklyResults   []bool       `json:"weekly_results"`
	Weeks           []WeekResult `json:"weeks"`
	OverallProgress int          `json:"overall_progress"`
}

// Completed reports whether every week of the declared duration was satisfied.
func (p CommitmentProgress) Completed() bool {
	return p.OverallProgress >= 100
}

// StreakState is a current/longest pair; Longest is never below Current.
type StreakState struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type LevelState struct {
	Level          int `json:"level"`
	CurrentLevelXP int `json:"current_level_xp"`
	XPToNextLevel  int `json:"xp_to_next_level"`
}

type Dashboard struct {
	Date          string                       `json:"date"`
	WeekStart     string                       `json:"week_start"`
	WeekEnd       string                       `json:"week_end"`
	WeeklyCounts  map[ActivityKind]int         `json:"weekly_counts"`
	DailyProgress map[ActivityKind][]int       `json:"daily_progress"`
	Streaks       map[ActivityKind]StreakState `json:"streaks"`
	Commitments   []CommitmentProgress         `json:"commitments"`
	Achievements  []AchievementProgress        `json:"achievements"`
	TotalXP       int                          `json:"total_xp"`
	Level         LevelState                   `json:"level"`
}

type DashboardInput struct {
	UserID string
	Today  time.Time
}
