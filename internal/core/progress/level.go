package progress

import "github.com/comitanigiacomo/kanso-fit/internal/core/domain"

// XPPerLevel scales the threshold: leaving level n costs n*XPPerLevel.
const XPPerLevel = 100

// LevelOf spends XP level by level, level n costing n*XPPerLevel, and reports
// the leftover against the next threshold. Negative XP counts as zero.
func LevelOf(totalXP int) domain.LevelState {
	remaining := max(totalXP, 0)
	level := 1

	for remaining >= level*XPPerLevel {
		remaining -= level * XPPerLevel
		level++
	}

	return domain.LevelState{
		Level:          level,
		CurrentLevelXP: remaining,
		XPToNextLevel:  level * XPPerLevel,
	}
}

// EvaluateAchievements derives every achievement's state from the current metrics.
func EvaluateAchievements(catalog []domain.Achievement, metrics domain.AchievementMetrics) []domain.AchievementProgress {
	out := make([]domain.AchievementProgress, 0, len(catalog))
	for _, a := range catalog {
		p := clamp(metrics[a.Metric], 0, a.Target)
		out = append(out, domain.AchievementProgress{
			AchievementID: a.ID,
			Title:         a.Title,
			Progress:      p,
			Target:        a.Target,
			Unlocked:      p >= a.Target,
			XP:            a.XP,
		})
	}
	return out
}

// TotalXP sums the rewards of unlocked achievements.
func TotalXP(achievements []domain.AchievementProgress) int {
	total := 0
	for _, a := range achievements {
		if a.Unlocked {
			total += a.XP
		}
	}
	return total
}
