// Package progress maintains the per-user progress aggregate and evaluates
// the achievement rule set over recorded workout sessions.
package progress

import (
	"time"

	"github.com/claude/c25k/internal/models"
	"github.com/google/uuid"
)

// Achievement titles. Titles are the uniqueness key within a user's list.
const (
	TitleFirstSteps    = "First Steps"
	TitleWeek1Champion = "Week 1 Champion"
	TitleFiveMinRunner = "5 Minute Runner"
)

// fiveMinuteRunSeconds is the continuous run length that unlocks the
// "5 Minute Runner" achievement.
const fiveMinuteRunSeconds = 300

// Evaluate returns the achievements newly unlocked by the given session.
// progress must already reflect the session's counter updates, but its
// achievements list still holds only previously unlocked entries.
//
// Only the "5 Minute Runner" rule carries its own duplicate guard; "First
// Steps" and "Week 1 Champion" will re-unlock if their trigger state recurs
// (a re-recorded week-1-day-3 session, for example). That matches the
// original behavior; callers relying on uniqueness must not replay
// qualifying sessions.
func Evaluate(progress models.UserProgress, session models.WorkoutSession, now time.Time) []models.Achievement {
	var unlocked []models.Achievement

	if progress.TotalWorkouts == 1 {
		unlocked = append(unlocked, models.Achievement{
			ID:          uuid.New(),
			Title:       TitleFirstSteps,
			Description: "Completed your first C25K workout!",
			Icon:        "🎯",
			UnlockedAt:  now,
			Category:    models.CategoryMilestone,
		})
	}

	if session.Week == 1 && session.Day == 3 && session.Completed {
		unlocked = append(unlocked, models.Achievement{
			ID:          uuid.New(),
			Title:       TitleWeek1Champion,
			Description: "Completed your first week of C25K!",
			Icon:        "🏆",
			UnlockedAt:  now,
			Category:    models.CategoryMilestone,
		})
	}

	if session.Week >= 4 && hasLongRun(session) && !progress.HasAchievement(TitleFiveMinRunner) {
		unlocked = append(unlocked, models.Achievement{
			ID:          uuid.New(),
			Title:       TitleFiveMinRunner,
			Description: "Ran continuously for 5 minutes!",
			Icon:        "🏃‍♂️",
			UnlockedAt:  now,
			Category:    models.CategoryTime,
		})
	}

	return unlocked
}

func hasLongRun(session models.WorkoutSession) bool {
	for _, iv := range session.Intervals {
		if iv.Type == "run" && iv.Completed && iv.PlannedDurationSeconds >= fiveMinuteRunSeconds {
			return true
		}
	}
	return false
}
