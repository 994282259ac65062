package progress

import (
	"time"

	"github.com/claude/c25k/internal/models"
)

// RecordSession folds one saved session into the progress aggregate and
// appends any newly unlocked achievements. The input is not mutated.
//
// All updates are strictly additive; there is no undo or edit path. The
// current position always jumps to the recorded session's week and day, so
// replaying an older session moves it backward. Serializing calls per user
// is the caller's responsibility.
func RecordSession(progress models.UserProgress, session models.WorkoutSession) models.UserProgress {
	return recordSessionAt(progress, session, time.Now())
}

func recordSessionAt(progress models.UserProgress, session models.WorkoutSession, now time.Time) models.UserProgress {
	updated := progress
	updated.Achievements = append([]models.Achievement(nil), progress.Achievements...)

	updated.TotalWorkouts++
	if session.Completed {
		updated.CompletedWorkouts++
	}
	updated.TotalRunningTime += runningTime(session)
	updated.CurrentWeek = session.Week
	updated.CurrentDay = session.Day

	// Evaluated against the post-update counters but the pre-append
	// achievements list.
	unlocked := Evaluate(updated, session, now)
	updated.Achievements = append(updated.Achievements, unlocked...)

	return updated
}

// runningTime sums the completed run intervals of a session, preferring the
// actually timed duration over the planned one.
func runningTime(session models.WorkoutSession) int {
	var total int
	for _, iv := range session.Intervals {
		if iv.Type == "run" && iv.Completed {
			total += iv.Seconds()
		}
	}
	return total
}
