// Package export shapes workout sessions and plans into the payload formats
// of third-party fitness platforms. Adapters only build payloads and
// filenames; any actual upload belongs to an external collaborator.
package export

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/claude/c25k/internal/models"
)

// Platform identifies an export target.
type Platform string

const (
	Strava      Platform = "strava"
	Garmin      Platform = "garmin"
	Intervals   Platform = "intervals"
	AppleHealth Platform = "applehealth"
	GoogleFit   Platform = "googlefit"
	RunKeeper   Platform = "runkeeper"
)

// ErrUnsupportedPlatform is returned for platforms outside the adapter set.
var ErrUnsupportedPlatform = errors.New("unsupported export platform")

// Data is the result of an export: a platform-shaped payload plus a
// suggested filename. The field names inside Data follow each platform's
// contract and are not free to rename.
type Data struct {
	Platform Platform `json:"platform"`
	Format   string   `json:"format"`
	Data     any      `json:"data"`
	Filename string   `json:"filename"`
}

// Export dispatches to the adapter for the named platform. Single-session
// platforms (strava, garmin, intervals) receive the most recent session;
// the list platforms receive all of them.
func Export(platform Platform, sessions []models.WorkoutSession, profile models.UserProfile) (Data, error) {
	if len(sessions) == 0 {
		return Data{}, fmt.Errorf("export to %s: no sessions", platform)
	}
	latest := sessions[len(sessions)-1]

	switch platform {
	case Strava:
		return ToStrava(latest), nil
	case Garmin:
		return ToGarmin(latest), nil
	case Intervals:
		return ToIntervals(latest), nil
	case AppleHealth:
		return ToAppleHealth(sessions, profile), nil
	case GoogleFit:
		return ToGoogleFit(sessions, profile), nil
	case RunKeeper:
		return ToRunKeeper(sessions, profile), nil
	default:
		return Data{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
}

// MovingTimeSeconds sums the completed run intervals of a session,
// preferring the timed duration over the planned one.
func MovingTimeSeconds(s models.WorkoutSession) int {
	var total int
	for _, iv := range s.Intervals {
		if iv.Type == "run" && iv.Completed {
			total += iv.Seconds()
		}
	}
	return total
}

// EstimateDistanceKm estimates the distance covered from the planned
// durations of completed run intervals, assuming a fixed 10 km/h beginner
// pace.
func EstimateDistanceKm(s models.WorkoutSession) float64 {
	var runSeconds int
	for _, iv := range s.Intervals {
		if iv.Type == "run" && iv.Completed {
			runSeconds += iv.PlannedDurationSeconds
		}
	}
	return float64(runSeconds) / 3600 * 10
}

// EstimateCalories applies the 1 kcal per kg per km heuristic. The weight is
// used as stored on the profile, without unit conversion; a profile in lbs
// simply overestimates, matching the original behavior.
func EstimateCalories(s models.WorkoutSession, profile models.UserProfile) int {
	return int(math.Round(EstimateDistanceKm(s) * profile.Weight))
}

// describeSession is the human-readable summary embedded in payloads.
func describeSession(s models.WorkoutSession) string {
	runs, walks := 0, 0
	for _, iv := range s.Intervals {
		if iv.Type == "run" {
			runs++
		} else {
			walks++
		}
	}
	completed := "No"
	if s.Completed {
		completed = "Yes"
	}
	return fmt.Sprintf("%d running intervals, %d walking intervals. Completed: %s", runs, walks, completed)
}

// endOrNow returns the session end, falling back to the current time for
// sessions the timer never closed.
func endOrNow(s models.WorkoutSession) time.Time {
	if s.EndTime != nil {
		return *s.EndTime
	}
	return time.Now()
}

func elapsedSeconds(s models.WorkoutSession) int {
	return int(math.Round(endOrNow(s).Sub(s.StartTime).Seconds()))
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
