package export

import (
	"fmt"
	"math"
	"time"

	"github.com/claude/c25k/internal/models"
)

// StravaActivity is the Strava activity payload shape.
type StravaActivity struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	StartDateLocal string   `json:"start_date_local"`
	ElapsedTime    int      `json:"elapsed_time"`
	Description    string   `json:"description"`
	Distance       *float64 `json:"distance,omitempty"`
	Trainer        bool     `json:"trainer"`
}

// ToStrava shapes a single session as a Strava activity.
func ToStrava(s models.WorkoutSession) Data {
	activity := StravaActivity{
		Name:           fmt.Sprintf("C25K Week %d Day %d", s.Week, s.Day),
		Type:           "Run",
		StartDateLocal: isoTime(s.StartTime),
		ElapsedTime:    elapsedSeconds(s),
		Description:    describeSession(s),
		Trainer:        true,
	}
	return Data{
		Platform: Strava,
		Format:   "json",
		Data:     activity,
		Filename: fmt.Sprintf("strava_c25k_w%dd%d.json", s.Week, s.Day),
	}
}

// GarminActivity is the Garmin Connect activity payload shape.
type GarminActivity struct {
	ActivityName string   `json:"activityName"`
	ActivityType string   `json:"activityType"`
	StartTimeGMT string   `json:"startTimeGMT"`
	Duration     int      `json:"duration"`
	Description  string   `json:"description"`
	Distance     *float64 `json:"distance,omitempty"`
}

// ToGarmin shapes a single session as a Garmin Connect activity.
func ToGarmin(s models.WorkoutSession) Data {
	activity := GarminActivity{
		ActivityName: fmt.Sprintf("C25K Week %d Day %d", s.Week, s.Day),
		ActivityType: "running",
		StartTimeGMT: isoTime(s.StartTime),
		Duration:     elapsedSeconds(s),
		Description:  describeSession(s),
	}
	return Data{
		Platform: Garmin,
		Format:   "json",
		Data:     activity,
		Filename: fmt.Sprintf("garmin_c25k_w%dd%d.json", s.Week, s.Day),
	}
}

// IntervalsInterval is one structured interval in an intervals.icu workout.
type IntervalsInterval struct {
	Type        string `json:"type"`
	Duration    int    `json:"duration"`
	TargetType  string `json:"target_type"`
	Description string `json:"description"`
}

// IntervalsWorkout is the intervals.icu workout payload shape.
type IntervalsWorkout struct {
	StartDateLocal string              `json:"start_date_local"`
	Type           string              `json:"type"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	MovingTime     int                 `json:"moving_time"`
	ElapsedTime    int                 `json:"elapsed_time"`
	Distance       *float64            `json:"distance,omitempty"`
	Trainer        bool                `json:"trainer"`
	Intervals      []IntervalsInterval `json:"intervals,omitempty"`
}

// ToIntervals shapes a single session as an intervals.icu workout, including
// its full interval structure.
func ToIntervals(s models.WorkoutSession) Data {
	workout := IntervalsWorkout{
		StartDateLocal: isoTime(s.StartTime),
		Type:           "Run",
		Name:           fmt.Sprintf("C25K W%dD%d", s.Week, s.Day),
		Description:    describeSession(s),
		MovingTime:     MovingTimeSeconds(s),
		ElapsedTime:    elapsedSeconds(s),
		Trainer:        true,
	}
	for i, iv := range s.Intervals {
		kind := "rest"
		if iv.Type == "run" {
			kind = "work"
		}
		workout.Intervals = append(workout.Intervals, IntervalsInterval{
			Type:        kind,
			Duration:    iv.Seconds(),
			TargetType:  "pace",
			Description: fmt.Sprintf("%s interval %d", iv.Type, i+1),
		})
	}
	return Data{
		Platform: Intervals,
		Format:   "json",
		Data:     workout,
		Filename: fmt.Sprintf("intervals_c25k_w%dd%d.json", s.Week, s.Day),
	}
}

// AppleHealthRow is one row of the HealthKit-compatible workout CSV.
type AppleHealthRow struct {
	StartDate        string  `json:"Start Date"`
	EndDate          string  `json:"End Date"`
	ActivityType     string  `json:"Workout Activity Type"`
	DurationMin      int     `json:"Duration (min)"`
	TotalDistanceKm  float64 `json:"Total Distance (km)"`
	EnergyBurnedKcal int     `json:"Total Energy Burned (kcal)"`
	SourceName       string  `json:"Source Name"`
	SourceVersion    string  `json:"Source Version"`
	Device           string  `json:"Device"`
	CreationDate     string  `json:"Creation Date"`
	Notes            string  `json:"Notes"`
}

// ToAppleHealth shapes a session list as HealthKit workout CSV rows.
func ToAppleHealth(sessions []models.WorkoutSession, profile models.UserProfile) Data {
	rows := make([]AppleHealthRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, AppleHealthRow{
			StartDate:        isoTime(s.StartTime),
			EndDate:          isoTime(endOrNow(s)),
			ActivityType:     "HKWorkoutActivityTypeRunning",
			DurationMin:      int(math.Round(endOrNow(s).Sub(s.StartTime).Minutes())),
			TotalDistanceKm:  EstimateDistanceKm(s),
			EnergyBurnedKcal: EstimateCalories(s, profile),
			SourceName:       "C25K Training App",
			SourceVersion:    "1.0",
			Device:           "C25K App",
			CreationDate:     isoTime(s.StartTime),
			Notes:            fmt.Sprintf("C25K Week %d Day %d - %s", s.Week, s.Day, describeSession(s)),
		})
	}
	return Data{
		Platform: AppleHealth,
		Format:   "csv",
		Data:     rows,
		Filename: "apple_health_c25k_workouts.csv",
	}
}

// GoogleFitApplication identifies the app in a Google Fit payload.
type GoogleFitApplication struct {
	PackageName string `json:"packageName"`
	Version     string `json:"version,omitempty"`
	Name        string `json:"name,omitempty"`
}

// GoogleFitSession is the session block of a Google Fit entry.
type GoogleFitSession struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Description        string               `json:"description"`
	StartTimeMillis    int64                `json:"startTimeMillis"`
	EndTimeMillis      int64                `json:"endTimeMillis"`
	ModifiedTimeMillis int64                `json:"modifiedTimeMillis"`
	ActivityType       int                  `json:"activityType"`
	Application        GoogleFitApplication `json:"application"`
}

// GoogleFitValue is a single data point value.
type GoogleFitValue struct {
	FpVal float64 `json:"fpVal"`
}

// GoogleFitPoint is a single dataset point.
type GoogleFitPoint struct {
	StartTimeNanos int64            `json:"startTimeNanos"`
	EndTimeNanos   int64            `json:"endTimeNanos"`
	DataTypeName   string           `json:"dataTypeName"`
	Value          []GoogleFitValue `json:"value"`
}

// GoogleFitDataset is a dataset block of a Google Fit entry.
type GoogleFitDataset struct {
	DataSourceID string           `json:"dataSourceId"`
	Point        []GoogleFitPoint `json:"point"`
}

// GoogleFitEntry is one exported session in Google Fit shape.
type GoogleFitEntry struct {
	DataSourceID string               `json:"dataSourceId"`
	Application  GoogleFitApplication `json:"application"`
	Session      GoogleFitSession     `json:"session"`
	Dataset      []GoogleFitDataset   `json:"dataset"`
}

// googleFitRunning is the Google Fit activity type code for running.
const googleFitRunning = 8

// ToGoogleFit shapes a session list as Google Fit session entries with a
// distance dataset per session.
func ToGoogleFit(sessions []models.WorkoutSession, profile models.UserProfile) Data {
	now := time.Now().UnixMilli()
	entries := make([]GoogleFitEntry, 0, len(sessions))
	for _, s := range sessions {
		end := endOrNow(s)
		entries = append(entries, GoogleFitEntry{
			DataSourceID: "c25k_training_app",
			Application: GoogleFitApplication{
				PackageName: "com.c25k.training",
				Version:     "1.0",
				Name:        "C25K Training",
			},
			Session: GoogleFitSession{
				ID:                 s.ID.String(),
				Name:               fmt.Sprintf("C25K Week %d Day %d", s.Week, s.Day),
				Description:        describeSession(s),
				StartTimeMillis:    s.StartTime.UnixMilli(),
				EndTimeMillis:      end.UnixMilli(),
				ModifiedTimeMillis: now,
				ActivityType:       googleFitRunning,
				Application:        GoogleFitApplication{PackageName: "com.c25k.training"},
			},
			Dataset: []GoogleFitDataset{
				{
					DataSourceID: "c25k_training_app:distance",
					Point: []GoogleFitPoint{
						{
							StartTimeNanos: s.StartTime.UnixNano(),
							EndTimeNanos:   end.UnixNano(),
							DataTypeName:   "com.google.distance.delta",
							Value:          []GoogleFitValue{{FpVal: EstimateDistanceKm(s) * 1000}},
						},
					},
				},
			},
		})
	}
	return Data{
		Platform: GoogleFit,
		Format:   "json",
		Data:     entries,
		Filename: "google_fit_c25k_data.json",
	}
}

// RunKeeperActivity is the RunKeeper activity payload shape.
type RunKeeperActivity struct {
	Type          string  `json:"type"`
	StartTime     string  `json:"start_time"`
	TotalTime     int     `json:"total_time"`
	TotalDistance float64 `json:"total_distance"`
	Notes         string  `json:"notes"`
	Source        string  `json:"source"`
}

// ToRunKeeper shapes a session list as RunKeeper activities.
func ToRunKeeper(sessions []models.WorkoutSession, profile models.UserProfile) Data {
	activities := make([]RunKeeperActivity, 0, len(sessions))
	for _, s := range sessions {
		activities = append(activities, RunKeeperActivity{
			Type:          "Running",
			StartTime:     isoTime(s.StartTime),
			TotalTime:     elapsedSeconds(s),
			TotalDistance: EstimateDistanceKm(s) * 1000,
			Notes:         fmt.Sprintf("C25K Week %d Day %d - %s", s.Week, s.Day, describeSession(s)),
			Source:        "C25K Training App",
		})
	}
	return Data{
		Platform: RunKeeper,
		Format:   "json",
		Data:     activities,
		Filename: "runkeeper_c25k_activities.json",
	}
}
