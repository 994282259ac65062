// Package models defines the shared data types of the C25K training core:
// user profiles, recorded workout sessions, the per-user progress aggregate,
// and unlocked achievements. Persistence stores these as full JSON snapshots,
// so the JSON field names here are part of the storage contract.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WeightUnit is the unit a profile's weight is expressed in.
type WeightUnit string

const (
	WeightKg  WeightUnit = "kg"
	WeightLbs WeightUnit = "lbs"
)

// FitnessLevel is the self-reported starting fitness of a user.
type FitnessLevel string

const (
	FitnessBeginner       FitnessLevel = "beginner"
	FitnessSomeExperience FitnessLevel = "some_experience"
	FitnessActive         FitnessLevel = "active"
)

// Medical condition tags recognized by the adaptive settings calculator.
const (
	ConditionHypertension = "hypertension"
	ConditionDiabetes     = "diabetes"
	ConditionAsthma       = "asthma"
	ConditionKneeProblems = "knee_problems"
)

// Accessibility groups display-related accessibility flags.
type Accessibility struct {
	HighContrast bool `json:"highContrast"`
	LargeFont    bool `json:"largeFont"`
	DyslexiaFont bool `json:"dyslexiaFont"`
	ScreenReader bool `json:"screenReader"`
}

// Preferences groups general app preferences.
type Preferences struct {
	Units                string `json:"units"`
	AudioEnabled         bool   `json:"audioEnabled"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	WeatherIntegration   bool   `json:"weatherIntegration"`
}

// Integrations groups per-platform export toggles.
type Integrations struct {
	StravaEnabled      bool `json:"stravaEnabled"`
	RunkeeperEnabled   bool `json:"runkeeperEnabled"`
	GarminEnabled      bool `json:"garminEnabled"`
	IntervalsEnabled   bool `json:"intervalsEnabled"`
	WeatherEnabled     bool `json:"weatherEnabled"`
	AppleHealthEnabled bool `json:"appleHealthEnabled"`
	GoogleFitEnabled   bool `json:"googleFitEnabled"`
}

// UserProfile holds the identity and attributes that drive plan adaptation.
// Immutable once created except through an explicit update that refreshes
// UpdatedAt.
type UserProfile struct {
	ID                uuid.UUID     `json:"id"`
	Name              string        `json:"name"`
	Email             string        `json:"email,omitempty"`
	Age               int           `json:"age"`
	Weight            float64       `json:"weight"`
	WeightUnit        WeightUnit    `json:"weightUnit"`
	Gender            string        `json:"gender,omitempty"`
	FitnessLevel      FitnessLevel  `json:"fitnessLevel"`
	Goals             []string      `json:"goals,omitempty"`
	MedicalConditions []string      `json:"medicalConditions"`
	PreferredTime     string        `json:"preferredTime,omitempty"`
	RestDays          []string      `json:"restDays,omitempty"`
	Language          string        `json:"language,omitempty"`
	Accessibility     Accessibility `json:"accessibility"`
	Preferences       Preferences   `json:"preferences"`
	Integrations      Integrations  `json:"integrations"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Validate rejects profiles that must not reach the adaptive calculator.
func (p *UserProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile: name is required")
	}
	if p.Age < 16 || p.Age > 100 {
		return fmt.Errorf("profile: age %d out of range (16-100)", p.Age)
	}
	if p.Weight <= 0 {
		return fmt.Errorf("profile: weight must be positive, got %v", p.Weight)
	}
	if p.WeightUnit != WeightKg && p.WeightUnit != WeightLbs {
		return fmt.Errorf("profile: unknown weight unit %q", p.WeightUnit)
	}
	return nil
}

// HasCondition reports whether the profile lists the given medical condition.
func (p *UserProfile) HasCondition(tag string) bool {
	for _, c := range p.MedicalConditions {
		if c == tag {
			return true
		}
	}
	return false
}

// IntervalResult is the outcome of a single run or walk segment within a
// recorded session. ActualDurationSeconds is nil when the timer did not
// capture an actual duration; consumers fall back to the planned duration.
type IntervalResult struct {
	Type                   string `json:"type"`
	PlannedDurationSeconds int    `json:"duration"`
	Completed              bool   `json:"completed"`
	ActualDurationSeconds  *int   `json:"actualDuration,omitempty"`
}

// Seconds returns the actual duration when present, the planned one otherwise.
func (r IntervalResult) Seconds() int {
	if r.ActualDurationSeconds != nil {
		return *r.ActualDurationSeconds
	}
	return r.PlannedDurationSeconds
}

// WorkoutSession is one completed or partial execution of a workout.
// Sessions are immutable once saved and only ever appended to the log.
type WorkoutSession struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"userId"`
	Week      int              `json:"week"`
	Day       int              `json:"day"`
	StartTime time.Time        `json:"startTime"`
	EndTime   *time.Time       `json:"endTime,omitempty"`
	Completed bool             `json:"completed"`
	Intervals []IntervalResult `json:"intervals"`
	Notes     string           `json:"notes,omitempty"`
	Rating    int              `json:"rating,omitempty"`
}

// AchievementCategory classifies an achievement.
type AchievementCategory string

const (
	CategoryMilestone   AchievementCategory = "milestone"
	CategoryTime        AchievementCategory = "time"
	CategoryDistance    AchievementCategory = "distance"
	CategoryConsistency AchievementCategory = "consistency"
)

// Achievement is a one-time unlocked milestone. Never revoked.
type Achievement struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	UnlockedAt  time.Time           `json:"unlockedAt"`
	Category    AchievementCategory `json:"category"`
}

// WeeklyStats is a reserved per-week aggregate. The core rules do not
// populate it; it exists so stored progress snapshots round-trip.
type WeeklyStats struct {
	Week              int     `json:"week"`
	WorkoutsCompleted int     `json:"workoutsCompleted"`
	TotalRunningTime  int     `json:"totalRunningTime"`
	AveragePace       float64 `json:"averagePace,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// UserProgress is the single mutable aggregate per user. It is mutated
// exactly once per saved session, strictly additively.
type UserProgress struct {
	UserID            uuid.UUID     `json:"userId"`
	CurrentWeek       int           `json:"currentWeek"`
	CurrentDay        int           `json:"currentDay"`
	TotalWorkouts     int           `json:"totalWorkouts"`
	CompletedWorkouts int           `json:"completedWorkouts"`
	TotalRunningTime  int           `json:"totalRunningTime"`
	TotalDistance     float64       `json:"totalDistance"`
	Achievements      []Achievement `json:"achievements"`
	WeeklyStats       []WeeklyStats `json:"weeklyStats"`
}

// NewProgress returns the zeroed progress created alongside a new profile.
func NewProgress(userID uuid.UUID) UserProgress {
	return UserProgress{
		UserID:       userID,
		CurrentWeek:  1,
		CurrentDay:   1,
		Achievements: []Achievement{},
		WeeklyStats:  []WeeklyStats{},
	}
}

// HasAchievement reports whether an achievement with the given title is
// already present. Titles are the uniqueness key within a user's list.
func (p *UserProgress) HasAchievement(title string) bool {
	for _, a := range p.Achievements {
		if a.Title == title {
			return true
		}
	}
	return false
}
