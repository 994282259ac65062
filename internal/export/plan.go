package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/claude/c25k/internal/calendar"
	"github.com/claude/c25k/internal/models"
)

// StravaPlannedActivity is one planned workout in a Strava complete-program
// export.
type StravaPlannedActivity struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	StartDateLocal string `json:"start_date_local"`
	Description    string `json:"description"`
	Trainer        bool   `json:"trainer"`
}

// GarminPlannedActivity is one planned workout in a Garmin complete-program
// export.
type GarminPlannedActivity struct {
	ActivityName      string `json:"activityName"`
	ActivityType      string `json:"activityType"`
	ScheduledDate     string `json:"scheduledDate"`
	Description       string `json:"description"`
	EstimatedDuration int    `json:"estimatedDuration"`
}

// IntervalsPlannedWorkout is one planned workout in an intervals.icu plan.
type IntervalsPlannedWorkout struct {
	Name        string `json:"name"`
	PlannedDate string `json:"planned_date"`
	Description string `json:"description"`
}

// IntervalsPlan is the intervals.icu complete-program payload shape.
type IntervalsPlan struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Workouts    []IntervalsPlannedWorkout `json:"workouts"`
}

// CompleteProgram exports the whole scheduled plan to one of the platforms
// that accept planned workouts. Rest entries are skipped; only training
// sessions are uploaded as planned activities.
func CompleteProgram(platform Platform, entries []calendar.Entry, profile models.UserProfile, startDay time.Time, hour, minute int) (Data, error) {
	type planned struct {
		name, date, description string
		duration                int
	}
	var sessions []planned
	for _, e := range entries {
		if e.DurationMinutes == 0 {
			continue
		}
		date := startDay.AddDate(0, 0, (e.Week-1)*7+e.DayOffset)
		at := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
		sessions = append(sessions, planned{
			name:        fmt.Sprintf("C25K Week %d Day %s", e.Week, e.Day),
			date:        isoTime(at),
			description: e.Description,
			duration:    e.DurationMinutes,
		})
	}

	switch platform {
	case Strava:
		rows := make([]StravaPlannedActivity, 0, len(sessions))
		for _, p := range sessions {
			rows = append(rows, StravaPlannedActivity{
				Name:           p.name,
				Type:           "Run",
				StartDateLocal: p.date,
				Description:    p.description,
				Trainer:        true,
			})
		}
		return Data{Platform: Strava, Format: "json", Data: rows,
			Filename: "strava_c25k_complete_program.json"}, nil

	case Garmin:
		rows := make([]GarminPlannedActivity, 0, len(sessions))
		for _, p := range sessions {
			rows = append(rows, GarminPlannedActivity{
				ActivityName:      p.name,
				ActivityType:      "running",
				ScheduledDate:     p.date,
				Description:       p.description,
				EstimatedDuration: p.duration * 60,
			})
		}
		return Data{Platform: Garmin, Format: "json", Data: rows,
			Filename: "garmin_c25k_complete_program.json"}, nil

	case Intervals:
		plan := IntervalsPlan{
			Name:        fmt.Sprintf("%s's C25K Program", profile.Name),
			Description: "Complete 9-week Couch to 5K training program",
		}
		for _, p := range sessions {
			plan.Workouts = append(plan.Workouts, IntervalsPlannedWorkout{
				Name:        p.name,
				PlannedDate: p.date,
				Description: p.description,
			})
		}
		return Data{Platform: Intervals, Format: "json", Data: plan,
			Filename: "intervals_c25k_complete_program.json"}, nil

	default:
		return Data{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
}

// PlanCSV renders a schedule as spreadsheet rows, one per entry.
func PlanCSV(entries []calendar.Entry) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"week", "day", "date", "duration", "workout", "tip"}); err != nil {
		return "", fmt.Errorf("writing plan csv: %w", err)
	}
	for _, e := range entries {
		rec := []string{
			strconv.Itoa(e.Week), e.Day, e.Date,
			strconv.Itoa(e.DurationMinutes), e.Workout, e.Tip,
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("writing plan csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing plan csv: %w", err)
	}
	return buf.String(), nil
}

// PlanJSON renders a schedule as indented JSON.
func PlanJSON(entries []calendar.Entry) (string, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling plan: %w", err)
	}
	return string(data), nil
}

// PlanMarkdown renders a schedule as a printable Markdown checklist grouped
// by week.
func PlanMarkdown(entries []calendar.Entry, profile models.UserProfile, startDay time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# C25K Training Plan\n\n")
	fmt.Fprintf(&sb, "**Name:** %s\n", profile.Name)
	fmt.Fprintf(&sb, "**Age:** %d\n", profile.Age)
	fmt.Fprintf(&sb, "**Weight:** %g %s\n", profile.Weight, profile.WeightUnit)
	fmt.Fprintf(&sb, "**Start Date:** %s\n\n", startDay.Format("2006-01-02"))
	sb.WriteString("## Workout Schedule\n")

	currentWeek := 0
	for _, e := range entries {
		if e.Week != currentWeek {
			currentWeek = e.Week
			fmt.Fprintf(&sb, "\n### Week %d\n\n", currentWeek)
		}
		if e.DurationMinutes > 0 {
			fmt.Fprintf(&sb, "- [ ] **Day %s** (%s): %s\n", e.Day, e.Date, e.Workout)
			if e.Tip != "" {
				fmt.Fprintf(&sb, "  - *Tip:* %s\n", e.Tip)
			}
		} else {
			fmt.Fprintf(&sb, "- [ ] **Rest Day** (%s): %s\n", e.Date, e.Description)
		}
	}
	return sb.String()
}
