// Package program holds the canonical 9-week Couch-to-5K interval template
// and the duration-string arithmetic the adapter and exporters depend on.
package program

// WorkoutInterval is a single timed run or walk segment. Duration is a
// human-readable string ("1 min", "90 sec", "2 min 30 sec") that must parse
// to a positive number of seconds.
type WorkoutInterval struct {
	Type        string `json:"type"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
}

// Interval types.
const (
	IntervalRun  = "run"
	IntervalWalk = "walk"
)

// Workout is one session within a week: warmup, an ordered interval
// sequence, cooldown, coaching tips, and a target total duration in minutes.
type Workout struct {
	Day         int               `json:"day"`
	Warmup      string            `json:"warmup"`
	Intervals   []WorkoutInterval `json:"intervals"`
	Cooldown    string            `json:"cooldown"`
	Tips        string            `json:"tips"`
	Duration    int               `json:"duration"`
	Completed   bool              `json:"completed"`
	SafetyNotes string            `json:"safety_notes,omitempty"`
}

// WeekProgram is one week of the template: exactly three workouts plus
// descriptive framing. Week and Day together identify a workout.
type WeekProgram struct {
	Week           int       `json:"week"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Workouts       []Workout `json:"workouts"`
	Focus          string    `json:"focus"`
	SafetyReminder string    `json:"safety_reminder"`
}

// Clone returns a deep copy of the week, safe to mutate.
func (w WeekProgram) Clone() WeekProgram {
	out := w
	out.Workouts = make([]Workout, len(w.Workouts))
	for i, wo := range w.Workouts {
		cp := wo
		cp.Intervals = make([]WorkoutInterval, len(wo.Intervals))
		copy(cp.Intervals, wo.Intervals)
		out.Workouts[i] = cp
	}
	return out
}
