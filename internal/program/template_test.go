package program

import "testing"

// TestProgramShape verifies the canonical template: nine weeks of three
// workouts each, with parseable intervals and positive durations throughout.
func TestProgramShape(t *testing.T) {
	weeks := Weeks()
	if len(weeks) != 9 {
		t.Fatalf("got %d weeks, want 9", len(weeks))
	}
	for i, w := range weeks {
		if w.Week != i+1 {
			t.Errorf("week %d numbered %d", i+1, w.Week)
		}
		if w.Title == "" || w.Description == "" || w.Focus == "" || w.SafetyReminder == "" {
			t.Errorf("week %d has empty metadata", w.Week)
		}
		if len(w.Workouts) != 3 {
			t.Fatalf("week %d has %d workouts, want 3", w.Week, len(w.Workouts))
		}
		for j, wo := range w.Workouts {
			if wo.Day != j+1 {
				t.Errorf("week %d workout %d numbered day %d", w.Week, j+1, wo.Day)
			}
			if wo.Duration <= 0 {
				t.Errorf("week %d day %d has duration %d", w.Week, wo.Day, wo.Duration)
			}
			if len(wo.Intervals) == 0 {
				t.Errorf("week %d day %d has no intervals", w.Week, wo.Day)
			}
			for _, iv := range wo.Intervals {
				if iv.Type != IntervalRun && iv.Type != IntervalWalk {
					t.Errorf("week %d day %d: unknown interval type %q", w.Week, wo.Day, iv.Type)
				}
				if _, err := ParseDuration(iv.Duration); err != nil {
					t.Errorf("week %d day %d: %v", w.Week, wo.Day, err)
				}
			}
		}
	}
}

// TestWeekOne pins the first workout, which downstream tests and the original
// timer behavior depend on: 8 one-minute jogs alternating with 8 walks.
func TestWeekOne(t *testing.T) {
	wo, found := Find(1, 1)
	if !found {
		t.Fatal("week 1 day 1 not found")
	}
	if wo.Warmup != "5 min brisk walk" {
		t.Errorf("warmup = %q", wo.Warmup)
	}
	if wo.Cooldown != "5 min slow walk" {
		t.Errorf("cooldown = %q", wo.Cooldown)
	}
	if len(wo.Intervals) != 16 {
		t.Fatalf("got %d intervals, want 16", len(wo.Intervals))
	}
	for i, iv := range wo.Intervals {
		if i%2 == 0 {
			if iv.Type != IntervalRun || iv.Duration != "1 min" {
				t.Errorf("interval %d = %s %q, want run 1 min", i, iv.Type, iv.Duration)
			}
		} else {
			if iv.Type != IntervalWalk || iv.Duration != "90 sec" {
				t.Errorf("interval %d = %s %q, want walk 90 sec", i, iv.Type, iv.Duration)
			}
		}
	}
	if wo.Duration != 30 {
		t.Errorf("duration = %d, want 30", wo.Duration)
	}
}

func TestFindOutOfRange(t *testing.T) {
	for _, pos := range [][2]int{{0, 1}, {10, 1}, {1, 0}, {1, 4}, {-1, -1}} {
		if _, found := Find(pos[0], pos[1]); found {
			t.Errorf("Find(%d, %d) found a workout", pos[0], pos[1])
		}
	}
}

// TestWeeksReturnsCopies verifies that mutating a returned program does not
// leak into the canonical template.
func TestWeeksReturnsCopies(t *testing.T) {
	a := Weeks()
	a[0].Title = "changed"
	a[0].Workouts[0].Intervals[0].Duration = "99 min"

	b := Weeks()
	if b[0].Title == "changed" {
		t.Error("week title mutation leaked into template")
	}
	if b[0].Workouts[0].Intervals[0].Duration == "99 min" {
		t.Error("interval mutation leaked into template")
	}
}
