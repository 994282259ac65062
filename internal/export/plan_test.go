package export

import (
	"strings"
	"testing"
	"time"

	"github.com/claude/c25k/internal/calendar"
	"github.com/claude/c25k/internal/program"
)

func testEntries(t *testing.T) []calendar.Entry {
	t.Helper()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return calendar.BuildSchedule(program.Weeks(), []string{"Sun"}, start)
}

func TestCompleteProgramStrava(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	data, err := CompleteProgram(Strava, testEntries(t), testProfile(), start, 9, 0)
	if err != nil {
		t.Fatal(err)
	}
	if data.Filename != "strava_c25k_complete_program.json" {
		t.Errorf("filename = %q", data.Filename)
	}

	rows, ok := data.Data.([]StravaPlannedActivity)
	if !ok {
		t.Fatalf("payload is %T", data.Data)
	}
	// Rest entries are skipped: 27 training sessions only.
	if len(rows) != 27 {
		t.Fatalf("got %d planned activities, want 27", len(rows))
	}
	first := rows[0]
	if first.Name != "C25K Week 1 Day 1" {
		t.Errorf("name = %q", first.Name)
	}
	if first.StartDateLocal != "2026-03-02T09:00:00Z" {
		t.Errorf("start = %q", first.StartDateLocal)
	}
	if first.Type != "Run" || !first.Trainer {
		t.Errorf("activity = %+v", first)
	}
}

func TestCompleteProgramGarmin(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	data, err := CompleteProgram(Garmin, testEntries(t), testProfile(), start, 9, 0)
	if err != nil {
		t.Fatal(err)
	}
	rows := data.Data.([]GarminPlannedActivity)
	if rows[0].EstimatedDuration != 30*60 {
		t.Errorf("estimated duration = %d, want seconds", rows[0].EstimatedDuration)
	}
	if rows[0].ActivityType != "running" {
		t.Errorf("activity type = %q", rows[0].ActivityType)
	}
}

func TestCompleteProgramIntervals(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	data, err := CompleteProgram(Intervals, testEntries(t), testProfile(), start, 9, 0)
	if err != nil {
		t.Fatal(err)
	}
	plan := data.Data.(IntervalsPlan)
	if plan.Name != "Test Runner's C25K Program" {
		t.Errorf("plan name = %q", plan.Name)
	}
	if len(plan.Workouts) != 27 {
		t.Errorf("got %d workouts, want 27", len(plan.Workouts))
	}
}

func TestCompleteProgramUnsupported(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if _, err := CompleteProgram(AppleHealth, testEntries(t), testProfile(), start, 9, 0); err == nil {
		t.Error("applehealth complete program succeeded")
	}
}

func TestPlanCSV(t *testing.T) {
	out, err := PlanCSV(testEntries(t))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "week,day,date,duration,workout,tip" {
		t.Errorf("header = %q", lines[0])
	}
	// 27 training + 9 rest entries.
	if len(lines) != 1+36 {
		t.Errorf("got %d lines, want 37", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1,1,2026-03-02,30,") {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestPlanJSON(t *testing.T) {
	out, err := PlanJSON(testEntries(t))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "[\n  {\n") {
		t.Errorf("not indented JSON: %q", out[:20])
	}
	if !strings.Contains(out, `"week": 1`) {
		t.Error("week field missing")
	}
}

func TestPlanMarkdown(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	out := PlanMarkdown(testEntries(t), testProfile(), start)

	if !strings.HasPrefix(out, "# C25K Training Plan\n") {
		t.Errorf("header = %q", out[:30])
	}
	if !strings.Contains(out, "**Name:** Test Runner\n") {
		t.Error("name line missing")
	}
	if !strings.Contains(out, "### Week 1\n") || !strings.Contains(out, "### Week 9\n") {
		t.Error("week sections missing")
	}
	if !strings.Contains(out, "- [ ] **Day 1** (2026-03-02): ") {
		t.Error("day checklist line missing")
	}
	if !strings.Contains(out, "- [ ] **Rest Day** (2026-03-08): ") {
		t.Error("rest day line missing")
	}
}

func TestPlanXLSX(t *testing.T) {
	out, err := PlanXLSX(testEntries(t))
	if err != nil {
		t.Fatal(err)
	}
	// XLSX files are zip archives.
	if len(out) < 4 || out[0] != 'P' || out[1] != 'K' {
		t.Error("output is not a zip archive")
	}
}
