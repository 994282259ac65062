package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/claude/c25k/internal/program"
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// BuildSchedule produces the dated entry list for a (possibly adapted)
// program: one training entry per workout at every-other-day offsets, plus a
// zero-duration entry for each user-selected rest day of each week. Entries
// are ordered by week, then by day offset, matching how the calendar
// displays them.
func BuildSchedule(weeks []program.WeekProgram, restDays []string, startDay time.Time) []Entry {
	rest := make(map[string]bool, len(restDays))
	for _, d := range restDays {
		rest[d] = true
	}

	var entries []Entry
	for _, w := range weeks {
		for _, wo := range w.Workouts {
			offset := (wo.Day - 1) * 2
			entries = append(entries, Entry{
				Week:            w.Week,
				Day:             fmt.Sprintf("%d", wo.Day),
				DayOffset:       offset,
				Date:            entryDate(startDay, w.Week, offset),
				DurationMinutes: wo.Duration,
				Description:     workoutSummary(wo),
				Workout:         workoutDetail(wo),
				Tip:             wo.Tips,
			})
		}

		for offset, name := range weekdayNames {
			if !rest[name] {
				continue
			}
			entries = append(entries, Entry{
				Week:            w.Week,
				Day:             name,
				DayOffset:       offset,
				Date:            entryDate(startDay, w.Week, offset),
				DurationMinutes: 0,
				Description:     "Rest day. Recovery is part of the training.",
				Workout:         "Rest",
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Week != entries[j].Week {
			return entries[i].Week < entries[j].Week
		}
		return entries[i].DayOffset < entries[j].DayOffset
	})
	return entries
}

func entryDate(startDay time.Time, week, offset int) string {
	return startDay.AddDate(0, 0, (week-1)*7+offset).Format("2006-01-02")
}

// workoutSummary is the one-line event description: interval counts plus
// warmup and cooldown.
func workoutSummary(wo program.Workout) string {
	runs, walks := 0, 0
	for _, iv := range wo.Intervals {
		if iv.Type == program.IntervalRun {
			runs++
		} else {
			walks++
		}
	}
	return fmt.Sprintf("%d running intervals, %d walking intervals. Warmup: %s. Cooldown: %s.",
		runs, walks, wo.Warmup, wo.Cooldown)
}

// workoutDetail lists the interval sequence, e.g. "run 1 min, walk 90 sec, ...".
func workoutDetail(wo program.Workout) string {
	out := ""
	for i, iv := range wo.Intervals {
		if i > 0 {
			out += ", "
		}
		out += iv.Type + " " + iv.Duration
	}
	return out
}
