// Package calendar builds a dated training schedule from a plan and
// serializes it to iCalendar text.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one schedulable item: a training session or a rest-day marker.
// Day is a label: the day number ("1".."3") for training entries, a weekday
// name ("Sat") for rest entries. DayOffset is days from the start of the
// entry's week. Rest entries carry DurationMinutes 0 and still emit a
// zero-length event span.
type Entry struct {
	Week            int    `json:"week"`
	Day             string `json:"day"`
	DayOffset       int    `json:"day_offset"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"duration"`
	Description     string `json:"description"`
	Workout         string `json:"workout"`
	Tip             string `json:"tip,omitempty"`
}

// DefaultAlertMinutes is the reminder lead time used when none is given.
const DefaultAlertMinutes = 30

const icsTimeLayout = "20060102T150405"

// GenerateICS renders the entries as a single iCalendar document. The output
// is deterministic: event dates derive solely from startDay plus each
// entry's week and day offset. The exact byte layout (LF line endings, field
// order, no DTSTAMP, no trailing newline) is a fixed external contract.
func GenerateICS(entries []Entry, startDay time.Time, hour, minute, alertMinutes int) string {
	var sb strings.Builder
	sb.WriteString("BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//Couch to 5K//EN\n")

	for _, e := range entries {
		date := startDay.AddDate(0, 0, (e.Week-1)*7+e.DayOffset)
		start := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
		end := start.Add(time.Duration(e.DurationMinutes) * time.Minute)

		summary := fmt.Sprintf("C25K Week %d - Day %s", e.Week, e.Day)
		if e.DurationMinutes == 0 {
			summary = fmt.Sprintf("C25K Week %d %s (Rest)", e.Week, e.Day)
		}

		sb.WriteString("BEGIN:VEVENT\n")
		fmt.Fprintf(&sb, "DTSTART:%s\n", start.Format(icsTimeLayout))
		fmt.Fprintf(&sb, "DTEND:%s\n", end.Format(icsTimeLayout))
		fmt.Fprintf(&sb, "SUMMARY:%s\n", summary)
		fmt.Fprintf(&sb, "DESCRIPTION:%s\n", e.Description)
		fmt.Fprintf(&sb, "UID:%d-%s-c25k@couch-to-5k.local\n", e.Week, e.Day)

		if alertMinutes > 0 {
			sb.WriteString("BEGIN:VALARM\n")
			fmt.Fprintf(&sb, "TRIGGER:-PT%dM\n", alertMinutes)
			sb.WriteString("ACTION:DISPLAY\n")
			sb.WriteString("DESCRIPTION:C25K Reminder\n")
			sb.WriteString("END:VALARM\n")
		}

		sb.WriteString("END:VEVENT\n")
	}

	sb.WriteString("END:VCALENDAR")
	return sb.String()
}
