package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// appleHealthHeader is the fixed column order of the HealthKit workout CSV.
var appleHealthHeader = []string{
	"Start Date",
	"End Date",
	"Workout Activity Type",
	"Duration (min)",
	"Total Distance (km)",
	"Total Energy Burned (kcal)",
	"Source Name",
	"Source Version",
	"Device",
	"Creation Date",
	"Notes",
}

func (r AppleHealthRow) record() []string {
	return []string{
		r.StartDate,
		r.EndDate,
		r.ActivityType,
		strconv.Itoa(r.DurationMin),
		strconv.FormatFloat(r.TotalDistanceKm, 'f', -1, 64),
		strconv.Itoa(r.EnergyBurnedKcal),
		r.SourceName,
		r.SourceVersion,
		r.Device,
		r.CreationDate,
		r.Notes,
	}
}

// AppleHealthCSV renders Apple Health rows as CSV text.
func AppleHealthCSV(rows []AppleHealthRow) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(appleHealthHeader); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.record()); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return buf.String(), nil
}
