package export

import (
	"bytes"
	"fmt"

	"github.com/claude/c25k/internal/calendar"
	"github.com/xuri/excelize/v2"
)

// PlanXLSX renders a schedule as an Excel workbook with one row per entry.
func PlanXLSX(entries []calendar.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Plan"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	header := []any{"Week", "Day", "Date", "Duration (min)", "Workout", "Tip"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		row := []any{e.Week, e.Day, e.Date, e.DurationMinutes, e.Workout, e.Tip}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
