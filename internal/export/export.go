// Package export writes the full report set to portable formats for the
// admin console: CSV for spreadsheets and JSON for everything else.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/eduguard/eg/internal/feed"
)

// csvHeader matches the column layout of the original export.
var csvHeader = []string{"Exam", "Center", "Description", "Status", "Timestamp"}

// WriteCSV writes the reports as CSV with a header row. Status is
// "Verified" or "Pending"; timestamps are RFC 3339.
func WriteCSV(w io.Writer, reports []feed.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range reports {
		status := "Pending"
		if r.IsVerified {
			status = "Verified"
		}
		row := []string{
			r.ExamName,
			r.CenterName,
			r.Description,
			status,
			r.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the reports as an indented JSON array.
func WriteJSON(w io.Writer, reports []feed.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}
	return nil
}
