package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"journal/internal/activity"
)

var csvHeader = []string{"Date", "Category", "Title", "Rating", "Notes"}

// WriteCSV exports records, one row each. Unrated records are written with
// rating 0 and undated ones with an empty date.
func WriteCSV(w io.Writer, records []activity.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		var date string
		if !r.Date.IsZero() {
			date = r.Date.Format(activity.DateLayout)
		}
		rating, _ := r.Rating()

		row := []string{
			date,
			string(r.Category()),
			r.DisplayTitle(),
			strconv.Itoa(rating),
			r.Notes,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s #%d: %w", r.Category(), r.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
