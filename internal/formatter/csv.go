package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// csvFormatter formats results as CSV, one row per violation
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(analysis *Analysis) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"ID",
		"Timestamp",
		"Location",
		"Event Type",
		"Event Name",
		"Severity",
		"Video URL",
		"Thumbnail",
		"Description",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range analysis.Results {
		record := []string{
			r.ID,
			r.Timestamp,
			r.Location,
			string(r.EventType),
			r.EventName,
			r.Severity.String(),
			r.VideoURL,
			r.Thumbnail,
			singleLine(r.Description),
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}
