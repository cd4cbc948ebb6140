package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/RoadReport/internal/common"
)

// Analysis is the outcome of one submission as presented to the user
type Analysis struct {
	Filenames   []string
	Events      []common.EventCategory
	Message     string
	Results     []common.AnalysisResult
	SubmittedAt time.Time
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(analysis *Analysis) ([]byte, error)
}

// New returns the formatter for an output format name
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: text, json, markdown, csv)", format)
	}
}
