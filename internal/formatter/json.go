package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/RoadReport/internal/common"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the JSON formatter. Its results
// field can be read back by the report command.
type JSONOutput struct {
	Summary *SummaryOutput          `json:"summary"`
	Results []common.AnalysisResult `json:"results"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	Filenames   []string               `json:"filenames"`
	Events      []common.EventCategory `json:"events"`
	Message     string                 `json:"message,omitempty"`
	Total       int                    `json:"total"`
	BySeverity  map[string]int         `json:"by_severity"`
	SubmittedAt *time.Time             `json:"submitted_at,omitempty"`
}

func (f *jsonFormatter) Format(analysis *Analysis) ([]byte, error) {
	results := analysis.Results
	if results == nil {
		results = []common.AnalysisResult{}
	}

	output := &JSONOutput{
		Summary: createSummary(analysis),
		Results: results,
	}

	return json.MarshalIndent(output, "", "  ")
}

// createSummary creates the summary section
func createSummary(analysis *Analysis) *SummaryOutput {
	counts := severityCounts(analysis.Results)
	summary := &SummaryOutput{
		Filenames: analysis.Filenames,
		Events:    analysis.Events,
		Message:   analysis.Message,
		Total:     len(analysis.Results),
		BySeverity: map[string]int{
			common.SeverityHigh.String():   counts[common.SeverityHigh],
			common.SeverityMedium.String(): counts[common.SeverityMedium],
			common.SeverityLow.String():    counts[common.SeverityLow],
		},
	}
	if summary.Filenames == nil {
		summary.Filenames = []string{}
	}
	if summary.Events == nil {
		summary.Events = []common.EventCategory{}
	}
	if !analysis.SubmittedAt.IsZero() {
		t := analysis.SubmittedAt
		summary.SubmittedAt = &t
	}
	return summary
}

// ReadResults decodes results saved by the JSON formatter, or a bare array
// of results as returned by the service
func ReadResults(data []byte) ([]common.AnalysisResult, error) {
	var doc struct {
		Results []common.AnalysisResult `json:"results"`
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc.Results, nil
	}

	var bare []common.AnalysisResult
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}
