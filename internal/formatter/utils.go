package formatter

import (
	"sort"

	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/go-termfmt"
)

// severityCounts tallies results per severity
func severityCounts(results []common.AnalysisResult) map[common.Severity]int {
	counts := make(map[common.Severity]int, 3)
	for _, r := range results {
		counts[r.Severity]++
	}
	return counts
}

// bySeverity returns a copy of results ordered high to low, stable within a level
func bySeverity(results []common.AnalysisResult) []common.AnalysisResult {
	sorted := make([]common.AnalysisResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity > sorted[j].Severity
	})
	return sorted
}

// eventLabels returns the human labels of the tags
func eventLabels(events []common.EventCategory) []string {
	labels := make([]string, 0, len(events))
	for _, e := range events {
		labels = append(labels, e.Label())
	}
	return labels
}

// getSeverityEmoji returns emoji for severity levels using go-termfmt
func getSeverityEmoji(severity common.Severity, opts *termfmt.TerminalOptions) string {
	switch severity {
	case common.SeverityHigh:
		return termfmt.GetEmoji("error", opts)
	case common.SeverityMedium:
		return termfmt.GetEmoji("warning", opts)
	default:
		return termfmt.GetEmoji("info", opts)
	}
}

// severityWeight maps a severity onto a 0..1 scale for bar rendering
func severityWeight(severity common.Severity) float64 {
	switch severity {
	case common.SeverityHigh:
		return 1.0
	case common.SeverityMedium:
		return 0.66
	default:
		return 0.33
	}
}

// singleLine flattens newlines for tabular formats
func singleLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
