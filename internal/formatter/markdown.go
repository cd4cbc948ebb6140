package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/RoadReport/internal/common"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) Format(analysis *Analysis) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Traffic Violation Analysis\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	f.writeSummaryTable(&b, analysis)

	if len(analysis.Results) > 0 {
		f.writeResultSections(&b, analysis.Results)
	} else {
		b.WriteString("## Violations\n\nNo violations detected.\n")
	}

	return []byte(b.String()), nil
}

// writeSummaryTable writes the submission summary table
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, analysis *Analysis) {
	counts := severityCounts(analysis.Results)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Files | %s |\n", escapeTableCell(strings.Join(analysis.Filenames, ", ")))
	fmt.Fprintf(b, "| Events | %s |\n", escapeTableCell(strings.Join(eventLabels(analysis.Events), ", ")))
	fmt.Fprintf(b, "| Violations | %d |\n", len(analysis.Results))
	fmt.Fprintf(b, "| High / Medium / Low | %d / %d / %d |\n",
		counts[common.SeverityHigh], counts[common.SeverityMedium], counts[common.SeverityLow])
	if analysis.Message != "" {
		fmt.Fprintf(b, "| Server | %s |\n", escapeTableCell(analysis.Message))
	}
	b.WriteString("\n")
}

// writeResultSections writes one section per violation
func (f *markdownFormatter) writeResultSections(b *strings.Builder, results []common.AnalysisResult) {
	b.WriteString("## Violations\n\n")

	for _, r := range bySeverity(results) {
		fmt.Fprintf(b, "### #%s %s (%s)\n\n", r.ID, r.EventName, r.Severity)
		fmt.Fprintf(b, "- **Time:** %s\n", r.Timestamp)
		fmt.Fprintf(b, "- **Location:** %s\n", r.Location)
		if r.VideoURL != "" {
			fmt.Fprintf(b, "- **Video:** [%s](%s)\n", r.VideoURL, r.VideoURL)
		}
		if r.Thumbnail != "" {
			fmt.Fprintf(b, "\n![thumbnail](%s)\n", r.Thumbnail)
		}
		b.WriteString("\n")
		if r.Description != "" {
			b.WriteString("> " + strings.ReplaceAll(r.Description, "\n", "\n> ") + "\n\n")
		}
	}
}

func escapeTableCell(s string) string {
	return strings.ReplaceAll(singleLine(s), "|", "\\|")
}
