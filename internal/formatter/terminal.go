package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(analysis *Analysis) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeSubmission(&b, analysis)
	f.writeStatistics(&b, analysis.Results)

	if len(analysis.Results) > 0 {
		f.writeResults(&b, analysis.Results)
	} else {
		b.WriteString("No violations detected. Start a new analysis with other videos or events.\n")
	}

	return []byte(b.String()), nil
}

// writeHeader writes a box drawn header sized to the display width
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "교통법규 위반 분석 결과"
	width := runewidth.StringWidth(header)

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

// writeSubmission writes what was sent
func (f *terminalFormatter) writeSubmission(b *strings.Builder, analysis *Analysis) {
	symbol := termfmt.GetEmoji("summary", f.opts)
	b.WriteString(symbol + " Submission\n")

	items := []termfmt.TreeItem{
		{Label: "Files", Value: fmt.Sprintf("%d (%s)", len(analysis.Filenames), strings.Join(analysis.Filenames, ", "))},
		{Label: "Events", Value: strings.Join(eventLabels(analysis.Events), ", ")},
	}
	if !analysis.SubmittedAt.IsZero() {
		items = append(items, termfmt.TreeItem{Label: "Submitted", Value: analysis.SubmittedAt.Format("2006-01-02 15:04:05")})
	}
	msg := analysis.Message
	if msg == "" {
		msg = "-"
	}
	items = append(items, termfmt.TreeItem{Label: "Server", Value: msg, Last: true})

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeStatistics writes severity counts with tree-style formatting
func (f *terminalFormatter) writeStatistics(b *strings.Builder, results []common.AnalysisResult) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Statistics\n")

	counts := severityCounts(results)
	items := []termfmt.TreeItem{
		{Label: "Violations", Value: fmt.Sprintf("%d", len(results))},
		{Label: "High", Value: fmt.Sprintf("%d", counts[common.SeverityHigh])},
		{Label: "Medium", Value: fmt.Sprintf("%d", counts[common.SeverityMedium])},
		{Label: "Low", Value: fmt.Sprintf("%d", counts[common.SeverityLow]), Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeResults writes one tree node per violation, most severe first
func (f *terminalFormatter) writeResults(b *strings.Builder, results []common.AnalysisResult) {
	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Violations\n")

	sorted := bySeverity(results)
	items := make([]termfmt.TreeItem, 0, len(sorted))
	for i, r := range sorted {
		bar := termfmt.CreateConfidenceBar(severityWeight(r.Severity), f.opts)
		children := []termfmt.TreeItem{
			{Label: "Time", Value: r.Timestamp},
			{Label: "Location", Value: r.Location},
			{Label: "Severity", Value: bar + " " + r.Severity.String()},
		}
		if r.VideoURL != "" {
			children = append(children, termfmt.TreeItem{Label: "Video", Value: r.VideoURL})
		}
		children = append(children, termfmt.TreeItem{Label: "Detail", Value: singleLine(r.Description), Last: true})

		items = append(items, termfmt.TreeItem{
			Label:    fmt.Sprintf("%s #%s %s", getSeverityEmoji(r.Severity, f.opts), r.ID, r.EventName),
			Value:    "",
			Children: children,
			Last:     i == len(sorted)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}
