package components

import (
	"github.com/charmbracelet/lipgloss"
)

// DetailViewer represents a detailed view of a specific item, drawn as a
// modal overlay over the page underneath
type DetailViewer struct {
	Title    string
	Subtitle string
	Content  []DetailSection
	Footer   string
	Notice   string
	Width    int
	Palette  Palette
}

// DetailSection represents a section in the detail view
type DetailSection struct {
	Title   string
	Content []string
	Style   string // "info", "warning", "error", "success"
}

// NewDetailViewer creates a new detail viewer
func NewDetailViewer(title string, width int) *DetailViewer {
	return &DetailViewer{
		Title:   title,
		Width:   width,
		Palette: DefaultPalette(),
	}
}

// AddSection adds a section to the detail view
func (d *DetailViewer) AddSection(section DetailSection) {
	d.Content = append(d.Content, section)
}

// Clear clears all content
func (d *DetailViewer) Clear() {
	d.Content = d.Content[:0]
}

// Render renders the detail viewer
func (d *DetailViewer) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(d.Palette.Primary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(d.Palette.Muted)

	content := make([]string, 0, len(d.Content)*2+6)
	content = append(content, headerStyle.Render(d.Title))
	if d.Subtitle != "" {
		content = append(content, mutedStyle.Render(d.Subtitle))
	}
	content = append(content, "")

	for _, section := range d.Content {
		content = append(content, d.renderSection(section)...)
		content = append(content, "")
	}

	if d.Notice != "" {
		content = append(content, lipgloss.NewStyle().Foreground(d.Palette.Success).Bold(true).Render(d.Notice))
	}
	if d.Footer != "" {
		content = append(content, mutedStyle.Render(d.Footer))
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(d.Palette.Primary).
		Padding(1, 2)
	if d.Width > 0 {
		style = style.Width(d.Width)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// renderSection renders a detail section
func (d *DetailViewer) renderSection(section DetailSection) []string {
	lines := make([]string, 0, len(section.Content)+1)

	titleStyle := lipgloss.NewStyle().Foreground(d.Palette.Primary).Bold(true)
	if color, ok := d.Palette.statusColor(section.Style); ok {
		titleStyle = titleStyle.Foreground(color)
	}
	lines = append(lines, titleStyle.Render(section.Title))

	body := lipgloss.NewStyle().Foreground(d.Palette.Body)
	for _, line := range section.Content {
		lines = append(lines, body.Render("  "+line))
	}
	return lines
}
