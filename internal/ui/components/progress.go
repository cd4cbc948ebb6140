package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// spinnerFrames are the braille frames shared by Spinner and ProgressBar
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgressBar renders an indeterminate bar while a request is in flight.
// The analysis service reports no progress, so there is no percentage.
type ProgressBar struct {
	Width     int
	Frame     int
	StartTime time.Time
	Label     string
	Palette   Palette
}

// NewProgressBar creates a new progress bar starting at start
func NewProgressBar(width int, start time.Time) *ProgressBar {
	return &ProgressBar{
		Width:     width,
		StartTime: start,
		Palette:   DefaultPalette(),
	}
}

// SetLabel sets the progress label
func (p *ProgressBar) SetLabel(label string) {
	p.Label = label
}

// Step advances the animation by one frame
func (p *ProgressBar) Step() {
	p.Frame++
}

// Render renders the bar with the elapsed time measured against now
func (p *ProgressBar) Render(now time.Time) string {
	progressStyle := lipgloss.NewStyle().Foreground(p.Palette.Success).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(p.Palette.Muted)

	width := p.Width
	if width < 4 {
		width = 4
	}
	block := width / 4
	span := width - block
	pos := p.Frame % (2 * span)
	if pos >= span {
		pos = 2*span - pos // bounce back
	}

	bar := mutedStyle.Render(strings.Repeat("░", pos)) +
		progressStyle.Render(strings.Repeat("█", block)) +
		mutedStyle.Render(strings.Repeat("░", width-pos-block))

	status := fmt.Sprintf("%s %s", spinnerFrames[p.Frame%len(spinnerFrames)], FormatDuration(now.Sub(p.StartTime)))

	parts := []string{}
	if p.Label != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(p.Palette.Primary).Bold(true).Render(p.Label))
	}
	parts = append(parts, bar, mutedStyle.Render(status))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// FormatDuration formats an elapsed duration for display
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

// Spinner represents a loading spinner
type Spinner struct {
	Frame   int
	Label   string
	Palette Palette
}

// NewSpinner creates a new spinner
func NewSpinner(label string) *Spinner {
	return &Spinner{Label: label, Palette: DefaultPalette()}
}

// Next advances the spinner to the next frame
func (s *Spinner) Next() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	style := lipgloss.NewStyle().Foreground(s.Palette.Primary)
	frame := spinnerFrames[s.Frame%len(spinnerFrames)]
	if s.Label == "" {
		return style.Render(frame)
	}
	return style.Render(fmt.Sprintf("%s %s", frame, s.Label))
}
