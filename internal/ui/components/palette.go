package components

import "github.com/charmbracelet/lipgloss"

// Palette carries the colors components render with. The ui package builds
// one from the active theme.
type Palette struct {
	Primary  lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Body     lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
	Border   lipgloss.AdaptiveColor
	Success  lipgloss.AdaptiveColor
	Warning  lipgloss.AdaptiveColor
	Error    lipgloss.AdaptiveColor
	Info     lipgloss.AdaptiveColor
}

// DefaultPalette returns the colors used when no theme is supplied
func DefaultPalette() Palette {
	return Palette{
		Primary:  lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"},
		Muted:    lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Body:     lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"},
		Selected: lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"},
		Border:   lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"},
		Success:  lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"},
		Warning:  lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"},
		Error:    lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"},
		Info:     lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#06B6D4"},
	}
}

// statusColor maps a status name onto the palette
func (p Palette) statusColor(status string) (lipgloss.AdaptiveColor, bool) {
	switch status {
	case "success":
		return p.Success, true
	case "warning":
		return p.Warning, true
	case "error":
		return p.Error, true
	case "info":
		return p.Info, true
	default:
		return lipgloss.AdaptiveColor{}, false
	}
}
