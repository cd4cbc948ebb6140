package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/ui/components"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor

	// Severity accents for result cards and the detail overlay
	SeverityHigh   lipgloss.AdaptiveColor
	SeverityMedium lipgloss.AdaptiveColor
	SeverityLow    lipgloss.AdaptiveColor
}

func color(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Available themes
var (
	DefaultTheme = Theme{
		Name:           "default",
		Primary:        color("#1E40AF", "#3B82F6"),
		Secondary:      color("#6B7280", "#9CA3AF"),
		Success:        color("#059669", "#10B981"),
		Warning:        color("#D97706", "#F59E0B"),
		Error:          color("#DC2626", "#EF4444"),
		Info:           color("#0891B2", "#06B6D4"),
		Border:         color("#D1D5DB", "#374151"),
		Foreground:     color("#111827", "#F9FAFB"),
		Muted:          color("#6B7280", "#9CA3AF"),
		Selected:       color("#DBEAFE", "#1E3A8A"),
		SeverityHigh:   color("#DC2626", "#EF4444"),
		SeverityMedium: color("#EA580C", "#FB923C"),
		SeverityLow:    color("#CA8A04", "#FACC15"),
	}

	HighContrastTheme = Theme{
		Name:           "high-contrast",
		Primary:        color("#000000", "#FFFFFF"),
		Secondary:      color("#666666", "#BBBBBB"),
		Success:        color("#006600", "#00FF00"),
		Warning:        color("#CC6600", "#FFAA00"),
		Error:          color("#CC0000", "#FF4444"),
		Info:           color("#0066CC", "#4499FF"),
		Border:         color("#000000", "#FFFFFF"),
		Foreground:     color("#000000", "#FFFFFF"),
		Muted:          color("#666666", "#BBBBBB"),
		Selected:       color("#CCCCCC", "#333333"),
		SeverityHigh:   color("#CC0000", "#FF0000"),
		SeverityMedium: color("#CC5500", "#FF8800"),
		SeverityLow:    color("#998800", "#FFFF00"),
	}

	MinimalTheme = Theme{
		Name:           "minimal",
		Primary:        color("#2D3748", "#E2E8F0"),
		Secondary:      color("#718096", "#A0AEC0"),
		Success:        color("#2F855A", "#68D391"),
		Warning:        color("#C05621", "#F6AD55"),
		Error:          color("#C53030", "#FC8181"),
		Info:           color("#2B6CB0", "#63B3ED"),
		Border:         color("#E2E8F0", "#2D3748"),
		Foreground:     color("#2D3748", "#F7FAFC"),
		Muted:          color("#A0AEC0", "#718096"),
		Selected:       color("#EDF2F7", "#2D3748"),
		SeverityHigh:   color("#C53030", "#FC8181"),
		SeverityMedium: color("#C05621", "#F6AD55"),
		SeverityLow:    color("#B7791F", "#F6E05E"),
	}
)

var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default", "":
		SetTheme(&DefaultTheme)
	case "high-contrast":
		SetTheme(&HighContrastTheme)
	case "minimal":
		SetTheme(&MinimalTheme)
	default:
		return false
	}
	return true
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// SeverityColor returns the accent for a severity level
func (t Theme) SeverityColor(s common.Severity) lipgloss.AdaptiveColor {
	switch s {
	case common.SeverityHigh:
		return t.SeverityHigh
	case common.SeverityMedium:
		return t.SeverityMedium
	default:
		return t.SeverityLow
	}
}

// Palette converts the theme into the colors components render with
func (t Theme) Palette() components.Palette {
	return components.Palette{
		Primary:  t.Primary,
		Muted:    t.Muted,
		Body:     t.Foreground,
		Selected: t.Selected,
		Border:   t.Border,
		Success:  t.Success,
		Warning:  t.Warning,
		Error:    t.Error,
		Info:     t.Info,
	}
}

// GetStyles returns the common styles for the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Subheader: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(theme.Info),

		Selected: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		NavItem: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),
		NavActive: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}).
			Bold(true).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 2),
		ButtonDisabled: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Muted).
			Padding(0, 2),
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title     lipgloss.Style
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Selected lipgloss.Style

	Box   lipgloss.Style
	Panel lipgloss.Style

	NavItem        lipgloss.Style
	NavActive      lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
}
