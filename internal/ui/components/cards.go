package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card is a bordered tile showing one item of a grid
type Card struct {
	Title    string
	Badge    string
	Lines    []string
	Accent   lipgloss.AdaptiveColor
	Selected bool
	Width    int
}

// Render renders the card
func (c Card) Render(p Palette) string {
	width := c.Width
	if width <= 0 {
		width = 30
	}

	titleStyle := lipgloss.NewStyle().Foreground(p.Body).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(c.Accent).Bold(true)
	lineStyle := lipgloss.NewStyle().Foreground(p.Muted)

	content := []string{titleStyle.Render(c.Title)}
	if c.Badge != "" {
		content = append(content, badgeStyle.Render(c.Badge))
	}
	for _, line := range c.Lines {
		content = append(content, lineStyle.Render(truncate(line, width-4)))
	}

	border := c.Accent
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width)
	if c.Selected {
		style = style.Border(lipgloss.ThickBorder()).BorderForeground(p.Primary)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// Grid lays cards out in rows of Columns
type Grid struct {
	Columns int
	Palette Palette
}

// NewGrid creates a grid with the given column count
func NewGrid(columns int) *Grid {
	if columns < 1 {
		columns = 1
	}
	return &Grid{Columns: columns, Palette: DefaultPalette()}
}

// ColumnsFor returns how many cards of cardWidth fit in width, capped at max
func ColumnsFor(width, cardWidth, max int) int {
	if cardWidth <= 0 {
		return 1
	}
	cols := width / (cardWidth + 4)
	if cols > max {
		cols = max
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// Render renders the cards row by row
func (g *Grid) Render(cards []Card) string {
	if len(cards) == 0 {
		return ""
	}
	var rows []string
	for i := 0; i < len(cards); i += g.Columns {
		end := i + g.Columns
		if end > len(cards) {
			end = len(cards)
		}
		row := make([]string, 0, end-i)
		for _, c := range cards[i:end] {
			row = append(row, c.Render(g.Palette))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ") + "…"
}
