package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListItem represents an item in a list
type ListItem struct {
	ID          string
	Title       string
	Description string
	Status      string // "success", "warning", "error", "info"
	Icon        string
	Details     []string // shown under the item while Expanded
	Expanded    bool
}

// List represents a navigable list component
type List struct {
	Title       string
	Items       []ListItem
	Selected    int
	Focused     bool
	Width       int
	Height      int
	ShowNumbers bool
	ShowIcons   bool
	EmptyText   string
	Palette     Palette
}

// NewList creates a new list component
func NewList(title string, width, height int) *List {
	return &List{
		Title:       title,
		Width:       width,
		Height:      height,
		ShowNumbers: true,
		ShowIcons:   true,
		Palette:     DefaultPalette(),
	}
}

// SetItems replaces the items, keeping the selection in range
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.Select(l.Selected)
}

// Select moves the selection to index, clamped to the items
func (l *List) Select(index int) {
	if index >= len(l.Items) {
		index = len(l.Items) - 1
	}
	if index < 0 {
		index = 0
	}
	l.Selected = index
}

// SetFocused sets the focus state of the list
func (l *List) SetFocused(focused bool) {
	l.Focused = focused
}

// GetSelectedItem returns the currently selected item
func (l *List) GetSelectedItem() *ListItem {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return nil
	}
	return &l.Items[l.Selected]
}

// MoveUp moves selection up
func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

// MoveDown moves selection down
func (l *List) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Selected++
	}
}

// Render renders the list
func (l *List) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(l.Palette.Primary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(l.Palette.Muted)

	content := []string{headerStyle.Render(l.Title), ""}

	if len(l.Items) == 0 {
		content = append(content, mutedStyle.Render(l.EmptyText))
	} else {
		lines, scroll := l.renderVisible()
		content = append(content, lines...)
		if scroll.total > 0 {
			content = append(content, "", mutedStyle.Render(scroll.String()))
		}
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)

	border := l.Palette.Border
	if l.Focused {
		border = l.Palette.Primary
	}
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if l.Width > 0 {
		panelStyle = panelStyle.Width(l.Width)
	}
	return panelStyle.Render(joined)
}

type scrollInfo struct {
	start, end, total int
}

func (s scrollInfo) String() string {
	return fmt.Sprintf("(%d-%d of %d)", s.start+1, s.end, s.total)
}

// renderVisible renders the window of items around the selection
func (l *List) renderVisible() ([]string, scrollInfo) {
	maxVisible := l.Height - 4
	if l.Height <= 0 || maxVisible >= len(l.Items) {
		maxVisible = len(l.Items)
	}
	if maxVisible < 1 {
		maxVisible = 1
	}

	start := 0
	if l.Selected >= maxVisible {
		start = l.Selected - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(l.Items) {
		end = len(l.Items)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(&l.Items[i], i+1, l.Focused && i == l.Selected))
	}

	if len(l.Items) > maxVisible {
		return lines, scrollInfo{start: start, end: end, total: len(l.Items)}
	}
	return lines, scrollInfo{}
}

// renderItem renders a single list item
func (l *List) renderItem(item *ListItem, number int, selected bool) string {
	var parts []string

	if l.ShowNumbers {
		parts = append(parts, fmt.Sprintf("%2d.", number))
	}
	if l.ShowIcons && item.Icon != "" {
		parts = append(parts, item.Icon)
	}

	title := item.Title
	if item.Description != "" {
		title += " - " + item.Description
	}
	parts = append(parts, title)

	line := strings.Join(parts, " ")

	style := lipgloss.NewStyle().Foreground(l.Palette.Body)
	if color, ok := l.Palette.statusColor(item.Status); ok {
		style = style.Foreground(color)
	}
	if selected {
		style = lipgloss.NewStyle().Background(l.Palette.Selected).Foreground(l.Palette.Primary).Bold(true)
		line = "▶ " + line
	} else {
		line = "  " + line
	}

	rendered := style.Render(line)
	if !item.Expanded || len(item.Details) == 0 {
		return rendered
	}

	detailStyle := lipgloss.NewStyle().Foreground(l.Palette.Muted).PaddingLeft(6)
	details := make([]string, 0, len(item.Details)+1)
	details = append(details, rendered)
	for _, d := range item.Details {
		details = append(details, detailStyle.Render(d))
	}
	return lipgloss.JoinVertical(lipgloss.Left, details...)
}
