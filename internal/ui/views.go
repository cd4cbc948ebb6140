package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/emoji"
	"github.com/yildizm/RoadReport/internal/ui/components"
)

// View renders the current page, or the detail overlay when one is open
func (m *App) View() string {
	if m.quitting {
		return ""
	}

	styles := GetStyles()

	var body string
	if m.st.DetailOpen() {
		body = m.renderDetail(styles)
	} else {
		switch m.st.Page {
		case common.PageLanding:
			body = m.renderLanding(styles)
		case common.PageUpload:
			body = m.renderUpload(styles)
		case common.PageResults:
			body = m.renderResults(styles)
		case common.PageProfile:
			body = m.renderProfile(styles)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderNav(styles),
		"",
		body,
		"",
		m.renderFooter(styles),
	)

	if m.width > 0 && m.height > 0 && m.st.DetailOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m *App) renderNav(styles *Styles) string {
	labels := map[common.Page]string{
		common.PageLanding: emoji.GetEmoji("home") + " Home",
		common.PageUpload:  emoji.GetEmoji("upload") + " Upload",
		common.PageResults: emoji.GetEmoji("results") + " Results",
		common.PageProfile: emoji.GetEmoji("profile") + " Profile",
	}

	items := []string{styles.Title.Render(emoji.GetEmoji("signal") + " RoadReport")}
	for i, page := range common.Pages() {
		label := fmt.Sprintf("%d %s", i+1, labels[page])
		if page == m.st.Page {
			items = append(items, styles.NavActive.Render(label))
		} else {
			items = append(items, styles.NavItem.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, items...)
}

func (m *App) renderFooter(styles *Styles) string {
	var help string
	switch {
	case m.prompt != nil:
		help = "enter add • esc cancel"
	case m.st.DetailOpen():
		help = "p play video • c copy report • esc/x close"
	case m.st.Page == common.PageLanding:
		help = "enter start • 1-4 pages • q quit"
	case m.st.Page == common.PageUpload:
		help = "tab switch panel • ↑/↓ move • space toggle event • o open • a type path • r remove • s analyze • q quit"
	case m.st.Page == common.PageResults:
		help = "←/→/↑/↓ move • enter details • n new analysis • q quit"
	case m.st.Page == common.PageProfile:
		help = "↑/↓ move • enter expand • q quit"
	}
	return styles.Muted.Render(help)
}

func (m *App) renderLanding(styles *Styles) string {
	features := []string{
		emoji.GetEmoji("video") + "  Upload dashcam or CCTV footage",
		emoji.GetEmoji("check") + "  Choose which violations to detect",
		emoji.GetEmoji("copy") + "  Copy a ready-to-file report for each violation",
	}

	content := []string{
		styles.Header.Render("교통법규 위반 영상 분석"),
		styles.Muted.Render("Find traffic violations in your videos and report them in one step."),
		"",
	}
	for _, f := range features {
		content = append(content, styles.Body.Render(f))
	}
	content = append(content, "", styles.Button.Render("enter  Start analysis"))

	return styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

func (m *App) renderUpload(styles *Styles) string {
	palette := GetTheme().Palette()

	files := components.NewList(emoji.GetEmoji("video")+" Videos", 44, 14)
	files.Palette = palette
	files.EmptyText = "No videos yet. Press o to browse or a to type a path."
	items := make([]components.ListItem, 0, len(m.st.Files))
	for _, f := range m.st.Files {
		items = append(items, components.ListItem{
			Title:       f.Name,
			Description: fmt.Sprintf("%.2f MB", f.SizeMB()),
		})
	}
	files.SetItems(items)
	files.Select(m.fileIdx)
	files.SetFocused(m.focus == focusFiles)

	events := components.NewList(emoji.GetEmoji("signal")+" Events to detect", 34, 0)
	events.Palette = palette
	events.ShowNumbers = false
	catalog := common.Catalog()
	eventItems := make([]components.ListItem, 0, len(catalog))
	for _, c := range catalog {
		mark := emoji.GetEmoji("unchecked")
		status := ""
		if m.st.Selected.Has(c.ID) {
			mark = emoji.GetEmoji("check")
			status = "success"
		}
		eventItems = append(eventItems, components.ListItem{
			ID:     string(c.ID),
			Title:  emoji.GetEmoji(c.Emoji) + " " + c.Name,
			Icon:   mark,
			Status: status,
		})
	}
	events.SetItems(eventItems)
	events.Select(m.eventIdx)
	events.SetFocused(m.focus == focusEvents)

	panels := lipgloss.JoinHorizontal(lipgloss.Top, files.Render(), " ", events.Render())

	content := []string{styles.Header.Render("Upload videos"), "", panels, ""}

	if m.prompt != nil {
		content = append(content, styles.Info.Render("Path: ")+styles.Body.Render(m.prompt.String()+"█"), "")
	}

	switch {
	case m.st.Submitting && m.progress != nil:
		content = append(content, m.progress.Render(m.opts.Now()))
	case m.st.CanSubmit():
		content = append(content, styles.Button.Render("s  Analyze "+pluralVideos(len(m.st.Files))))
	default:
		content = append(content, styles.ButtonDisabled.Render("Select at least one video and one event"))
	}

	if m.st.SubmitError != "" {
		content = append(content, styles.Error.Render(emoji.GetEmoji("error")+" Analysis failed: "+m.st.SubmitError))
	}
	if m.status != "" {
		content = append(content, styles.Muted.Render(m.status))
	}
	if m.opts.DropDir != "" {
		content = append(content, styles.Muted.Render("Watching "+m.opts.DropDir+" for new videos"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

func pluralVideos(n int) string {
	if n == 1 {
		return "1 video"
	}
	return fmt.Sprintf("%d videos", n)
}

func (m *App) renderResults(styles *Styles) string {
	theme := GetTheme()

	header := []string{styles.Header.Render("분석 결과")}
	if m.lastMessage != "" {
		header = append(header, styles.Muted.Render(m.lastMessage))
	}

	if len(m.st.Results) == 0 {
		empty := styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.Body.Render(emoji.GetEmoji("sparkles")+" No violations detected"),
			styles.Muted.Render("Press n or 2 to start a new analysis."),
		))
		return lipgloss.JoinVertical(lipgloss.Left, append(header, "", empty)...)
	}

	header = append(header, styles.Info.Render(fmt.Sprintf("%d violation(s) detected", len(m.st.Results))))

	cards := make([]components.Card, 0, len(m.st.Results))
	for i, r := range m.st.Results {
		cards = append(cards, components.Card{
			Title: fmt.Sprintf("#%s %s", r.ID, resultLabel(r)),
			Badge: strings.ToUpper(r.Severity.String()),
			Lines: []string{
				emoji.GetEmoji("clock") + " " + r.Timestamp,
				emoji.GetEmoji("location") + " " + r.Location,
			},
			Accent:   theme.SeverityColor(r.Severity),
			Selected: i == m.resultIdx,
			Width:    cardWidth,
		})
	}
	grid := components.NewGrid(m.columns())
	grid.Palette = theme.Palette()

	return lipgloss.JoinVertical(lipgloss.Left, append(header, "", grid.Render(cards))...)
}

func resultLabel(r common.AnalysisResult) string {
	if r.EventName != "" {
		return r.EventName
	}
	return r.EventType.Label()
}

func (m *App) renderDetail(styles *Styles) string {
	r := m.st.Detail
	theme := GetTheme()

	width := 64
	if m.width > 0 && m.width-8 < width {
		width = m.width - 8
	}

	d := components.NewDetailViewer(fmt.Sprintf("#%s %s", r.ID, resultLabel(*r)), width)
	d.Palette = theme.Palette()
	d.Subtitle = lipgloss.NewStyle().Foreground(theme.SeverityColor(r.Severity)).Bold(true).
		Render("Severity: " + strings.ToUpper(r.Severity.String()))

	d.AddSection(components.DetailSection{Title: emoji.GetEmoji("clock") + " 발생 일시", Content: []string{r.Timestamp}})
	d.AddSection(components.DetailSection{Title: emoji.GetEmoji("location") + " 발생 장소", Content: []string{r.Location}})
	d.AddSection(components.DetailSection{Title: "상세 내용", Content: strings.Split(r.Description, "\n")})

	media := []string{orNone(r.VideoURL)}
	if r.Thumbnail != "" {
		media = append(media, "thumbnail: "+r.Thumbnail)
	}
	d.AddSection(components.DetailSection{Title: emoji.GetEmoji("play") + " Media", Content: media, Style: "info"})

	switch {
	case m.st.Copied:
		note := emoji.GetEmoji("success") + " 복사됨"
		if m.st.CopyNotice != "" {
			note += " (" + m.st.CopyNotice + ")"
		}
		d.Notice = note
	case m.detailNote != "":
		d.Notice = m.detailNote
	}
	d.Footer = "p play • c copy report • esc close"

	return d.Render()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func (m *App) renderProfile(styles *Styles) string {
	p := m.opts.Profile
	reports := m.st.RecentReports()

	card := styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.Header.Render(emoji.GetEmoji("profile")+" "+p.Name),
		styles.Muted.Render(p.Email),
		styles.Muted.Render("Joined "+p.JoinDate),
		"",
		styles.Body.Render(fmt.Sprintf("Reports this session: %d", len(reports))),
	))

	list := components.NewList(emoji.GetEmoji("copy")+" Recent reports", 70, 0)
	list.Palette = GetTheme().Palette()
	list.ShowNumbers = false
	list.EmptyText = "Reports you copy from the results page appear here."
	items := make([]components.ListItem, 0, len(reports))
	for _, r := range reports {
		expanded := m.st.Expanded[r.ID]
		icon := "▸"
		if expanded {
			icon = "▾"
		}
		items = append(items, components.ListItem{
			ID:          r.ID,
			Title:       r.EventName,
			Description: r.Location + " · " + r.Timestamp,
			Icon:        icon,
			Details:     strings.Split(r.Text, "\n"),
			Expanded:    expanded,
		})
	}
	list.SetItems(items)
	list.Select(m.reportIdx)
	list.SetFocused(true)

	return lipgloss.JoinVertical(lipgloss.Left, card, "", list.Render())
}
