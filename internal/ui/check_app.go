package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/RoadReport/internal/client"
	"github.com/yildizm/RoadReport/internal/emoji"
	"github.com/yildizm/RoadReport/internal/logger"
	"github.com/yildizm/RoadReport/internal/ui/components"
)

// checkSlot is the status/error slot owned by one check
type checkSlot struct {
	running bool
	result  *client.CheckResult
}

// CheckApp is the connectivity check model. Each check only writes its own
// slot, so both may run at once.
type CheckApp struct {
	checker Checker
	apiBase string
	log     *logger.Logger

	slots   map[client.Check]*checkSlot
	spinner *components.Spinner
	ticking bool

	width    int
	quitting bool
}

// NewCheckApp creates the connectivity check model
func NewCheckApp(checker Checker, apiBase string, log *logger.Logger) *CheckApp {
	if log == nil {
		log = logger.New("check", nil)
	}
	spinner := components.NewSpinner("")
	spinner.Palette = GetTheme().Palette()
	return &CheckApp{
		checker: checker,
		apiBase: apiBase,
		log:     log,
		slots: map[client.Check]*checkSlot{
			client.CheckConnect: {},
			client.CheckDB:      {},
		},
		spinner: spinner,
	}
}

// Result returns the last result of check, if any
func (m *CheckApp) Result(check client.Check) (client.CheckResult, bool) {
	slot := m.slots[check]
	if slot == nil || slot.result == nil {
		return client.CheckResult{}, false
	}
	return *slot.result, true
}

// Running reports whether check is in flight
func (m *CheckApp) Running(check client.Check) bool {
	slot := m.slots[check]
	return slot != nil && slot.running
}

// Init implements tea.Model
func (m *CheckApp) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *CheckApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "c":
			return m, m.start(client.CheckConnect)
		case "d":
			return m, m.start(client.CheckDB)
		}

	case checkDoneMsg:
		slot := m.slots[msg.result.Check]
		if slot == nil {
			return m, nil
		}
		r := msg.result
		slot.running = false
		slot.result = &r
		if r.OK() {
			m.log.InfoWithFields("check passed", []logger.Field{logger.F("check", string(r.Check)), logger.Duration(r.Elapsed)})
		} else {
			m.log.WarnWithFields("check failed", []logger.Field{logger.F("check", string(r.Check)), logger.Error(r.Err)})
		}

	case tickMsg:
		if !m.anyRunning() {
			m.ticking = false
			return m, nil
		}
		m.spinner.Next()
		return m, tick()
	}
	return m, nil
}

// start clears the slot of check and launches it
func (m *CheckApp) start(check client.Check) tea.Cmd {
	slot := m.slots[check]
	if slot.running {
		return nil
	}
	slot.running = true
	slot.result = nil

	cmds := []tea.Cmd{checkCmd(m.checker, check)}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

func (m *CheckApp) anyRunning() bool {
	for _, slot := range m.slots {
		if slot.running {
			return true
		}
	}
	return false
}

// View renders the check page
func (m *CheckApp) View() string {
	if m.quitting {
		return ""
	}
	styles := GetStyles()

	rows := []string{
		styles.Header.Render(emoji.GetEmoji("signal") + " Connectivity Check"),
		styles.Muted.Render("API base: " + m.apiBase),
		"",
		m.renderSlot(styles, "c", client.CheckConnect),
		m.renderSlot(styles, "d", client.CheckDB),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
		"",
		styles.Muted.Render("c connect check • d db check • q quit"),
	)
	return content
}

func (m *CheckApp) renderSlot(styles *Styles, key string, check client.Check) string {
	label := styles.Subheader.Render(fmt.Sprintf("[%s] %-9s", key, check.Label()))
	slot := m.slots[check]

	var status string
	switch {
	case slot.running:
		status = m.spinner.Render() + styles.Muted.Render(" checking...")
	case slot.result == nil:
		status = styles.Muted.Render("not run")
	case slot.result.OK():
		status = styles.Success.Render(emoji.GetEmoji("success")+" "+slot.result.Status) +
			styles.Muted.Render(" ("+components.FormatDuration(slot.result.Elapsed)+")")
	default:
		status = styles.Error.Render(emoji.GetEmoji("error") + " " + slot.result.Error)
	}
	return label + " " + status
}

// RunCheck starts the connectivity check TUI and blocks until it exits
func RunCheck(checker Checker, apiBase string, log *logger.Logger) error {
	p := tea.NewProgram(NewCheckApp(checker, apiBase, log))
	_, err := p.Run()
	return err
}
