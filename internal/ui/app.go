package ui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/intake"
	"github.com/yildizm/RoadReport/internal/logger"
	"github.com/yildizm/RoadReport/internal/state"
	"github.com/yildizm/RoadReport/internal/ui/components"
)

const (
	cardWidth  = 32
	maxColumns = 3
)

// App is the main Bubble Tea model. All page and session data lives in
// state.State; App only holds cursors and transient view notes.
type App struct {
	opts Options
	log  *logger.Logger
	st   state.State

	width    int
	height   int
	quitting bool

	focus     uploadFocus
	fileIdx   int
	eventIdx  int
	prompt    *pathPrompt
	status    string
	resultIdx int
	reportIdx int

	progress    *components.ProgressBar
	lastMessage string
	detailNote  string
}

// NewApp creates the main model
func NewApp(opts Options) *App {
	if opts.Log == nil {
		opts.Log = logger.New("ui", nil)
	}
	if opts.Resolver == nil {
		opts.Resolver = intake.NewResolver(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := &App{
		opts: opts,
		log:  opts.Log,
		st:   state.New(),
	}
	if len(opts.Files) > 0 {
		m.st = state.Apply(m.st, state.AddFiles{Files: opts.Files})
	}
	if opts.Page != "" {
		m.st = state.Apply(m.st, state.Navigate{Page: opts.Page})
	}
	return m
}

// State returns a snapshot of the application state
func (m *App) State() state.State {
	return m.st
}

// Init starts the liveness probe and the drop folder subscription
func (m *App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.opts.Analyzer != nil {
		cmds = append(cmds, healthCmd(m.opts.Analyzer))
	}
	if cmd := waitForDrop(m.opts.Drops); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		if !m.st.Submitting || m.progress == nil {
			return m, nil
		}
		m.progress.Step()
		return m, tick()

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case healthMsg:
		m.handleHealth(msg)
		return m, nil

	case filesPickedMsg:
		m.handlePicked(msg)
		return m, nil

	case droppedFilesMsg:
		added := m.addFiles(msg.files)
		m.status = fmt.Sprintf("added %d file(s) from %s", added, m.opts.DropDir)
		return m, waitForDrop(m.opts.Drops)

	case dropClosedMsg:
		m.log.Debug("drop folder watcher stopped")
		return m, nil

	case copyDoneMsg:
		return m.handleCopyDone(msg)

	case copyRevertMsg:
		m.st = state.Apply(m.st, state.CopyReverted{Seq: msg.seq})
		return m, nil

	case mediaOpenedMsg:
		if msg.err != nil {
			m.log.WarnWithFields("failed to open media", []logger.Field{logger.F("ref", msg.ref), logger.Error(msg.err)})
			m.detailNote = "Could not open media: " + msg.err.Error()
		} else {
			m.detailNote = "Opened " + msg.ref
		}
		return m, nil
	}

	return m, nil
}

func (m *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}

	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	}

	if m.st.DetailOpen() {
		return m.handleDetailKey(key)
	}

	if page, ok := pageForKey(key); ok {
		m.navigate(page)
		return m, nil
	}

	switch m.st.Page {
	case common.PageLanding:
		if key == "enter" {
			m.navigate(common.PageUpload)
		}
		return m, nil
	case common.PageUpload:
		return m.handleUploadKey(key)
	case common.PageResults:
		return m.handleResultsKey(key)
	case common.PageProfile:
		return m.handleProfileKey(key)
	}
	return m, nil
}

func pageForKey(key string) (common.Page, bool) {
	switch key {
	case "1":
		return common.PageLanding, true
	case "2":
		return common.PageUpload, true
	case "3":
		return common.PageResults, true
	case "4":
		return common.PageProfile, true
	}
	return "", false
}

func (m *App) navigate(page common.Page) {
	m.st = state.Apply(m.st, state.Navigate{Page: page})
	m.log.DebugWithFields("navigate", []logger.Field{logger.F("page", string(page))})
}

// Upload page

func (m *App) handleUploadKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "tab", "shift+tab":
		if m.focus == focusFiles {
			m.focus = focusEvents
		} else {
			m.focus = focusFiles
		}
	case "up", "k":
		m.moveUploadCursor(-1)
	case "down", "j":
		m.moveUploadCursor(1)
	case " ", "enter":
		if m.focus == focusEvents {
			catalog := common.Catalog()
			m.st = state.Apply(m.st, state.ToggleEvent{Category: catalog[m.eventIdx].ID})
		}
	case "r", "delete":
		if m.focus == focusFiles && len(m.st.Files) > 0 {
			removed := m.st.Files[m.fileIdx]
			m.st = state.Apply(m.st, state.RemoveFile{Index: m.fileIdx})
			m.fileIdx = clamp(m.fileIdx, len(m.st.Files))
			m.status = "removed " + removed.Name
		}
	case "o":
		if m.opts.Picker == nil {
			m.status = "file picker unavailable"
			return m, nil
		}
		m.status = "waiting for file picker..."
		return m, pickCmd(m.opts.Picker)
	case "a":
		m.prompt = &pathPrompt{}
	case "s":
		return m, m.submit()
	}
	return m, nil
}

func (m *App) moveUploadCursor(delta int) {
	if m.focus == focusFiles {
		m.fileIdx = clamp(m.fileIdx+delta, len(m.st.Files))
		return
	}
	m.eventIdx = clamp(m.eventIdx+delta, len(common.Catalog()))
}

func (m *App) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.prompt = nil
	case tea.KeyEnter:
		paths := intake.ParsePathList(m.prompt.String())
		m.prompt = nil
		if len(paths) > 0 {
			m.addPaths(paths)
		}
	case tea.KeyBackspace:
		if n := len(m.prompt.value); n > 0 {
			m.prompt.value = m.prompt.value[:n-1]
		}
	case tea.KeySpace:
		m.prompt.value = append(m.prompt.value, ' ')
	case tea.KeyRunes:
		m.prompt.value = append(m.prompt.value, msg.Runes...)
	}
	return m, nil
}

func (m *App) handlePicked(msg filesPickedMsg) {
	switch {
	case errors.Is(msg.err, intake.ErrPickCanceled):
		m.status = "file selection canceled"
	case msg.err != nil:
		m.log.WarnWithFields("file picker failed", []logger.Field{logger.Error(msg.err)})
		m.status = "file picker failed: " + msg.err.Error()
	default:
		m.addPaths(msg.paths)
	}
}

// addPaths resolves paths into candidates and appends the videos
func (m *App) addPaths(paths []string) {
	files, errs := m.opts.Resolver.Candidates(paths)
	for _, err := range errs {
		m.log.WarnWithFields("skipping path", []logger.Field{logger.Error(err)})
	}
	added := m.addFiles(files)
	skipped := len(paths) - added
	if skipped > 0 {
		m.status = fmt.Sprintf("added %d file(s), skipped %d", added, skipped)
		return
	}
	m.status = fmt.Sprintf("added %d file(s)", added)
}

// addFiles applies the intake transition and reports how many were kept
func (m *App) addFiles(files []common.PendingFile) int {
	_, rejected := intake.SplitVideos(files)
	for _, f := range rejected {
		m.log.DebugWithFields("dropping non-video candidate", []logger.Field{
			logger.F("file", f.Name), logger.F("media_type", f.MediaType),
		})
	}
	before := len(m.st.Files)
	m.st = state.Apply(m.st, state.AddFiles{Files: files})
	return len(m.st.Files) - before
}

func (m *App) submit() tea.Cmd {
	if !m.st.CanSubmit() {
		return nil
	}
	m.st = state.Apply(m.st, state.SubmitStarted{})
	m.progress = components.NewProgressBar(40, m.opts.Now())
	m.progress.Palette = GetTheme().Palette()
	m.progress.SetLabel("Analyzing videos")

	files := m.st.Files
	events := m.st.Selected.Clone()
	m.log.InfoWithFields("submission started", []logger.Field{
		logger.Count(len(files)), logger.F("events", events.Tags()),
	})
	return tea.Batch(submitCmd(m.opts.Analyzer, files, events), tick())
}

func (m *App) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	var elapsed time.Duration
	if m.progress != nil {
		elapsed = m.opts.Now().Sub(m.progress.StartTime)
	}
	m.progress = nil

	if msg.err != nil {
		m.log.ErrorWithFields("submission failed", []logger.Field{logger.Error(msg.err), logger.Duration(elapsed)})
		m.st = state.Apply(m.st, state.SubmitFailed{Err: msg.err.Error()})
		return m, nil
	}

	m.st = state.Apply(m.st, state.SubmitSucceeded{Results: msg.resp.Results})
	m.lastMessage = msg.resp.Message
	m.resultIdx = 0
	m.log.InfoWithFields("submission completed", []logger.Field{
		logger.Count(len(msg.resp.Results)), logger.Duration(elapsed), logger.F("message", msg.resp.Message),
	})
	return m, nil
}

func (m *App) handleHealth(msg healthMsg) {
	if msg.err != nil {
		m.log.WarnWithFields("health probe failed", []logger.Field{logger.Error(msg.err)})
		return
	}
	m.log.InfoWithFields("health probe", []logger.Field{logger.F("status", msg.resp.Status)})
}

// Results page

func (m *App) columns() int {
	width := m.width
	if width == 0 {
		width = 80
	}
	return components.ColumnsFor(width, cardWidth, maxColumns)
}

func (m *App) handleResultsKey(key string) (tea.Model, tea.Cmd) {
	n := len(m.st.Results)
	cols := m.columns()
	switch key {
	case "left", "h":
		if m.resultIdx%cols > 0 {
			m.resultIdx--
		}
	case "right", "l":
		if m.resultIdx%cols < cols-1 && m.resultIdx+1 < n {
			m.resultIdx++
		}
	case "up", "k":
		if m.resultIdx-cols >= 0 {
			m.resultIdx -= cols
		}
	case "down", "j":
		if m.resultIdx+cols < n {
			m.resultIdx += cols
		}
	case "enter":
		if n > 0 {
			m.detailNote = ""
			m.st = state.Apply(m.st, state.OpenDetail{Index: m.resultIdx})
		}
	case "n":
		m.navigate(common.PageUpload)
	}
	return m, nil
}

func (m *App) handleDetailKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "x":
		m.st = state.Apply(m.st, state.CloseDetail{})
	case "c":
		return m, copyCmd(m.opts.Clipboard, *m.st.Detail, m.opts.Now())
	case "p":
		return m, openCmd(m.opts.Open, m.st.Detail.VideoURL)
	}
	return m, nil
}

func (m *App) handleCopyDone(msg copyDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.WarnWithFields("copy report failed", []logger.Field{logger.Error(msg.err)})
		m.detailNote = "Copy failed: " + msg.err.Error()
		return m, nil
	}
	m.st = state.Apply(m.st, state.ReportCopied{Record: msg.record, Notice: msg.notice})
	m.log.InfoWithFields("report copied", []logger.Field{logger.F("result", msg.record.ResultID)})
	return m, revertAfter(m.st.CopySeq)
}

// Profile page

func (m *App) handleProfileKey(key string) (tea.Model, tea.Cmd) {
	reports := m.st.RecentReports()
	switch key {
	case "up", "k":
		m.reportIdx = clamp(m.reportIdx-1, len(reports))
	case "down", "j":
		m.reportIdx = clamp(m.reportIdx+1, len(reports))
	case "enter", " ":
		if len(reports) > 0 {
			m.reportIdx = clamp(m.reportIdx, len(reports))
			m.st = state.Apply(m.st, state.ToggleReport{ID: reports[m.reportIdx].ID})
		}
	}
	return m, nil
}

// clamp keeps i inside [0, n)
func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// RunApp starts the main TUI and blocks until it exits
func RunApp(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
