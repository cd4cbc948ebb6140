package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/RoadReport/internal/client"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/config"
	"github.com/yildizm/RoadReport/internal/intake"
)

type fakeAnalyzer struct {
	resp   *client.UploadResponse
	err    error
	files  int
	events []common.EventCategory
}

func (f *fakeAnalyzer) Upload(_ context.Context, files []common.PendingFile, events common.SelectedEvents) (*client.UploadResponse, error) {
	f.files = len(files)
	f.events = events.Tags()
	return f.resp, f.err
}

func (f *fakeAnalyzer) Health(context.Context) (*client.HealthResponse, error) {
	return &client.HealthResponse{Status: "ok"}, nil
}

type fakeClipboard struct {
	ok     bool
	writes []string
}

func (c *fakeClipboard) Write(text string) bool {
	c.writes = append(c.writes, text)
	return c.ok
}

type fakePicker struct {
	paths []string
	err   error
}

func (p *fakePicker) Pick() ([]string, error) {
	return p.paths, p.err
}

var fixedNow = time.Date(2026, 1, 22, 14, 40, 0, 0, time.UTC)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func video(name string) common.PendingFile {
	return common.PendingFile{Name: name, Path: "/videos/" + name, Size: 2 << 20, MediaType: "video/mp4"}
}

func sampleResults(n int) []common.AnalysisResult {
	out := make([]common.AnalysisResult, n)
	for i := range out {
		out[i] = common.AnalysisResult{
			ID:          string(rune('1' + i)),
			VideoURL:    "/media/clip.mp4",
			Timestamp:   "2026-01-22 14:32:15",
			Location:    "서울시 강남구 테헤란로 123",
			EventType:   common.EventSpeeding,
			EventName:   "과속",
			Description: "제한속도 60km/h 구간에서 95km/h로 주행",
			Severity:    common.SeverityHigh,
		}
	}
	return out
}

func newTestApp(opts Options) *App {
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewApp(opts)
}

// readyApp returns an app on the upload page with one video and the speeding
// event selected
func readyApp(t *testing.T, analyzer Analyzer) *App {
	t.Helper()
	m := newTestApp(Options{Analyzer: analyzer, Files: []common.PendingFile{video("a.mp4")}})
	press(m, "2", "tab", " ")
	if !m.State().CanSubmit() {
		t.Fatal("app should be ready to submit")
	}
	return m
}

// withResults drives a successful submission carrying results
func withResults(t *testing.T, results []common.AnalysisResult) *App {
	t.Helper()
	m := readyApp(t, &fakeAnalyzer{})
	press(m, "s")
	m.Update(submitDoneMsg{resp: &client.UploadResponse{Message: "done", Results: results}})
	return m
}

func TestInitialPage(t *testing.T) {
	m := newTestApp(Options{Page: common.PageUpload, Files: []common.PendingFile{video("a.mp4")}})
	if m.State().Page != common.PageUpload {
		t.Errorf("initial page = %s, want upload", m.State().Page)
	}
	if len(m.State().Files) != 1 {
		t.Errorf("files = %d, want 1", len(m.State().Files))
	}
}

func TestNavigationKeys(t *testing.T) {
	m := newTestApp(Options{})
	if m.State().Page != common.PageLanding {
		t.Fatalf("initial page = %s, want landing", m.State().Page)
	}

	press(m, "enter")
	if m.State().Page != common.PageUpload {
		t.Errorf("enter on landing: page = %s, want upload", m.State().Page)
	}

	tests := []struct {
		key  string
		want common.Page
	}{
		{"3", common.PageResults},
		{"4", common.PageProfile},
		{"1", common.PageLanding},
		{"2", common.PageUpload},
	}
	for _, tt := range tests {
		press(m, tt.key)
		if m.State().Page != tt.want {
			t.Errorf("key %s: page = %s, want %s", tt.key, m.State().Page, tt.want)
		}
	}
}

func TestQuit(t *testing.T) {
	m := newTestApp(Options{})
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestInitProbesHealth(t *testing.T) {
	if cmd := newTestApp(Options{}).Init(); cmd != nil {
		t.Error("Init without collaborators should not schedule work")
	}

	m := newTestApp(Options{Analyzer: &fakeAnalyzer{}})
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should probe health")
	}
	// a single command is returned unwrapped by tea.Batch
	msg, ok := cmd().(healthMsg)
	if !ok || msg.err != nil || msg.resp.Status != "ok" {
		t.Errorf("health probe message = %#v", msg)
	}
	m.Update(msg)
}

func TestTypedPathIntake(t *testing.T) {
	dir := t.TempDir()
	clip := filepath.Join(dir, "clip.mp4")
	notes := filepath.Join(dir, "notes.txt")
	for _, p := range []string{clip, notes} {
		if err := os.WriteFile(p, []byte("data"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	m := newTestApp(Options{})
	press(m, "2", "a")
	if m.prompt == nil {
		t.Fatal("a should open the path prompt")
	}
	press(m, clip+" "+notes+"x", "backspace", "enter")

	st := m.State()
	if len(st.Files) != 1 || st.Files[0].Name != "clip.mp4" {
		t.Fatalf("files = %+v, want only clip.mp4", st.Files)
	}
	if !strings.Contains(m.status, "skipped 1") {
		t.Errorf("status = %q, want skipped count", m.status)
	}

	press(m, "a", "ignored", "esc")
	if m.prompt != nil || len(m.State().Files) != 1 {
		t.Error("esc should close the prompt without adding files")
	}
}

func TestRemoveFile(t *testing.T) {
	m := newTestApp(Options{Files: []common.PendingFile{video("a.mp4"), video("b.mp4"), video("c.mp4")}})
	press(m, "2", "down", "r")

	st := m.State()
	if len(st.Files) != 2 || st.Files[0].Name != "a.mp4" || st.Files[1].Name != "c.mp4" {
		t.Fatalf("files after remove = %+v", st.Files)
	}

	press(m, "down", "r", "r", "r")
	if len(m.State().Files) != 0 {
		t.Errorf("all files should be removable, got %d", len(m.State().Files))
	}
}

func TestPickerResults(t *testing.T) {
	m := newTestApp(Options{})
	press(m, "2", "o")
	if m.status != "file picker unavailable" {
		t.Errorf("status without picker = %q", m.status)
	}

	m = newTestApp(Options{Picker: &fakePicker{err: intake.ErrPickCanceled}})
	cmd := press(m, "2", "o")
	if cmd == nil {
		t.Fatal("o should launch the picker")
	}
	m.Update(cmd())
	if m.status != "file selection canceled" {
		t.Errorf("status after cancel = %q", m.status)
	}

	m.Update(filesPickedMsg{err: errors.New("no display")})
	if !strings.Contains(m.status, "no display") {
		t.Errorf("status after failure = %q", m.status)
	}
}

func TestDroppedFiles(t *testing.T) {
	drops := make(chan []common.PendingFile, 1)
	m := newTestApp(Options{Drops: drops, DropDir: "/tmp/drop"})

	_, cmd := m.Update(droppedFilesMsg{files: []common.PendingFile{
		video("a.mp4"),
		{Name: "readme.txt", MediaType: "text/plain"},
	}})
	if len(m.State().Files) != 1 {
		t.Fatalf("files = %d, want 1", len(m.State().Files))
	}
	if cmd == nil {
		t.Fatal("the drop subscription should be renewed")
	}

	close(drops)
	if _, ok := cmd().(dropClosedMsg); !ok {
		t.Error("closed drop channel should end the subscription")
	}
}

func TestSubmitDisabledUntilReady(t *testing.T) {
	tests := []struct {
		name  string
		files []common.PendingFile
		keys  []string
	}{
		{"nothing", nil, []string{"2"}},
		{"files only", []common.PendingFile{video("a.mp4")}, []string{"2"}},
		{"events only", nil, []string{"2", "tab", " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestApp(Options{Analyzer: &fakeAnalyzer{}, Files: tt.files})
			press(m, tt.keys...)
			if cmd := press(m, "s"); cmd != nil {
				t.Error("submit should be a no-op")
			}
			if m.State().Submitting {
				t.Error("should not be submitting")
			}
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{resp: &client.UploadResponse{Message: "분석 완료", Results: sampleResults(2)}}
	m := readyApp(t, analyzer)

	if cmd := press(m, "s"); cmd == nil {
		t.Fatal("submit should return commands")
	}
	if !m.State().Submitting {
		t.Fatal("should be submitting")
	}
	if cmd := press(m, "s"); cmd != nil {
		t.Error("second submit while in progress should be a no-op")
	}
	if !strings.Contains(m.View(), "Analyzing videos") {
		t.Error("upload page should show progress while submitting")
	}

	msg := submitCmd(analyzer, m.State().Files, m.State().Selected)()
	m.Update(msg)

	st := m.State()
	if st.Submitting || st.Page != common.PageResults || len(st.Results) != 2 {
		t.Fatalf("after success: submitting=%v page=%s results=%d", st.Submitting, st.Page, len(st.Results))
	}
	if analyzer.files != 1 || len(analyzer.events) != 1 || analyzer.events[0] != common.EventSpeeding {
		t.Errorf("upload got files=%d events=%v", analyzer.files, analyzer.events)
	}
	if !strings.Contains(m.View(), "분석 완료") {
		t.Error("results page should show the service message")
	}
}

func TestSubmitFailure(t *testing.T) {
	m := readyApp(t, &fakeAnalyzer{})
	press(m, "s")
	m.Update(submitDoneMsg{err: errors.New("connection refused")})

	st := m.State()
	if st.Submitting || st.Page != common.PageUpload {
		t.Fatalf("after failure: submitting=%v page=%s", st.Submitting, st.Page)
	}
	if st.SubmitError != "connection refused" {
		t.Errorf("SubmitError = %q", st.SubmitError)
	}
	if !strings.Contains(m.View(), "connection refused") {
		t.Error("upload page should show the submission error")
	}

	press(m, "s")
	if m.State().SubmitError != "" {
		t.Error("a new submission should clear the error")
	}
}

func TestSubmitWithoutAnalyzer(t *testing.T) {
	msg := submitCmd(nil, []common.PendingFile{video("a.mp4")}, common.NewSelectedEvents(common.EventSignal))()
	done, ok := msg.(submitDoneMsg)
	if !ok || !errors.Is(done.err, errNoAnalyzer) {
		t.Errorf("submitCmd(nil) = %#v", msg)
	}
}

func TestTickOnlyWhileSubmitting(t *testing.T) {
	m := newTestApp(Options{})
	if _, cmd := m.Update(tickMsg(fixedNow)); cmd != nil {
		t.Error("idle tick should not reschedule")
	}

	m = readyApp(t, &fakeAnalyzer{})
	press(m, "s")
	if _, cmd := m.Update(tickMsg(fixedNow)); cmd == nil {
		t.Error("tick should reschedule while submitting")
	}
}

func TestResultsGridNavigation(t *testing.T) {
	m := withResults(t, sampleResults(5))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.columns() != 3 {
		t.Fatalf("columns = %d, want 3", m.columns())
	}

	steps := []struct {
		key  string
		want int
	}{
		{"right", 1},
		{"l", 2},
		{"right", 2},
		{"down", 2},
		{"left", 1},
		{"j", 4},
		{"right", 4},
		{"up", 1},
		{"h", 0},
		{"k", 0},
	}
	for _, s := range steps {
		press(m, s.key)
		if m.resultIdx != s.want {
			t.Fatalf("after %s: cursor = %d, want %d", s.key, m.resultIdx, s.want)
		}
	}

	press(m, "j", "enter")
	st := m.State()
	if !st.DetailOpen() || st.Detail.ID != st.Results[3].ID {
		t.Fatalf("detail = %+v, want result at index 3", st.Detail)
	}
}

func TestEmptyResults(t *testing.T) {
	m := withResults(t, nil)
	if m.State().Page != common.PageResults || len(m.State().Results) != 0 {
		t.Fatal("success without results should show an empty results page")
	}
	if !strings.Contains(m.View(), "No violations detected") {
		t.Error("empty results should say so")
	}
	press(m, "enter")
	if m.State().DetailOpen() {
		t.Error("enter on empty results should not open a detail")
	}
	press(m, "n")
	if m.State().Page != common.PageUpload {
		t.Error("n should start a new analysis")
	}
}

func TestDetailOverlay(t *testing.T) {
	var opened []string
	m := withResults(t, sampleResults(1))
	m.opts.Open = func(ref string) error {
		opened = append(opened, ref)
		return nil
	}

	press(m, "enter")
	if !m.State().DetailOpen() {
		t.Fatal("enter should open the detail")
	}
	view := m.View()
	for _, want := range []string{"#1 과속", "서울시 강남구 테헤란로 123", "/media/clip.mp4", "HIGH"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}

	// page keys are inert while the overlay is open
	press(m, "2")
	if m.State().Page != common.PageResults || !m.State().DetailOpen() {
		t.Error("overlay should stay open on page keys")
	}

	cmd := press(m, "p")
	m.Update(cmd())
	if len(opened) != 1 || opened[0] != "/media/clip.mp4" {
		t.Errorf("opened = %v", opened)
	}

	press(m, "x")
	if m.State().DetailOpen() {
		t.Error("x should close the detail")
	}
	press(m, "enter", "esc")
	if m.State().DetailOpen() {
		t.Error("esc should close the detail")
	}
}

func TestOpenMediaErrors(t *testing.T) {
	if msg := openCmd(nil, "")().(mediaOpenedMsg); !errors.Is(msg.err, errNoMediaRef) {
		t.Errorf("empty ref err = %v", msg.err)
	}
	if msg := openCmd(nil, "/x.mp4")().(mediaOpenedMsg); !errors.Is(msg.err, errNoOpener) {
		t.Errorf("nil opener err = %v", msg.err)
	}

	m := withResults(t, sampleResults(1))
	press(m, "enter")
	m.Update(mediaOpenedMsg{ref: "/x.mp4", err: errors.New("xdg-open missing")})
	if !strings.Contains(m.View(), "xdg-open missing") {
		t.Error("detail should show the opener error")
	}
}

func TestCopyConfirmDuration(t *testing.T) {
	if copyConfirmDuration != 2*time.Second {
		t.Errorf("copyConfirmDuration = %v, want 2s", copyConfirmDuration)
	}

	start := time.Now()
	msg := revertAfterDelay(4, 20*time.Millisecond)()
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("revert fired after %v, want at least 20ms", elapsed)
	}
	if revert, ok := msg.(copyRevertMsg); !ok || revert.seq != 4 {
		t.Errorf("revert msg = %#v, want copyRevertMsg{seq: 4}", msg)
	}
}

func TestCopyReportAndRevert(t *testing.T) {
	clip := &fakeClipboard{ok: true}
	m := withResults(t, sampleResults(1))
	m.opts.Clipboard = clip

	press(m, "enter")
	cmd := press(m, "c")
	_, revert := m.Update(cmd())
	if revert == nil {
		t.Fatal("copy should schedule a revert")
	}

	st := m.State()
	if !st.Copied || len(st.History) != 1 {
		t.Fatalf("after copy: copied=%v history=%d", st.Copied, len(st.History))
	}
	want := "[교통법규 위반 신고]\n\n발생 일시: 2026-01-22 14:32:15"
	if len(clip.writes) != 1 || !strings.HasPrefix(clip.writes[0], want) {
		t.Errorf("clipboard got %q", clip.writes)
	}
	if !strings.Contains(m.View(), "복사됨") {
		t.Error("detail should confirm the copy")
	}

	// a second copy makes the first revert stale
	m.Update(copyCmd(clip, *st.Detail, fixedNow)())
	m.Update(copyRevertMsg{seq: 1})
	if !m.State().Copied {
		t.Error("stale revert should not clear the newer copy")
	}
	m.Update(copyRevertMsg{seq: 2})
	if m.State().Copied {
		t.Error("current revert should clear the copied state")
	}
}

func TestCopyFailure(t *testing.T) {
	m := withResults(t, sampleResults(1))
	m.opts.Clipboard = &fakeClipboard{ok: false}

	press(m, "enter")
	cmd := press(m, "c")
	_, next := m.Update(cmd())
	if next != nil {
		t.Error("failed copy should not schedule a revert")
	}
	if m.State().Copied || len(m.State().History) != 0 {
		t.Error("failed copy should not change state")
	}
	if !strings.Contains(m.View(), "Copy failed") {
		t.Error("detail should show the copy failure")
	}
}

func TestProfileAccordion(t *testing.T) {
	clip := &fakeClipboard{ok: true}
	m := withResults(t, sampleResults(2))
	m.opts.Clipboard = clip
	m.opts.Profile = config.ProfileConfig{Name: "홍길동", Email: "user@example.com", JoinDate: "2025-12-01"}

	press(m, "enter")
	m.Update(press(m, "c")())
	press(m, "esc", "right", "enter")
	m.Update(press(m, "c")())
	press(m, "esc", "4")

	if m.State().Page != common.PageProfile {
		t.Fatal("4 should open the profile")
	}
	view := m.View()
	for _, want := range []string{"홍길동", "user@example.com", "Reports this session: 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("profile missing %q", want)
		}
	}
	if strings.Contains(view, "위 내용에 대해 신고합니다.") {
		t.Error("collapsed reports should hide their text")
	}

	press(m, "enter", "down", "enter")
	reports := m.State().RecentReports()
	for _, r := range reports {
		if !m.State().Expanded[r.ID] {
			t.Errorf("report %s should be expanded", r.ID)
		}
	}
	if !strings.Contains(m.View(), "위 내용에 대해 신고합니다.") {
		t.Error("expanded reports should show their text")
	}

	press(m, "up", "enter")
	if m.State().Expanded[reports[0].ID] {
		t.Error("enter should collapse an expanded report")
	}
}

func TestViewRendersPages(t *testing.T) {
	m := newTestApp(Options{DropDir: "/tmp/drop", Files: []common.PendingFile{video("road.mp4")}})

	tests := []struct {
		key   string
		wants []string
	}{
		{"1", []string{"RoadReport", "교통법규 위반 영상 분석"}},
		{"2", []string{"road.mp4", "2.00 MB", "과속", "보행자 위협", "Watching /tmp/drop", "Select at least one video"}},
		{"3", []string{"No violations detected"}},
		{"4", []string{"Recent reports"}},
	}
	for _, tt := range tests {
		press(m, tt.key)
		view := m.View()
		for _, want := range tt.wants {
			if !strings.Contains(view, want) {
				t.Errorf("page %s missing %q", tt.key, want)
			}
		}
	}
}
