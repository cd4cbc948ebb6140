package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/RoadReport/internal/client"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/intake"
	"github.com/yildizm/RoadReport/internal/report"
)

// copyConfirmDuration is how long the copied state stays visible
const copyConfirmDuration = 2 * time.Second

var (
	errNoAnalyzer  = errors.New("no analysis service configured")
	errNoMediaRef  = errors.New("result has no media reference")
	errNoOpener    = errors.New("no media opener available")
	errNoClipboard = errors.New("no clipboard provider configured")
)

type tickMsg time.Time

type submitDoneMsg struct {
	resp *client.UploadResponse
	err  error
}

type healthMsg struct {
	resp *client.HealthResponse
	err  error
}

type filesPickedMsg struct {
	paths []string
	err   error
}

type droppedFilesMsg struct {
	files []common.PendingFile
}

type dropClosedMsg struct{}

type copyDoneMsg struct {
	record common.ReportRecord
	notice string
	err    error
}

type copyRevertMsg struct {
	seq int
}

type mediaOpenedMsg struct {
	ref string
	err error
}

type checkDoneMsg struct {
	result client.CheckResult
}

// tick drives spinner and progress animation
func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func submitCmd(a Analyzer, files []common.PendingFile, events common.SelectedEvents) tea.Cmd {
	return func() tea.Msg {
		if a == nil {
			return submitDoneMsg{err: errNoAnalyzer}
		}
		resp, err := a.Upload(context.Background(), files, events)
		return submitDoneMsg{resp: resp, err: err}
	}
}

func healthCmd(a Analyzer) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.Health(context.Background())
		return healthMsg{resp: resp, err: err}
	}
}

func pickCmd(p intake.Picker) tea.Cmd {
	return func() tea.Msg {
		paths, err := p.Pick()
		return filesPickedMsg{paths: paths, err: err}
	}
}

// waitForDrop blocks on the next watcher batch
func waitForDrop(ch <-chan []common.PendingFile) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		files, ok := <-ch
		if !ok {
			return dropClosedMsg{}
		}
		return droppedFilesMsg{files: files}
	}
}

func copyCmd(p report.ClipboardProvider, r common.AnalysisResult, now time.Time) tea.Cmd {
	return func() tea.Msg {
		if p == nil {
			return copyDoneMsg{err: errNoClipboard}
		}
		record, notice, err := report.Copy(p, r, now)
		return copyDoneMsg{record: record, notice: notice, err: err}
	}
}

func revertAfter(seq int) tea.Cmd {
	return revertAfterDelay(seq, copyConfirmDuration)
}

func revertAfterDelay(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return copyRevertMsg{seq: seq}
	})
}

func openCmd(open MediaOpener, ref string) tea.Cmd {
	return func() tea.Msg {
		switch {
		case ref == "":
			return mediaOpenedMsg{err: errNoMediaRef}
		case open == nil:
			return mediaOpenedMsg{ref: ref, err: errNoOpener}
		}
		return mediaOpenedMsg{ref: ref, err: open(ref)}
	}
}

func checkCmd(c Checker, check client.Check) tea.Cmd {
	return func() tea.Msg {
		return checkDoneMsg{result: c.Run(context.Background(), check)}
	}
}
