// Package state holds the application state and its pure transitions.
//
// Every user action and network completion is expressed as an Event. Apply
// never mutates its input; the returned State shares no mutable storage with
// the previous one, so any sequence of events can be replayed in tests.
package state

import (
	"github.com/yildizm/RoadReport/internal/common"
)

// State is the complete session state of the interactive client
type State struct {
	Page common.Page

	Files    []common.PendingFile
	Selected common.SelectedEvents

	Submitting  bool
	SubmitError string

	Results []common.AnalysisResult
	Detail  *common.AnalysisResult

	Copied     bool
	CopySeq    int
	CopyNotice string

	History  []common.ReportRecord
	Expanded map[string]bool
}

// New returns the initial state: landing page, nothing collected
func New() State {
	return State{
		Page:     common.PageLanding,
		Selected: common.NewSelectedEvents(),
		Expanded: map[string]bool{},
	}
}

// CanSubmit reports whether a submission may start
func (s State) CanSubmit() bool {
	return len(s.Files) > 0 && s.Selected.Len() > 0 && !s.Submitting
}

// DetailOpen reports whether the detail overlay is shown
func (s State) DetailOpen() bool {
	return s.Detail != nil
}

// Event is a discrete input to Apply
type Event interface {
	event()
}

// Navigate switches the active page unconditionally
type Navigate struct{ Page common.Page }

// AddFiles appends the video candidates and drops everything else
type AddFiles struct{ Files []common.PendingFile }

// RemoveFile removes the file at Index
type RemoveFile struct{ Index int }

// ToggleEvent flips membership of a catalog tag
type ToggleEvent struct{ Category common.EventCategory }

// SubmitStarted marks a submission in flight
type SubmitStarted struct{}

// SubmitSucceeded delivers the parsed results of a submission
type SubmitSucceeded struct{ Results []common.AnalysisResult }

// SubmitFailed reports a failed submission
type SubmitFailed struct{ Err string }

// OpenDetail opens the overlay for the result at Index
type OpenDetail struct{ Index int }

// CloseDetail dismisses the overlay
type CloseDetail struct{}

// ReportCopied records a report written to the clipboard
type ReportCopied struct {
	Record common.ReportRecord
	Notice string
}

// CopyReverted ends the copy confirmation started with sequence Seq
type CopyReverted struct{ Seq int }

// ToggleReport expands or collapses a history row
type ToggleReport struct{ ID string }

func (Navigate) event()        {}
func (AddFiles) event()        {}
func (RemoveFile) event()      {}
func (ToggleEvent) event()     {}
func (SubmitStarted) event()   {}
func (SubmitSucceeded) event() {}
func (SubmitFailed) event()    {}
func (OpenDetail) event()      {}
func (CloseDetail) event()     {}
func (ReportCopied) event()    {}
func (CopyReverted) event()    {}
func (ToggleReport) event()    {}

// Apply returns the state that results from handling e
func Apply(s State, e Event) State {
	switch ev := e.(type) {
	case Navigate:
		s.Page = ev.Page
		if ev.Page != common.PageResults {
			s.Detail = nil
		}

	case AddFiles:
		files := cloneFiles(s.Files)
		for _, f := range ev.Files {
			if common.IsVideoMediaType(f.MediaType) {
				files = append(files, f)
			}
		}
		s.Files = files

	case RemoveFile:
		if ev.Index < 0 || ev.Index >= len(s.Files) {
			return s
		}
		files := make([]common.PendingFile, 0, len(s.Files)-1)
		files = append(files, s.Files[:ev.Index]...)
		s.Files = append(files, s.Files[ev.Index+1:]...)

	case ToggleEvent:
		s.Selected = s.Selected.Toggle(ev.Category)

	case SubmitStarted:
		if !s.CanSubmit() {
			return s
		}
		s.Submitting = true
		s.SubmitError = ""

	case SubmitSucceeded:
		if !s.Submitting {
			return s
		}
		s.Submitting = false
		s.Results = cloneResults(ev.Results)
		s.Detail = nil
		s.Page = common.PageResults

	case SubmitFailed:
		if !s.Submitting {
			return s
		}
		s.Submitting = false
		s.SubmitError = ev.Err

	case OpenDetail:
		if ev.Index < 0 || ev.Index >= len(s.Results) {
			return s
		}
		r := s.Results[ev.Index]
		s.Detail = &r

	case CloseDetail:
		s.Detail = nil

	case ReportCopied:
		s.Copied = true
		s.CopySeq++
		s.CopyNotice = ev.Notice
		history := make([]common.ReportRecord, 0, len(s.History)+1)
		history = append(history, s.History...)
		s.History = append(history, ev.Record)

	case CopyReverted:
		if ev.Seq == s.CopySeq {
			s.Copied = false
		}

	case ToggleReport:
		expanded := make(map[string]bool, len(s.Expanded)+1)
		for k, v := range s.Expanded {
			expanded[k] = v
		}
		if expanded[ev.ID] {
			delete(expanded, ev.ID)
		} else {
			expanded[ev.ID] = true
		}
		s.Expanded = expanded
	}
	return s
}

// RecentReports returns the session history newest first
func (s State) RecentReports() []common.ReportRecord {
	out := make([]common.ReportRecord, len(s.History))
	for i, r := range s.History {
		out[len(s.History)-1-i] = r
	}
	return out
}

func cloneFiles(in []common.PendingFile) []common.PendingFile {
	out := make([]common.PendingFile, len(in), len(in)+4)
	copy(out, in)
	return out
}

func cloneResults(in []common.AnalysisResult) []common.AnalysisResult {
	out := make([]common.AnalysisResult, len(in))
	copy(out, in)
	return out
}
