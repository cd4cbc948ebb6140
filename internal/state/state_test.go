package state

import (
	"math/rand"
	"testing"
	"time"

	"github.com/yildizm/RoadReport/internal/common"
)

func video(name string) common.PendingFile {
	return common.PendingFile{Name: name, Path: "/videos/" + name, Size: 1024, MediaType: "video/mp4"}
}

func readyState() State {
	s := New()
	s = Apply(s, Navigate{Page: common.PageUpload})
	s = Apply(s, AddFiles{Files: []common.PendingFile{video("a.mp4")}})
	s = Apply(s, ToggleEvent{Category: common.EventSpeeding})
	return s
}

func TestNewStartsOnLanding(t *testing.T) {
	s := New()
	if s.Page != common.PageLanding {
		t.Errorf("Expected landing page, got %s", s.Page)
	}
	if s.CanSubmit() {
		t.Error("Expected submission disabled in the initial state")
	}
	if s.DetailOpen() {
		t.Error("Expected no detail overlay in the initial state")
	}
}

func TestNavigate(t *testing.T) {
	s := New()
	for _, p := range common.Pages() {
		s = Apply(s, Navigate{Page: p})
		if s.Page != p {
			t.Errorf("Expected page %s, got %s", p, s.Page)
		}
	}
}

func TestNavigateAwayClosesDetail(t *testing.T) {
	s := New()
	s.Results = []common.AnalysisResult{{ID: "1"}}
	s = Apply(s, Navigate{Page: common.PageResults})
	s = Apply(s, OpenDetail{Index: 0})
	if !s.DetailOpen() {
		t.Fatal("Expected detail overlay to be open")
	}

	s = Apply(s, Navigate{Page: common.PageResults})
	if !s.DetailOpen() {
		t.Error("Expected overlay to stay open when staying on results")
	}

	s = Apply(s, Navigate{Page: common.PageProfile})
	if s.DetailOpen() {
		t.Error("Expected overlay to close when leaving results")
	}
}

func TestAddFilesFiltersNonVideo(t *testing.T) {
	s := New()
	s = Apply(s, AddFiles{Files: []common.PendingFile{
		video("a.mp4"),
		{Name: "notes.txt", MediaType: "text/plain"},
		{Name: "b.mov", MediaType: "video/quicktime"},
		{Name: "photo.jpg", MediaType: "image/jpeg"},
		{Name: "unknown", MediaType: ""},
	}})

	if len(s.Files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(s.Files))
	}
	if s.Files[0].Name != "a.mp4" || s.Files[1].Name != "b.mov" {
		t.Errorf("Expected order a.mp4, b.mov, got %s, %s", s.Files[0].Name, s.Files[1].Name)
	}

	before := len(s.Files)
	s = Apply(s, AddFiles{Files: []common.PendingFile{{Name: "x.pdf", MediaType: "application/pdf"}}})
	if len(s.Files) != before {
		t.Errorf("Expected non-video candidates to leave the list unchanged")
	}
}

func TestAddFilesKeepsDuplicates(t *testing.T) {
	s := New()
	s = Apply(s, AddFiles{Files: []common.PendingFile{video("a.mp4")}})
	s = Apply(s, AddFiles{Files: []common.PendingFile{video("a.mp4")}})
	if len(s.Files) != 2 {
		t.Errorf("Expected duplicates to be kept, got %d files", len(s.Files))
	}
}

func TestRemoveFile(t *testing.T) {
	names := []string{"a.mp4", "b.mp4", "c.mp4", "d.mp4"}
	for i := range names {
		s := New()
		for _, n := range names {
			s = Apply(s, AddFiles{Files: []common.PendingFile{video(n)}})
		}

		next := Apply(s, RemoveFile{Index: i})
		if len(next.Files) != len(names)-1 {
			t.Fatalf("remove %d: expected %d files, got %d", i, len(names)-1, len(next.Files))
		}

		want := append(append([]string{}, names[:i]...), names[i+1:]...)
		for j, f := range next.Files {
			if f.Name != want[j] {
				t.Errorf("remove %d: position %d expected %s, got %s", i, j, want[j], f.Name)
			}
		}

		if len(s.Files) != len(names) {
			t.Errorf("remove %d: previous state was modified", i)
		}
	}
}

func TestRemoveFileOutOfRange(t *testing.T) {
	s := Apply(New(), AddFiles{Files: []common.PendingFile{video("a.mp4")}})
	for _, idx := range []int{-1, 1, 5} {
		if got := Apply(s, RemoveFile{Index: idx}); len(got.Files) != 1 {
			t.Errorf("index %d: expected no-op, got %d files", idx, len(got.Files))
		}
	}
}

func TestToggleParity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	catalog := common.Catalog()

	for round := 0; round < 200; round++ {
		s := New()
		counts := map[common.EventCategory]int{}
		n := rng.Intn(30)
		for i := 0; i < n; i++ {
			c := catalog[rng.Intn(len(catalog))].ID
			counts[c]++
			s = Apply(s, ToggleEvent{Category: c})
		}

		for _, info := range catalog {
			want := counts[info.ID]%2 == 1
			if s.Selected.Has(info.ID) != want {
				t.Fatalf("round %d: %s membership %v, want %v after %d toggles",
					round, info.ID, s.Selected.Has(info.ID), want, counts[info.ID])
			}
		}
	}
}

func TestToggleDoesNotMutatePrevious(t *testing.T) {
	s := New()
	next := Apply(s, ToggleEvent{Category: common.EventLane})
	if s.Selected.Has(common.EventLane) {
		t.Error("Expected previous state to be unchanged")
	}
	if !next.Selected.Has(common.EventLane) {
		t.Error("Expected lane to be selected")
	}
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name   string
		files  int
		events int
		busy   bool
		want   bool
	}{
		{"nothing", 0, 0, false, false},
		{"files only", 2, 0, false, false},
		{"events only", 0, 1, false, false},
		{"both", 1, 1, false, true},
		{"both while submitting", 1, 1, true, false},
	}

	catalog := common.Catalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for i := 0; i < tt.files; i++ {
				s = Apply(s, AddFiles{Files: []common.PendingFile{video("v.mp4")}})
			}
			for i := 0; i < tt.events; i++ {
				s = Apply(s, ToggleEvent{Category: catalog[i].ID})
			}
			s.Submitting = tt.busy
			if got := s.CanSubmit(); got != tt.want {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubmitStartedIsNoOpWhenDisabled(t *testing.T) {
	s := Apply(New(), AddFiles{Files: []common.PendingFile{video("a.mp4")}})
	if got := Apply(s, SubmitStarted{}); got.Submitting {
		t.Error("Expected submission to stay idle without selected events")
	}
}

func TestSubmitSuccessReplacesResults(t *testing.T) {
	s := readyState()
	s.Results = []common.AnalysisResult{{ID: "old-1"}, {ID: "old-2"}}

	s = Apply(s, SubmitStarted{})
	if !s.Submitting {
		t.Fatal("Expected submission in progress")
	}
	if s.CanSubmit() {
		t.Error("Expected trigger disabled while in progress")
	}

	s = Apply(s, SubmitSucceeded{Results: []common.AnalysisResult{{ID: "new-1"}}})
	if s.Submitting {
		t.Error("Expected in-progress flag to be cleared")
	}
	if s.Page != common.PageResults {
		t.Errorf("Expected results page, got %s", s.Page)
	}
	if len(s.Results) != 1 || s.Results[0].ID != "new-1" {
		t.Errorf("Expected results to be replaced, got %+v", s.Results)
	}
}

func TestSubmitSuccessWithEmptyResults(t *testing.T) {
	s := readyState()
	s.Results = []common.AnalysisResult{{ID: "old"}}
	s = Apply(s, SubmitStarted{})
	s = Apply(s, SubmitSucceeded{})
	if len(s.Results) != 0 {
		t.Errorf("Expected empty results, got %d", len(s.Results))
	}
	if s.Page != common.PageResults {
		t.Errorf("Expected results page, got %s", s.Page)
	}
}

func TestSubmitSucceededIgnoredWhenIdle(t *testing.T) {
	s := readyState()
	got := Apply(s, SubmitSucceeded{Results: []common.AnalysisResult{{ID: "x"}}})
	if got.Page != common.PageUpload {
		t.Errorf("Expected a stray completion to leave the page alone, got %s", got.Page)
	}
	if len(got.Results) != 0 {
		t.Error("Expected a stray completion to leave results alone")
	}
}

func TestSubmitFailure(t *testing.T) {
	s := readyState()
	s = Apply(s, SubmitStarted{})
	s = Apply(s, SubmitFailed{Err: "connection refused"})

	if s.Page != common.PageUpload {
		t.Errorf("Expected to stay on upload, got %s", s.Page)
	}
	if s.Submitting {
		t.Error("Expected in-progress flag to be cleared")
	}
	if s.SubmitError != "connection refused" {
		t.Errorf("Expected error slot to be set, got %q", s.SubmitError)
	}
	if !s.CanSubmit() {
		t.Error("Expected submission to be possible again")
	}

	s = Apply(s, SubmitStarted{})
	if s.SubmitError != "" {
		t.Errorf("Expected error slot cleared on new submission, got %q", s.SubmitError)
	}
}

func TestDetailOverlay(t *testing.T) {
	s := New()
	s.Results = []common.AnalysisResult{{ID: "1"}, {ID: "2"}}

	s = Apply(s, OpenDetail{Index: 1})
	if s.Detail == nil || s.Detail.ID != "2" {
		t.Fatalf("Expected detail of result 2, got %+v", s.Detail)
	}

	s = Apply(s, OpenDetail{Index: 0})
	if s.Detail.ID != "1" {
		t.Errorf("Expected the overlay to hold exactly one record, got %s", s.Detail.ID)
	}

	if got := Apply(s, OpenDetail{Index: 9}); got.Detail.ID != "1" {
		t.Error("Expected out-of-range open to be ignored")
	}

	s = Apply(s, CloseDetail{})
	if s.DetailOpen() {
		t.Error("Expected overlay to be closed")
	}
}

func TestCopyRevertUsesSequence(t *testing.T) {
	s := New()
	rec := common.ReportRecord{ID: "r1", CopiedAt: time.Now()}

	s = Apply(s, ReportCopied{Record: rec})
	first := s.CopySeq
	s = Apply(s, ReportCopied{Record: common.ReportRecord{ID: "r2"}, Notice: "saved to /tmp/x"})
	second := s.CopySeq

	s = Apply(s, CopyReverted{Seq: first})
	if !s.Copied {
		t.Error("Expected stale revert to be ignored")
	}
	if s.CopyNotice != "saved to /tmp/x" {
		t.Errorf("Expected notice to be kept, got %q", s.CopyNotice)
	}

	s = Apply(s, CopyReverted{Seq: second})
	if s.Copied {
		t.Error("Expected confirmation to revert")
	}

	if len(s.History) != 2 {
		t.Fatalf("Expected 2 history records, got %d", len(s.History))
	}
	recent := s.RecentReports()
	if recent[0].ID != "r2" || recent[1].ID != "r1" {
		t.Errorf("Expected newest first, got %s, %s", recent[0].ID, recent[1].ID)
	}
}

func TestToggleReportAllowsMultipleExpanded(t *testing.T) {
	s := New()
	s = Apply(s, ToggleReport{ID: "a"})
	s = Apply(s, ToggleReport{ID: "b"})
	if !s.Expanded["a"] || !s.Expanded["b"] {
		t.Errorf("Expected both rows expanded, got %v", s.Expanded)
	}

	prev := s
	s = Apply(s, ToggleReport{ID: "a"})
	if s.Expanded["a"] {
		t.Error("Expected row a to collapse")
	}
	if !prev.Expanded["a"] {
		t.Error("Expected previous state to be unchanged")
	}
}
