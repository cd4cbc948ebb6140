package intake

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestCandidate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "drive.mp4", 2048)

	f, err := NewResolver(nil).Candidate(path)
	if err != nil {
		t.Fatalf("Candidate failed: %v", err)
	}
	if f.Name != "drive.mp4" {
		t.Errorf("Expected name drive.mp4, got %s", f.Name)
	}
	if f.Size != 2048 {
		t.Errorf("Expected size 2048, got %d", f.Size)
	}
	if f.MediaType != "video/mp4" {
		t.Errorf("Expected video/mp4, got %s", f.MediaType)
	}
	if !filepath.IsAbs(f.Path) {
		t.Errorf("Expected absolute path, got %s", f.Path)
	}
}

func TestCandidateRejectsDirectory(t *testing.T) {
	_, err := NewResolver(nil).Candidate(t.TempDir())
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("Expected ErrNotRegularFile, got %v", err)
	}
}

func TestCandidates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.mp4", 10)
	b := writeFile(t, dir, "notes.txt", 5)

	files, errs := NewResolver(nil).Candidates([]string{a, filepath.Join(dir, "missing.mp4"), b})
	if len(files) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(files))
	}
	if len(errs) != 1 {
		t.Errorf("Expected 1 error, got %d", len(errs))
	}

	videos, rejected := SplitVideos(files)
	if len(videos) != 1 || videos[0].Name != "a.mp4" {
		t.Errorf("Expected a.mp4 as the only video, got %+v", videos)
	}
	if len(rejected) != 1 || rejected[0].Name != "notes.txt" {
		t.Errorf("Expected notes.txt rejected, got %+v", rejected)
	}
}

func TestParsePathList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		windows bool
		want    []string
	}{
		{"single", "/v/a.mp4", false, []string{"/v/a.mp4"}},
		{"several", "/v/a.mp4  /v/b.mov", false, []string{"/v/a.mp4", "/v/b.mov"}},
		{"single quoted", "'/v/my clip.mp4'", false, []string{"/v/my clip.mp4"}},
		{"double quoted", `"/v/my clip.mp4" /v/b.mp4`, false, []string{"/v/my clip.mp4", "/v/b.mp4"}},
		{"escaped space", `/v/my\ clip.mp4`, false, []string{"/v/my clip.mp4"}},
		{"escaped paren", `/v/clip\(1\).mp4`, false, []string{"/v/clip(1).mp4"}},
		{"trailing newline", "/v/a.mp4\n", false, []string{"/v/a.mp4"}},
		{"empty", "   ", false, nil},
		{"windows path", `C:\Videos\dashcam.mp4`, true, []string{`C:\Videos\dashcam.mp4`}},
		{"windows quoted path", `"C:\My Videos\rear.mov" D:\front.mp4`, true, []string{`C:\My Videos\rear.mov`, `D:\front.mp4`}},
		{"windows escaped space", `C:\Videos\my\ clip.mp4`, true, []string{`C:\Videos\my clip.mp4`}},
		{"windows trailing backslash", `C:\Videos\`, true, []string{`C:\Videos\`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsePathList(tt.input, tt.windows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parsePathList(%q, %v) = %q, want %q", tt.input, tt.windows, got, tt.want)
			}
		})
	}
}

func TestParsePathListKeepsPlainPaths(t *testing.T) {
	got := ParsePathList("/v/a.mp4 /v/b.mov")
	if want := []string{"/v/a.mp4", "/v/b.mov"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ParsePathList() = %q, want %q", got, want)
	}
}
