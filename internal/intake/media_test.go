package intake

import (
	"testing"
)

func TestResolverMediaType(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		path string
		want string
	}{
		{"clip.mp4", "video/mp4"},
		{"CLIP.MOV", "video/quicktime"},
		{"/a/b/c.avi", "video/x-msvideo"},
		{"x.webm", "video/webm"},
		{"x.mkv", "video/x-matroska"},
		{"x.ts", "video/mp2t"},
		{"noext", ""},
		{"x.unknownext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := r.MediaType(tt.path); got != tt.want {
				t.Errorf("MediaType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolverIsVideo(t *testing.T) {
	r := NewResolver(nil)

	for _, p := range []string{"a.mp4", "b.mov", "c.MKV"} {
		if !r.IsVideo(p) {
			t.Errorf("Expected %s to be video", p)
		}
	}
	for _, p := range []string{"a.txt", "b.jpg", "c", "d.pdf"} {
		if r.IsVideo(p) {
			t.Errorf("Expected %s not to be video", p)
		}
	}
}

func TestResolverExtraExtensions(t *testing.T) {
	r := NewResolver([]string{".dav", "H264", " "})

	if !r.IsVideo("cam01.dav") {
		t.Error("Expected .dav to be treated as video")
	}
	if !r.IsVideo("cam01.h264") {
		t.Error("Expected extension without dot to be accepted")
	}
	if got := r.MediaType("cam01.dav"); got != "video/x-dav" {
		t.Errorf("Expected video/x-dav, got %s", got)
	}

	base := NewResolver(nil)
	if base.IsVideo("cam01.dav") {
		t.Error("Expected extras not to leak into other resolvers")
	}
}

func TestResolverPatterns(t *testing.T) {
	patterns := NewResolver([]string{".dav"}).Patterns()
	if len(patterns) != len(VideoExtensions)+1 {
		t.Fatalf("Expected %d patterns, got %d", len(VideoExtensions)+1, len(patterns))
	}
	found := false
	for i, p := range patterns {
		if p == "*.dav" {
			found = true
		}
		if i > 0 && patterns[i-1] > p {
			t.Errorf("Expected sorted patterns, %s before %s", patterns[i-1], p)
		}
	}
	if !found {
		t.Error("Expected *.dav in patterns")
	}
}
