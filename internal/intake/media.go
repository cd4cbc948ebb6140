// Package intake collects video files for submission: media type detection,
// pending file construction, the native picker and the drop folder watcher.
package intake

import (
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yildizm/RoadReport/internal/common"
)

// VideoExtensions maps known video extensions to their media type
var VideoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".m4v":  "video/x-m4v",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".3gp":  "video/3gpp",
	".ts":   "video/mp2t",
}

// Resolver determines the media type of candidate files
type Resolver struct {
	extensions map[string]string
}

// NewResolver creates a resolver that also treats extra extensions as video
func NewResolver(extra []string) *Resolver {
	exts := make(map[string]string, len(VideoExtensions)+len(extra))
	for ext, mt := range VideoExtensions {
		exts[ext] = mt
	}
	for _, ext := range extra {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := exts[ext]; !ok {
			exts[ext] = "video/x-" + strings.TrimPrefix(ext, ".")
		}
	}
	return &Resolver{extensions: exts}
}

// MediaType returns the media type for path, or "" when unknown
func (r *Resolver) MediaType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	if mt, ok := r.extensions[ext]; ok {
		return mt
	}
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		return ""
	}
	if base, _, err := mime.ParseMediaType(mt); err == nil {
		return base
	}
	return mt
}

// IsVideo reports whether path resolves to a video media type
func (r *Resolver) IsVideo(path string) bool {
	return common.IsVideoMediaType(r.MediaType(path))
}

// Patterns returns glob patterns for every known video extension, sorted
func (r *Resolver) Patterns() []string {
	patterns := make([]string, 0, len(r.extensions))
	for ext := range r.extensions {
		patterns = append(patterns, "*"+ext)
	}
	sort.Strings(patterns)
	return patterns
}
