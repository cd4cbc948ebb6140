package intake

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/yildizm/RoadReport/internal/common"
)

// ErrNotRegularFile is returned for directories and other non-file paths
var ErrNotRegularFile = errors.New("not a regular file")

// Candidate builds a pending file from a path on disk. The media type is
// resolved but not checked; filtering happens when files are added.
func (r *Resolver) Candidate(path string) (common.PendingFile, error) {
	path = expandHome(path)
	info, err := os.Stat(path)
	if err != nil {
		return common.PendingFile{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return common.PendingFile{}, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return common.PendingFile{
		Name:      filepath.Base(path),
		Path:      abs,
		Size:      info.Size(),
		MediaType: r.MediaType(path),
	}, nil
}

// Candidates builds pending files for every readable path and collects the
// errors of the rest
func (r *Resolver) Candidates(paths []string) ([]common.PendingFile, []error) {
	var files []common.PendingFile
	var errs []error
	for _, p := range paths {
		f, err := r.Candidate(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, f)
	}
	return files, errs
}

// SplitVideos partitions files into video and non-video
func SplitVideos(files []common.PendingFile) (videos, rejected []common.PendingFile) {
	for _, f := range files {
		if common.IsVideoMediaType(f.MediaType) {
			videos = append(videos, f)
		} else {
			rejected = append(rejected, f)
		}
	}
	return videos, rejected
}

// ParsePathList splits typed or terminal-dropped input into paths.
// Quoted segments and backslash-escaped spaces are kept together. On Windows
// a backslash is a path separator and only escapes whitespace or a quote.
func ParsePathList(input string) []string {
	return parsePathList(input, runtime.GOOS == "windows")
}

func parsePathList(input string, windows bool) []string {
	var (
		paths   []string
		current strings.Builder
		quote   rune
		escaped bool
	)

	flush := func() {
		if current.Len() > 0 {
			paths = append(paths, current.String())
			current.Reset()
		}
	}

	runes := []rune(input)
	for i, ch := range runes {
		switch {
		case escaped:
			current.WriteRune(ch)
			escaped = false
		case ch == '\\' && quote != '\'':
			if windows && !escapable(runes, i+1) {
				current.WriteRune(ch)
				continue
			}
			escaped = true
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				current.WriteRune(ch)
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case isSpace(ch):
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()

	return paths
}

// escapable reports whether the rune at i may follow an escaping backslash
// in a Windows path
func escapable(runes []rune, i int) bool {
	if i >= len(runes) {
		return false
	}
	ch := runes[i]
	return isSpace(ch) || ch == '"' || ch == '\''
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
