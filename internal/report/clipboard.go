package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrClipboardUnavailable is returned when no provider accepted the text
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// ClipboardProvider writes text to some clipboard and reports success
type ClipboardProvider interface {
	Write(text string) bool
}

// Noticer is implemented by providers whose success needs explaining
type Noticer interface {
	Notice() string
}

func noticeOf(p ClipboardProvider) string {
	if n, ok := p.(Noticer); ok {
		return n.Notice()
	}
	return ""
}

// OSC52 copies through the terminal's OSC 52 escape sequence.
//
// The terminal never acknowledges the sequence, so Write reports success
// whenever it could be emitted to a capable looking TERM. Terminals that
// ignore OSC 52 still count as a successful copy; the "file" clipboard mode
// skips this provider for them.
type OSC52 struct {
	out    io.Writer
	getenv func(string) string
}

// NewOSC52 creates a provider writing escape sequences to out
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out, getenv: os.Getenv}
}

// Write emits the sequence, wrapped for tmux or screen when running inside one
func (o *OSC52) Write(text string) bool {
	if o.out == nil {
		return false
	}
	term := o.getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}

	seq := osc52.New(text)
	switch {
	case o.getenv("TMUX") != "":
		seq = seq.Tmux()
	case o.getenv("STY") != "" || strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}

	_, err := seq.WriteTo(o.out)
	return err == nil
}

// FileFallback saves the text to a file the user can open when no terminal
// clipboard is reachable
type FileFallback struct {
	dir  string
	mu   sync.Mutex
	last string
}

// NewFileFallback creates a fallback writing under dir, or the temp dir if empty
func NewFileFallback(dir string) *FileFallback {
	if dir == "" {
		dir = os.TempDir()
	}
	return &FileFallback{dir: dir}
}

// Write stores the text in a new file
func (f *FileFallback) Write(text string) bool {
	file, err := os.CreateTemp(f.dir, "roadreport-report-*.txt")
	if err != nil {
		return false
	}
	_, werr := file.WriteString(text)
	cerr := file.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(file.Name())
		return false
	}

	f.mu.Lock()
	f.last = file.Name()
	f.mu.Unlock()
	return true
}

// Path returns the file written last
func (f *FileFallback) Path() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Notice tells the user where the report went
func (f *FileFallback) Notice() string {
	if p := f.Path(); p != "" {
		return fmt.Sprintf("clipboard unavailable, report saved to %s", p)
	}
	return ""
}

// Chain tries providers in order until one succeeds
type Chain struct {
	providers []ClipboardProvider
	mu        sync.Mutex
	used      ClipboardProvider
}

// NewChain creates a provider chain
func NewChain(providers ...ClipboardProvider) *Chain {
	return &Chain{providers: providers}
}

// Clipboard modes accepted by ChainFor
const (
	ModeAuto  = "auto"
	ModeOSC52 = "osc52"
	ModeFile  = "file"
)

// DefaultChain is the terminal clipboard followed by the temp file fallback
func DefaultChain(out io.Writer) *Chain {
	return NewChain(NewOSC52(out), NewFileFallback(""))
}

// ChainFor builds the provider chain of a clipboard mode. Empty means auto.
func ChainFor(mode string, out io.Writer) (*Chain, error) {
	switch mode {
	case "", ModeAuto:
		return DefaultChain(out), nil
	case ModeOSC52:
		return NewChain(NewOSC52(out)), nil
	case ModeFile:
		return NewChain(NewFileFallback("")), nil
	default:
		return nil, fmt.Errorf("unknown clipboard mode: %s", mode)
	}
}

// Write hands text to the first provider that accepts it
func (c *Chain) Write(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.used = nil
	for _, p := range c.providers {
		if p.Write(text) {
			c.used = p
			return true
		}
	}
	return false
}

// Notice returns the notice of the provider that accepted the last write
func (c *Chain) Notice() string {
	c.mu.Lock()
	used := c.used
	c.mu.Unlock()
	if used == nil {
		return ""
	}
	return noticeOf(used)
}
