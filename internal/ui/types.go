package ui

import (
	"context"
	"time"

	"github.com/yildizm/RoadReport/internal/client"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/config"
	"github.com/yildizm/RoadReport/internal/intake"
	"github.com/yildizm/RoadReport/internal/logger"
	"github.com/yildizm/RoadReport/internal/report"
)

// Analyzer submits videos to the analysis service
type Analyzer interface {
	Upload(ctx context.Context, files []common.PendingFile, events common.SelectedEvents) (*client.UploadResponse, error)
	Health(ctx context.Context) (*client.HealthResponse, error)
}

// Checker runs a single connectivity check
type Checker interface {
	Run(ctx context.Context, check client.Check) client.CheckResult
}

// MediaOpener hands a media reference to the platform viewer
type MediaOpener func(ref string) error

// Options wires the main app to its collaborators. Nil fields fall back to
// defaults or disable the matching action.
type Options struct {
	Analyzer  Analyzer
	Resolver  *intake.Resolver
	Picker    intake.Picker
	Clipboard report.ClipboardProvider
	Open      MediaOpener

	// Drops delivers batches found by the drop folder watcher
	Drops   <-chan []common.PendingFile
	DropDir string

	// Page is the page shown first; empty means landing
	Page common.Page

	// Files are added to the upload list before the first frame
	Files   []common.PendingFile
	Profile config.ProfileConfig

	Log *logger.Logger
	Now func() time.Time
}

// uploadFocus selects which upload panel receives cursor keys
type uploadFocus int

const (
	focusFiles uploadFocus = iota
	focusEvents
)

// pathPrompt is the inline input for typed file paths
type pathPrompt struct {
	value []rune
}

func (p *pathPrompt) String() string {
	return string(p.value)
}
