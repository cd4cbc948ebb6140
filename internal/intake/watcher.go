package intake

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/logger"
)

// DefaultDebounce is how long a dropped file must stay quiet before it is picked up
const DefaultDebounce = 500 * time.Millisecond

// DropWatcher reports files that appear in a watched folder
type DropWatcher struct {
	dir      string
	resolver *Resolver
	debounce time.Duration
	watcher  *fsnotify.Watcher
	out      chan []common.PendingFile
	log      *logger.Logger
}

// NewDropWatcher starts watching dir. Call Run to deliver batches and Close
// to release the watch.
func NewDropWatcher(dir string, resolver *Resolver, debounce time.Duration, log *logger.Logger) (*DropWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.New("intake", nil)
	}

	dir = expandHome(dir)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		cleanupWatcher(watcher, log)
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &DropWatcher{
		dir:      dir,
		resolver: resolver,
		debounce: debounce,
		watcher:  watcher,
		out:      make(chan []common.PendingFile),
		log:      log,
	}, nil
}

// Dir returns the watched folder
func (w *DropWatcher) Dir() string {
	return w.dir
}

// Files delivers one batch per quiet period. It is closed when Run returns.
func (w *DropWatcher) Files() <-chan []common.PendingFile {
	return w.out
}

// Run processes file system events until ctx is done or the watcher closes.
// A path is tracked from its Create event and delivered once; later writes
// only extend the quiet period of paths still pending. Removing or renaming
// a delivered file lets a new file under the same name be delivered again.
func (w *DropWatcher) Run(ctx context.Context) {
	defer close(w.out)

	var (
		timer     *time.Timer
		fire      <-chan time.Time
		pending   = map[string]struct{}{}
		delivered = map[string]struct{}{}
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(pending, event.Name)
				delete(delivered, event.Name)
				continue
			}

			_, isPending := pending[event.Name]
			switch {
			case event.Has(fsnotify.Create):
				if _, done := delivered[event.Name]; done {
					continue
				}
				pending[event.Name] = struct{}{}
			case event.Has(fsnotify.Write) && isPending:
			default:
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WarnWithFields("Drop folder watcher error", []logger.Field{logger.Error(err)})

		case <-fire:
			fire = nil
			for p := range pending {
				delivered[p] = struct{}{}
			}
			batch := w.collect(pending)
			pending = map[string]struct{}{}
			if len(batch) == 0 {
				continue
			}
			select {
			case w.out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *DropWatcher) collect(pending map[string]struct{}) []common.PendingFile {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	files, errs := w.resolver.Candidates(paths)
	for _, err := range errs {
		w.log.Debug("Skipping dropped path: %v", err)
	}
	w.log.DebugWithFields("Dropped files collected", []logger.Field{logger.Count(len(files)), logger.F("dir", w.dir)})
	return files
}

// Close stops watching
func (w *DropWatcher) Close() error {
	return w.watcher.Close()
}

func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Warn("failed to close watcher: %v", err)
	}
}
