package resources

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// debounceWindow coalesces the burst of write events editors emit per save.
const debounceWindow = 500 * time.Millisecond

// GroundingMapWatcher reloads the curated grounding map when curators edit it
// on disk and hands the fresh map to onReload.  A reload that fails to parse
// is logged and discarded; the engine keeps serving the previous map.
type GroundingMapWatcher struct {
	path             string
	ignorePath       string
	misgroundingPath string
	onReload         func(grounding.GroundingMap)
	log              logging.Logger

	watcher *fsnotify.Watcher
}

// NewGroundingMapWatcher constructs a watcher for the map at path.  Companion
// paths may be empty.
func NewGroundingMapWatcher(path, ignorePath, misgroundingPath string, onReload func(grounding.GroundingMap), log logging.Logger) (*GroundingMapWatcher, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: editors replace files on save and a
	// file-level watch dies with the old inode.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &GroundingMapWatcher{
		path:             path,
		ignorePath:       ignorePath,
		misgroundingPath: misgroundingPath,
		onReload:         onReload,
		log:              log.Named("gm-watcher"),
		watcher:          w,
	}, nil
}

// Close releases the underlying file watcher.  Needed only when Run is never
// started; Run closes the watcher itself on cancellation.
func (gw *GroundingMapWatcher) Close() error {
	return gw.watcher.Close()
}

// Run blocks until ctx is cancelled, reloading on relevant file events.
func (gw *GroundingMapWatcher) Run(ctx context.Context) {
	defer gw.watcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-gw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(gw.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			gw.reload()

		case err, ok := <-gw.watcher.Errors:
			if !ok {
				return
			}
			gw.log.Warn("file watcher error", logging.Err(err))
		}
	}
}

func (gw *GroundingMapWatcher) reload() {
	gm, err := LoadGroundingMap(gw.path, gw.ignorePath, gw.misgroundingPath, gw.log)
	if err != nil {
		gw.log.Error("grounding map reload failed; keeping previous map",
			logging.String("path", gw.path), logging.Err(err))
		return
	}
	gw.log.Info("grounding map reloaded",
		logging.String("path", gw.path), logging.Int("entries", len(gm)))
	gw.onReload(gm)
}

//Personal.AI order the ending
