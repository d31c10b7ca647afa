// Package watch re-triggers validation when record files change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long to wait for further changes before emitting.
const DefaultDebounce = 500 * time.Millisecond

// watched file extensions; everything else is ignored.
var extensions = map[string]bool{".yaml": true, ".yml": true}

// directories skipped when walking the frame tree.
var excludes = map[string]bool{".git": true, ".spectral": true}

// Watcher watches a frame directory and emits one coalesced signal per
// burst of record-file changes.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// Debouncing: collect changed paths before emitting.
	pendingMu sync.Mutex
	pending   map[string]struct{}

	events chan []string

	droppedEvents atomic.Int64
}

// New creates a Watcher over dir. A non-positive debounce uses
// DefaultDebounce.
func New(dir string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		dir:      dir,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]struct{}),
		events:   make(chan []string, 16),
	}, nil
}

// Events returns the channel of coalesced change batches. Each batch holds
// the record files that changed since the previous emission.
func (w *Watcher) Events() <-chan []string {
	return w.events
}

// Start begins watching and blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addRecursive(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching frame directory", slog.String("dir", w.dir))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
			if w.hasPending() {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))

		case <-timer.C:
			w.flush()
		}
	}
}

// Dropped returns how many change batches were discarded because the
// consumer fell behind.
func (w *Watcher) Dropped() int64 {
	return w.droppedEvents.Load()
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	// New directories must be added to the watch set.
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !excludes[filepath.Base(ev.Name)] {
				_ = w.addRecursive(ev.Name)
			}
			return
		}
	}

	if !extensions[strings.ToLower(filepath.Ext(ev.Name))] {
		return
	}
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) &&
		!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return
	}

	w.pendingMu.Lock()
	w.pending[ev.Name] = struct{}{}
	w.pendingMu.Unlock()
}

func (w *Watcher) hasPending() bool {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	return len(w.pending) > 0
}

// flush emits the accumulated batch, dropping it if the consumer is slow.
func (w *Watcher) flush() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	batch := make([]string, 0, len(w.pending))
	for path := range w.pending {
		batch = append(batch, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	select {
	case w.events <- batch:
	default:
		w.droppedEvents.Add(1)
		w.logger.Warn("dropped change batch", slog.Int("files", len(batch)))
	}
}

// addRecursive watches dir and every non-excluded subdirectory.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if excludes[d.Name()] && path != dir {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
