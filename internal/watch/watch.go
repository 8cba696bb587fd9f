// Package watch re-runs a callback whenever a single file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type Watcher struct {
	path   string
	delay  time.Duration
	logger *slog.Logger
}

func New(path string, delay time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{path: path, delay: delay, logger: logger}
}

// Run calls fn once, then again after every debounced change to the file,
// until ctx is done. The parent directory is watched so that editors which
// replace the file by renaming are still seen. Errors from fn are logged and
// do not stop the watch.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	var mu sync.Mutex
	run := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		if err := fn(); err != nil {
			w.logger.Error("render failed", "file", w.path, "err", err)
			return
		}
		w.logger.Info("rendered", "file", w.path)
	}
	run()

	debouncer := NewDebouncer(w.delay)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
			debouncer.Trigger(run)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}
