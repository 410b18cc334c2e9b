// Package watch re-renders the list when another process changes the
// database file.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"tasklist/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Renderer rebuilds the visible list from the store.
type Renderer interface {
	Render(ctx context.Context) error
}

// Watcher monitors a database file and its journal files.
type Watcher struct {
	path     string
	target   Renderer
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a watcher for the database at path.
func New(path string, target Renderer, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     abs,
		target:   target,
		debounce: DefaultDebounce,
		logger:   logger,
	}, nil
}

// SetDebounce changes the settle delay.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Run watches until ctx is done. The directory is watched rather than the
// file so replacements and journal files are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("watching database", logfields.File(w.path))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("database changed", logfields.File(event.Name), logfields.Op(event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher", logfields.Error(err))

		case <-timer.C:
			if err := w.target.Render(ctx); err != nil {
				w.logger.Warn("refresh after change", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	switch event.Name {
	case w.path, w.path + "-wal", w.path + "-journal":
		return true
	}
	return false
}
