// Package watch reports changes to manuscript files using fsnotify.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/logger"
)

// DefaultDebounce is how long a file must be quiet before a change is reported.
const DefaultDebounce = 200 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher watches the directory containing a file and reports writes to
// that file. Editors that save by rename are covered because the directory,
// not the inode, is watched.
type Watcher struct {
	debounce time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a file watcher.
func New(opts ...Option) *Watcher {
	w := &Watcher{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts watching path until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Debug("watch: watching %s for %s", dir, filepath.Base(abs))

	changes := make(chan struct{}, 1)
	go w.run(ctx, fsw, abs, changes)
	return changes, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, target string, changes chan<- struct{}) {
	defer close(changes)
	defer fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch: %v", err)

		case <-timer.C:
			select {
			case changes <- struct{}{}:
			default: // a change is already pending
			}
		}
	}
}
