// Package watch reruns a callback whenever a file changes on disk.
//
// The parent directory is watched rather than the file itself so editors that
// save by writing a temporary file and renaming it over the original keep
// triggering events. Bursts of events are coalesced into one call.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/sigkit/pkg/logger"
)

// DefaultDebounce is the quiet period before the callback runs.
const DefaultDebounce = 150 * time.Millisecond

var ErrWatch = errors.New("watch: cannot watch path")

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher watches one file.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *slog.Logger
}

// New returns a watcher for path.
func New(path string, opts ...Option) *Watcher {
	w := &Watcher{path: filepath.Clean(path), debounce: DefaultDebounce, log: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(logger.Component("watch"))
	return w
}

// Run calls fn once immediately and again after every settled change until
// ctx is done. Errors returned by fn are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWatch, err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWatch, w.path, err)
	}

	w.call(ctx, fn)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.WarnContext(ctx, "watch error", logger.Error(err))
		case <-timer.C:
			w.call(ctx, fn)
		}
	}
}

func (w *Watcher) call(ctx context.Context, fn func(ctx context.Context) error) {
	start := time.Now()
	if err := fn(ctx); err != nil {
		w.log.WarnContext(ctx, "watch callback failed",
			slog.String("path", w.path),
			logger.Error(err),
		)
		return
	}
	w.log.DebugContext(ctx, "watch callback done",
		slog.String("path", w.path),
		logger.Duration(time.Since(start)),
	)
}
