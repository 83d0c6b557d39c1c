// Package watch reloads the investor data file when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pengelbrecht/investors/internal/investor"
)

// DefaultDebounce collapses the burst of events an editor produces on save.
const DefaultDebounce = 150 * time.Millisecond

// Result is the outcome of one reload.
type Result struct {
	Investors []*investor.Investor
	Err       error
}

// LoadFunc reads the collection from path.
type LoadFunc func(path string) ([]*investor.Investor, error)

// Watcher reloads a single data file after it is written, created or
// replaced. It watches the parent directory so that editors which save by
// renaming a temp file over the original are still seen.
type Watcher struct {
	path     string
	dir      string
	debounce time.Duration
	load     LoadFunc
	logger   *zap.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLoader replaces investor.LoadFile.
func WithLoader(fn LoadFunc) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.load = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New returns a Watcher for path.
func New(path string, opts ...Option) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watch: no data file")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w := &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		debounce: DefaultDebounce,
		load:     investor.LoadFile,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run watches until ctx is done, calling fn with the result of every
// reload. fn runs on the watcher goroutine. Run returns nil on
// cancellation.
func (w *Watcher) Run(ctx context.Context, fn func(Result)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching data file", zap.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("data file event", zap.Stringer("op", event.Op))
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			items, err := w.load(w.path)
			if err != nil {
				w.logger.Warn("reload failed", zap.Error(err))
			} else {
				w.logger.Info("data file reloaded", zap.Int("count", len(items)))
			}
			fn(Result{Investors: items, Err: err})
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
