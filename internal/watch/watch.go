// Package watch reloads local source documents when they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 300 * time.Millisecond

// ErrNothingToWatch is returned when every source is remote.
var ErrNothingToWatch = errors.New("no local source files to watch")

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithOnError sets the callback invoked on watcher errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher calls onChange once a burst of writes to any watched file settles.
type Watcher struct {
	files    map[string]bool
	debounce time.Duration
	onChange func()
	onError  func(error)

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a watcher for the local files among sources. URLs are skipped.
func New(sources []string, onChange func(), opts ...Option) (*Watcher, error) {
	w := &Watcher{
		files:    make(map[string]bool),
		debounce: DefaultDebounce,
		onChange: onChange,
		onError: func(err error) {
			slog.Warn("watch error", "component", "watch", "error", err)
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	for _, p := range LocalPaths(sources...) {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		w.files[abs] = true
	}
	if len(w.files) == 0 {
		return nil, ErrNothingToWatch
	}
	return w, nil
}

// LocalPaths returns the sources that name local files, with any file://
// scheme removed.
func LocalPaths(sources ...string) []string {
	var out []string
	for _, s := range sources {
		switch {
		case s == "":
		case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		case strings.HasPrefix(s, "file://"):
			out = append(out, strings.TrimPrefix(s, "file://"))
		default:
			out = append(out, s)
		}
	}
	return out
}

// Files returns the absolute paths being watched.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	return out
}

// Run watches until ctx is cancelled. The parent directories are watched so
// editors that replace files atomically are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	dirs := make(map[string]bool)
	for f := range w.files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	slog.Debug("watching sources", "component", "watch", "files", len(w.files))

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.trigger()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
