// Package watcher re-runs an action whenever a menu document changes on disk.
//
// It backs `navport import --watch`.
package watcher

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher monitors one file and calls OnChange after writes settle.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context) error
	logger   *log.Logger

	mu      sync.Mutex
	pending time.Time // zero when nothing is scheduled
}

// Config holds configuration options for the Watcher.
type Config struct {
	Path          string
	DebounceDelay time.Duration // Default: 200ms
	OnChange      func(ctx context.Context) error
	Logger        *log.Logger
}

// New creates a Watcher for cfg.Path.
func New(cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("change handler is required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, err
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 200 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		onChange: cfg.OnChange,
		logger:   logger,
	}, nil
}

// Start watches until ctx is cancelled. The file's directory is watched rather
// than the file itself so editors that save by rename are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Debug("watching", "file", w.path)

	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)

		case now := <-ticker.C:
			if w.due(now) {
				w.fire(ctx)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("change", "op", event.Op.String(), "file", event.Name)
	w.schedule(time.Now())
}

// schedule (re)starts the debounce window.
func (w *Watcher) schedule(at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = at
}

// due reports whether a scheduled change has been quiet for the debounce
// delay, and clears it if so.
func (w *Watcher) due(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || now.Sub(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}

func (w *Watcher) fire(ctx context.Context) {
	if err := w.onChange(ctx); err != nil {
		w.logger.Error("re-run failed", "file", w.path, "err", err)
	}
}
