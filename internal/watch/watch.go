// Package watch re-runs a callback whenever a single file changes.
// The eqsolve CLI uses it to re-solve when its config file is edited.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/eqsolve/pkg/log"
)

// Config holds configuration options for a Watcher.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before
	// running the callback. Editors often write a file several times.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// Watcher calls a function after its file is written or created.
// Callbacks never overlap.
type Watcher struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration
	onChange      func(context.Context)
	logger        log.Logger

	debounce *time.Timer
	running  sync.Mutex
	wg       sync.WaitGroup
}

// New creates a Watcher for path. A nil logger discards output.
func New(path string, onChange func(context.Context), cfg Config, logger log.Logger) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultConfig().DebounceDelay
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		path:          path,
		debounceDelay: cfg.DebounceDelay,
		onChange:      onChange,
		logger:        logger,
	}
}

// Run watches until ctx is done and waits for any pending callback before
// returning. The parent directory is watched so that atomic replacements
// (write to a temp file, rename over) are seen.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer w.stop()

	name := filepath.Base(w.path)
	w.logger.Info("watching config", log.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug("config changed", log.String("op", event.Op.String()))
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil && w.debounce.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	w.debounce = time.AfterFunc(w.debounceDelay, func() {
		defer w.wg.Done()
		if ctx.Err() != nil {
			return
		}
		w.running.Lock()
		defer w.running.Unlock()
		w.onChange(ctx)
	})
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.debounce != nil && w.debounce.Stop() {
		w.wg.Done()
	}
	w.mu.Unlock()
	w.wg.Wait()
}
