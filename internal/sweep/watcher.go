package sweep

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"trajlens/internal/instance"
)

// Watcher keeps a sweep alive: it re-runs the Runner whenever trajectory
// files under the search roots change. Changes are debounced so a bulk
// copy triggers one re-sweep after the files settle, not one per file.
type Watcher struct {
	runner   *Runner
	roots    []instance.Root
	logger   *zap.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
}

// NewWatcher wires a Watcher around an existing Runner. A debounce of
// zero or less falls back to 500ms; a nil logger becomes a no-op.
func NewWatcher(runner *Runner, roots []instance.Root, debounce time.Duration, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		runner:   runner,
		roots:    roots,
		logger:   logger,
		debounce: debounce,
		pending:  make(map[string]time.Time),
	}
}

// Watch runs one initial sweep, then blocks re-sweeping on debounced
// trajectory changes until ctx is cancelled. Cancellation is a clean
// shutdown, not an error.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	for _, root := range w.roots {
		w.watchRoot(fw, root.Path)
	}

	if _, err := w.runner.Run(ctx); err != nil {
		return err
	}

	w.logger.Info("watching for trajectory changes",
		zap.Int("roots", len(w.roots)),
		zap.Duration("debounce", w.debounce))

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", zap.Error(err))

		case <-ticker.C:
			if !w.settled() {
				continue
			}
			if _, err := w.runner.Run(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.Error("re-sweep failed", zap.Error(err))
			}
		}
	}
}

// watchRoot registers the root and its existing instance directories.
// fsnotify watches are not recursive, so every instance directory needs
// its own watch before writes to the .traj inside it are visible.
func (w *Watcher) watchRoot(fw *fsnotify.Watcher, root string) {
	if err := fw.Add(root); err != nil {
		w.logger.Warn("failed to watch root", zap.String("path", root), zap.Error(err))
		return
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := fw.Add(filepath.Join(root, entry.Name())); err != nil {
			w.logger.Debug("failed to watch instance dir",
				zap.String("path", entry.Name()), zap.Error(err))
		}
	}
}

// handleEvent records .traj changes for debouncing and registers newly
// created instance directories.
func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fw.Add(event.Name); err != nil {
				w.logger.Debug("failed to watch new directory",
					zap.String("path", event.Name), zap.Error(err))
			}
			return
		}
	}

	if !strings.HasSuffix(event.Name, ".traj") {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
	w.logger.Debug("trajectory changed",
		zap.String("path", event.Name),
		zap.String("op", event.Op.String()))
}

// settled reports whether there are pending changes that have all been
// quiet for the debounce window, clearing them when so.
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return false
	}
	now := time.Now()
	for _, last := range w.pending {
		if now.Sub(last) < w.debounce {
			return false
		}
	}
	w.pending = make(map[string]time.Time)
	return true
}
