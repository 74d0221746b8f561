package wildcard

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the folder must stay quiet before a reload.
const DefaultDebounce = 200 * time.Millisecond

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	debounce time.Duration
	onReload func()
}

// WithDebounce sets the quiet period before the cache is cleared.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) { c.debounce = d }
}

// WithOnReload registers a callback run after each cache reset.
func WithOnReload(fn func()) WatchOption {
	return func(c *watchConfig) { c.onReload = fn }
}

// Watch clears the cache whenever a wildcard file under the search folders
// changes. It returns once the watcher is running; watching stops when ctx
// is canceled.
func (m *Manager) Watch(ctx context.Context, opts ...WatchOption) error {
	cfg := watchConfig{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&cfg)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	watched := 0
	for _, dir := range m.Dirs() {
		n, err := addTree(fsw, dir, m.logger)
		if err != nil {
			_ = fsw.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		watched += n
	}
	if watched == 0 {
		_ = fsw.Close()
		return fmt.Errorf("watch wildcards: no existing search folders")
	}

	w := &watcher{
		manager: m,
		fsw:     fsw,
		cfg:     cfg,
	}
	go w.run(ctx)
	return nil
}

// addTree watches dir and every folder below it. Missing roots are skipped.
func addTree(fsw *fsnotify.Watcher, dir string, logger *slog.Logger) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			logger.Warn("cannot watch wildcard folder",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return nil
		}
		count++
		return nil
	})
	return count, err
}

type watcher struct {
	manager *Manager
	fsw     *fsnotify.Watcher
	cfg     watchConfig

	mu      sync.Mutex
	pending time.Time // zero when nothing is pending
}

func (w *watcher) run(ctx context.Context) {
	defer w.fsw.Close()

	ticker := time.NewTicker(w.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.manager.logger.Warn("wildcard watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *watcher) tick() time.Duration {
	tick := w.cfg.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	return tick
}

func (w *watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if _, err := addTree(w.fsw, event.Name, w.manager.logger); err != nil {
				w.manager.logger.Warn("cannot watch new wildcard folder",
					slog.String("path", event.Name),
					slog.String("error", err.Error()))
			}
			w.mark()
			return
		}
	}

	if !isWildcardFile(event.Name) {
		return
	}
	w.mark()
}

func (w *watcher) mark() {
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// flush reloads once the folder has been quiet for the debounce period.
func (w *watcher) flush() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.cfg.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	w.manager.ClearCache()
	w.manager.logger.Debug("wildcards changed, cache cleared",
		slog.Uint64("generation", w.manager.Generation()))
	if w.cfg.onReload != nil {
		w.cfg.onReload()
	}
}

func isWildcardFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".yaml", ".yml", ".json":
		return true
	}
	return false
}
