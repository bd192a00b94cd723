package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/trebuchet-org/solart/internal/domain/config"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// DefaultDebounce is how long the watcher waits for further events before
// reporting a change.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports changes to solidity sources using fsnotify
type Watcher struct {
	log       *slog.Logger
	debounce  time.Duration
	recursive bool
}

// NewWatcher creates a watcher using the configured debounce window
func NewWatcher(cfg *config.RuntimeConfig, log *slog.Logger) *Watcher {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		log:       log.With("component", "Watcher"),
		debounce:  debounce,
		recursive: cfg.Recursive,
	}
}

// Watch blocks until ctx is done, calling onChange once per burst of changes.
// Files that are removed or renamed are watched again once they reappear,
// which is how most editors save.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func(ctx context.Context)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	roots := make(map[string]bool, len(paths))
	for _, path := range paths {
		if err := w.add(fw, path); err != nil {
			return err
		}
		roots[filepath.Clean(path)] = true
	}

	var (
		fire     <-chan time.Time
		detached = make(map[string]bool)
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("source changed", "path", event.Name, "op", event.Op.String())

			switch {
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				// only inputs lose their watch; files inside a watched directory don't need one
				if name := filepath.Clean(event.Name); roots[name] {
					detached[name] = true
				}
			case event.Has(fsnotify.Create):
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.recursive {
					if err := w.add(fw, event.Name); err != nil {
						w.log.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			fire = time.After(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("file watcher error", "error", err)

		case <-fire:
			fire = nil
			w.reattach(fw, detached)
			onChange(ctx)
		}
	}
}

// add watches path, and for directories every subdirectory when recursive
func (w *Watcher) add(fw *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if !info.IsDir() || !w.recursive {
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

// reattach watches removed paths again if they exist by now
func (w *Watcher) reattach(fw *fsnotify.Watcher, detached map[string]bool) {
	for path := range detached {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if !slices.Contains(fw.WatchList(), path) {
			if err := w.add(fw, path); err != nil {
				w.log.Warn("failed to re-attach watch", "path", path, "error", err)
				continue
			}
			w.log.Debug("re-attached watch", "path", path)
		}
		delete(detached, path)
	}
}

// relevant filters out permission changes and non-solidity files
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasSuffix(event.Name, ".sol") {
		return true
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}

var _ usecase.FileWatcher = (*Watcher)(nil)
