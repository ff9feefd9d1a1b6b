// Package watch triggers catalog regeneration when the source tree
// changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/catalog"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/paths"
)

// DefaultDebounce is the quiet period after the last change before a
// regeneration fires.
const DefaultDebounce = 500 * time.Millisecond

// Options configures Run.
type Options struct {
	// Debounce overrides DefaultDebounce.
	Debounce time.Duration

	// Logger receives change and regeneration events. Nil falls back
	// to a stderr text handler.
	Logger *slog.Logger
}

// Run watches the category directories under root and calls fn after each
// debounced burst of changes. fn runs once up front so the watcher always
// starts from a fresh catalog; its errors are logged and the loop keeps
// going, since a tree mid-edit often fails transiently. Run blocks until
// ctx is cancelled.
func Run(ctx context.Context, root string, fn func() error, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer watcher.Close()

	addWatches(watcher, root, logger)

	if err := fn(); err != nil {
		logger.Error("catalog regeneration failed", "error", err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	logger.Info("watching for changes", "root", root, "debounce", debounce)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(root, event) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-timer.C:
			// Directories created since the last pass need watches
			// before the rescan, or changes made during it are lost.
			addWatches(watcher, root, logger)
			if err := fn(); err != nil {
				logger.Error("catalog regeneration failed", "error", err)
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// addWatches registers root, the category directories, and every
// directory below skills/, where definitions nest. Re-adding a watched
// path is a no-op, so this runs after each regeneration.
func addWatches(watcher *fsnotify.Watcher, root string, logger *slog.Logger) {
	add := func(dir string) {
		if err := watcher.Add(dir); err != nil {
			logger.Debug("not watching", "path", dir, "error", err)
		}
	}

	add(root)
	for _, cat := range catalog.Categories {
		dir := filepath.Join(root, cat.SourceDir())
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		add(dir)
	}

	skills := filepath.Join(root, paths.SourceSkillsDir)
	_ = filepath.WalkDir(skills, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			add(path)
		}
		return nil
	})
}

// relevant reports whether the event can change the catalog: a create,
// write, remove, or rename inside one of the category directories. Writes
// to the output file in root stay out, or regeneration would feed itself.
func relevant(root string, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	top, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	switch top {
	case paths.SourceAgentsDir, paths.SourceSkillsDir, paths.SourceCommandsDir:
		return true
	}
	return false
}
