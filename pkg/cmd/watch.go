package cmd

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlbeautify/pkg/beautify"
)

const debounceDelay = 100 * time.Millisecond

// watcher re-formats SQL files in place when they change.
type watcher struct {
	beautifier *beautify.Beautifier
	fsWatcher  *fsnotify.Watcher

	// Files named explicitly and directories watched recursively
	files map[string]bool
	dirs  map[string]bool

	pending map[string]struct{}
}

// watch blocks until ctx is cancelled, formatting .sql files under paths as
// they are written. Events are batched so a file is formatted once per save.
func watch(ctx context.Context, b *beautify.Beautifier, paths []string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer func() { _ = fsw.Close() }()

	w := &watcher{
		beautifier: b,
		fsWatcher:  fsw,
		files:      make(map[string]bool),
		dirs:       make(map[string]bool),
		pending:    make(map[string]struct{}),
	}

	for _, path := range paths {
		if err := w.add(filepath.Clean(path)); err != nil {
			return err
		}
	}

	slog.Info("Watching for changes", "paths", paths)
	return w.run(ctx)
}

func (w *watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if !info.IsDir() {
		w.files[path] = true
		return errors.Wrapf(w.fsWatcher.Add(filepath.Dir(path)), "failed to watch %s", path)
	}

	return w.addRecursive(path)
}

// addRecursive watches root and its subdirectories, skipping hidden ones.
func (w *watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		if err := w.fsWatcher.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch directory: %s", path)
		}

		w.dirs[path] = true
		slog.Debug("Watching directory", "path", path)
		return nil
	})
}

func (w *watcher) run(ctx context.Context) error {
	timer := time.NewTimer(debounceDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				timer.Reset(debounceDelay)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "err", err)

		case <-timer.C:
			w.flush()
		}
	}
}

// handleEvent records a changed file and reports whether it needs formatting.
func (w *watcher) handleEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	if event.Has(fsnotify.Create) && w.dirs[filepath.Dir(event.Name)] {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				slog.Warn("Failed to watch new directory", "path", event.Name, "err", err)
			}
			return false
		}
	}

	if !isSQLFile(event.Name) {
		return false
	}
	if !w.files[event.Name] && !w.dirs[filepath.Dir(event.Name)] {
		return false
	}

	w.pending[event.Name] = struct{}{}
	return true
}

func (w *watcher) flush() {
	for path := range w.pending {
		delete(w.pending, path)

		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("Failed to read file", "path", path, "err", err)
			continue
		}

		res := formatResult{path: path, original: string(content), formatted: w.beautifier.Format(string(content))}
		if err := writeResult(res); err != nil {
			slog.Warn("Failed to write file", "path", path, "err", err)
			continue
		}

		if res.changed() {
			slog.Info("Formatted file", "path", path)
		}
	}
}
