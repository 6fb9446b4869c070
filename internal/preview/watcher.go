package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// WatchPaths names what a Watcher observes.
type WatchPaths struct {
	ContentDir string
	// Stylesheet is optional; only events for this exact file count.
	Stylesheet string
	// OutputDir is never a rebuild trigger, even when nested in ContentDir.
	OutputDir string
}

// Watcher turns filesystem events into rebuild triggers.
type Watcher struct {
	fs      *fsnotify.Watcher
	paths   WatchPaths
	trigger func()
}

// NewWatcher watches the content root recursively and the stylesheet's
// directory. trigger is called for every relevant event.
func NewWatcher(paths WatchPaths, trigger func()) (*Watcher, error) {
	abs, err := absPaths(paths)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &Watcher{fs: fw, paths: abs, trigger: trigger}

	if err := w.addDirsRecursive(abs.ContentDir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	if abs.Stylesheet != "" {
		if err := fw.Add(filepath.Dir(abs.Stylesheet)); err != nil {
			slog.Warn("Cannot watch stylesheet", logfields.Path(abs.Stylesheet), logfields.Error(err))
		}
	}
	return w, nil
}

// Run consumes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !w.relevant(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), "op", ev.Op.String())
	w.trigger()
}

func (w *Watcher) relevant(path string) bool {
	if shouldIgnoreEvent(path) {
		return false
	}
	if w.paths.Stylesheet != "" && path == w.paths.Stylesheet {
		return true
	}
	if w.paths.OutputDir != "" && within(w.paths.OutputDir, path) {
		return false
	}
	return within(w.paths.ContentDir, path)
}

func (w *Watcher) addDirsRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.paths.OutputDir != "" && within(w.paths.OutputDir, path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func absPaths(p WatchPaths) (WatchPaths, error) {
	var out WatchPaths
	for _, pair := range []struct {
		in  string
		out *string
	}{
		{p.ContentDir, &out.ContentDir},
		{p.Stylesheet, &out.Stylesheet},
		{p.OutputDir, &out.OutputDir},
	} {
		if pair.in == "" {
			continue
		}
		abs, err := filepath.Abs(pair.in)
		if err != nil {
			return WatchPaths{}, fmt.Errorf("resolve %s: %w", pair.in, err)
		}
		*pair.out = abs
	}
	if out.ContentDir == "" {
		return WatchPaths{}, fmt.Errorf("content dir required")
	}
	return out, nil
}

// within reports whether path equals dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Hidden files, including .DS_Store and emacs lock files
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}
