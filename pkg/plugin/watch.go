package plugin

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Packages
	fsnotify "github.com/fsnotify/fsnotify"
	toolcall "github.com/mutablelogic/go-toolcall"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Watcher reloads plugins when files in their directories change
type Watcher struct {
	loader   *Loader
	dir      string
	debounce time.Duration
	logger   *slog.Logger
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultDebounce = 500 * time.Millisecond
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewWatcher returns a watcher for a plugin directory. Plugins should have
// been loaded from the same directory first.
func NewWatcher(loader *Loader, dir string, opts ...WatchOpt) (*Watcher, error) {
	if loader == nil {
		return nil, toolcall.ErrBadParameter.With("loader is required")
	} else if dir == "" {
		return nil, toolcall.ErrBadParameter.With("plugin directory is required")
	}
	w := &Watcher{
		loader:   loader,
		dir:      filepath.Clean(dir),
		debounce: defaultDebounce,
		logger:   loader.logger,
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Run watches until the context is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the plugin directory and each plugin in it
	if err := watcher.Add(w.dir); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() && !skipDir(entry.Name()) {
			if err := watcher.Add(filepath.Join(w.dir, entry.Name())); err != nil {
				w.logger.Warn("cannot watch plugin", "path", entry.Name(), "error", err)
			}
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time
	pending := make(map[string]bool)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.logger.Debug("watching plugins", "dir", w.dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := w.pluginDir(event.Name)
			if path == "" {
				continue
			}
			// A new plugin directory needs its own watch
			if event.Op&fsnotify.Create != 0 && path == event.Name {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					_ = watcher.Add(path)
				}
			}
			pending[path] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			for path := range pending {
				w.apply(path)
			}
			pending = make(map[string]bool)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("plugin watcher", "error", err)
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// pluginDir returns the plugin directory an event path belongs to, or an
// empty string when the path is not inside a plugin directory
func (w *Watcher) pluginDir(name string) string {
	rel, err := filepath.Rel(w.dir, name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	first := strings.Split(rel, string(filepath.Separator))[0]
	if skipDir(first) {
		return ""
	}
	return filepath.Join(w.dir, first)
}

// apply brings the registry in line with one plugin directory
func (w *Watcher) apply(path string) {
	id := w.pluginAt(path)

	// Removed directory
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if id != "" {
			w.loader.Unload(id)
			w.logger.Info("plugin removed", "plugin", id, "path", path)
		}
		return
	}

	// Changed or new plugin
	if id != "" {
		ok := w.loader.ReloadOne(id)
		w.logger.Info("plugin reloaded", "plugin", id, "ok", ok)
	} else if desc, err := w.loader.LoadOne(path); err != nil {
		w.logger.Warn("plugin load failed", "path", path, "error", err)
	} else {
		w.logger.Info("plugin added", "plugin", desc.ID, "path", path)
	}
}

// pluginAt returns the id of the registered plugin loaded from a path
func (w *Watcher) pluginAt(path string) string {
	for _, desc := range w.loader.registry.Plugins() {
		if filepath.Clean(desc.Path) == path {
			return desc.ID
		}
	}
	return ""
}
