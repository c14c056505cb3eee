package plugin

import (
	"log/slog"
	"time"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	registry "github.com/mutablelogic/go-toolcall/pkg/registry"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a loader
type Opt func(*Loader) error

// WatchOpt is a functional option for configuring a watcher
type WatchOpt func(*Watcher) error

///////////////////////////////////////////////////////////////////////////////
// LOADER OPTIONS

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Opt {
	return func(l *Loader) error {
		if logger == nil {
			return toolcall.ErrBadParameter.With("logger is required")
		}
		l.logger = logger
		return nil
	}
}

// WithSettings sets the settings store exposed to handlers
func WithSettings(settings toolcall.Settings) Opt {
	return func(l *Loader) error {
		l.settings = settings
		return nil
	}
}

// WithSync sets a function called after each load or reload, typically
// to apply operator enablement to the registry
func WithSync(fn func(*registry.Registry)) Opt {
	return func(l *Loader) error {
		l.sync = fn
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// WATCHER OPTIONS

// WithDebounce sets the delay between the last change and a reload
func WithDebounce(delay time.Duration) WatchOpt {
	return func(w *Watcher) error {
		if delay <= 0 {
			return toolcall.ErrBadParameter.Withf("invalid debounce %v", delay)
		}
		w.debounce = delay
		return nil
	}
}

// WithWatchLogger sets the structured logger of a watcher
func WithWatchLogger(logger *slog.Logger) WatchOpt {
	return func(w *Watcher) error {
		if logger == nil {
			return toolcall.ErrBadParameter.With("logger is required")
		}
		w.logger = logger
		return nil
	}
}
