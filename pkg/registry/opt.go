package registry

import (
	"log/slog"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a registry
type Opt func(*Registry) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Opt {
	return func(r *Registry) error {
		if logger == nil {
			return toolcall.ErrBadParameter.With("logger is required")
		}
		r.logger = logger
		return nil
	}
}
