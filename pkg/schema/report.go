package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// LoadReport summarizes a scan of a plugin directory. Failed lists plugins
// which were not loaded, Skipped lists single tools of loaded plugins
// which were not registered.
type LoadReport struct {
	Loaded     []string      `json:"loaded"`
	Failed     []LoadFailure `json:"failed,omitempty"`
	Skipped    []LoadFailure `json:"skipped,omitempty"`
	TotalTools int           `json:"total_tools"`
}

// LoadFailure is a plugin, or a tool within a plugin, which could not be
// loaded
type LoadFailure struct {
	Path  string `json:"path"`
	Tool  string `json:"tool,omitempty"`
	Error string `json:"error"`
}

// Stats are registry counters
type Stats struct {
	PluginCount  int `json:"plugin_count"`
	ToolCount    int `json:"tool_count"`
	EnabledCount int `json:"enabled_count"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Failures returns the failed plugins followed by the skipped tools
func (r LoadReport) Failures() []LoadFailure {
	result := make([]LoadFailure, 0, len(r.Failed)+len(r.Skipped))
	result = append(result, r.Failed...)
	return append(result, r.Skipped...)
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r LoadReport) String() string {
	return types.Stringify(r)
}

func (s Stats) String() string {
	return types.Stringify(s)
}
