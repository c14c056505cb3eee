package registry

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	toolcall "github.com/mutablelogic/go-toolcall"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Registry is the catalog of loaded plugins and tools. Reads are lock-free
// against an immutable snapshot; writes are serialized and publish a new
// snapshot.
type Registry struct {
	mu     sync.Mutex
	state  atomic.Pointer[snapshot]
	logger *slog.Logger
}

// snapshot is never modified once published
type snapshot struct {
	plugins map[string]*schema.PluginDescriptor
	tools   map[string]*schema.ToolDefinition
	order   []string
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates an empty registry
func New(opts ...Opt) (*Registry, error) {
	r := &Registry{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.state.Store(newSnapshot())
	return r, nil
}

func newSnapshot() *snapshot {
	return &snapshot{
		plugins: make(map[string]*schema.PluginDescriptor),
		tools:   make(map[string]*schema.ToolDefinition),
	}
}

///////////////////////////////////////////////////////////////////////////////
// WRITE METHODS

// RegisterPlugin adds a plugin descriptor, or replaces the descriptor of a
// plugin with the same id. Tools already registered for the plugin are kept,
// and are disabled when the new descriptor disables the plugin.
func (r *Registry) RegisterPlugin(desc schema.PluginDescriptor) error {
	if !types.IsIdentifier(desc.ID) {
		return toolcall.ErrBadParameter.Withf("invalid plugin id: %q", desc.ID)
	}
	return r.update(func(s *snapshot) error {
		s.plugins[desc.ID] = &desc
		if !desc.IsEnabled() {
			for name, def := range s.tools {
				if def.Plugin == desc.ID && def.Enabled {
					s.tools[name] = types.Ptr(*def)
					s.tools[name].Enabled = false
				}
			}
		}
		r.logger.Debug("registered plugin", "plugin", desc.ID, "version", desc.Version)
		return nil
	})
}

// RegisterTool adds a tool. Returns ErrDuplicateName if a tool with the
// same name exists, in which case the existing tool is left untouched.
func (r *Registry) RegisterTool(def schema.ToolDefinition) error {
	if !types.IsIdentifier(def.Name) {
		return toolcall.ErrBadParameter.Withf("invalid tool name: %q", def.Name)
	} else if def.Handler == nil {
		return toolcall.ErrBadParameter.Withf("tool %q has no handler", def.Name)
	}
	return r.update(func(s *snapshot) error {
		return s.addTool(def)
	})
}

// UnregisterPlugin removes a plugin and every tool it owns. Unknown ids
// are ignored.
func (r *Registry) UnregisterPlugin(id string) {
	_ = r.update(func(s *snapshot) error {
		if _, exists := s.plugins[id]; !exists {
			return nil
		}
		n := s.removePlugin(id)
		r.logger.Debug("unregistered plugin", "plugin", id, "tools", n)
		return nil
	})
}

// ReplacePlugin registers a plugin and its tools in one write, replacing
// any plugin with the same id. Readers see either the old or the new set of
// tools, never neither. On error the registry is unchanged.
func (r *Registry) ReplacePlugin(desc schema.PluginDescriptor, tools []schema.ToolDefinition) error {
	if !types.IsIdentifier(desc.ID) {
		return toolcall.ErrBadParameter.Withf("invalid plugin id: %q", desc.ID)
	}
	for _, def := range tools {
		if !types.IsIdentifier(def.Name) {
			return toolcall.ErrBadParameter.Withf("invalid tool name: %q", def.Name)
		} else if def.Handler == nil {
			return toolcall.ErrBadParameter.Withf("tool %q has no handler", def.Name)
		}
	}
	return r.update(func(s *snapshot) error {
		s.removePlugin(desc.ID)
		s.plugins[desc.ID] = &desc
		for _, def := range tools {
			def.Plugin = desc.ID
			if err := s.addTool(def); err != nil {
				return err
			}
		}
		r.logger.Debug("replaced plugin", "plugin", desc.ID, "version", desc.Version, "tools", len(tools))
		return nil
	})
}

// EnableTool enables a tool, returning false if the name is unknown
func (r *Registry) EnableTool(name string) bool {
	return r.setEnabled(name, true)
}

// DisableTool disables a tool, returning false if the name is unknown
func (r *Registry) DisableTool(name string) bool {
	return r.setEnabled(name, false)
}

// Clear removes all plugins and tools
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Store(newSnapshot())
}

///////////////////////////////////////////////////////////////////////////////
// READ METHODS

// Tool returns a copy of a tool definition, or nil
func (r *Registry) Tool(name string) *schema.ToolDefinition {
	if def, exists := r.state.Load().tools[name]; exists {
		return types.Ptr(*def)
	}
	return nil
}

// Plugin returns a copy of a plugin descriptor, or nil
func (r *Registry) Plugin(id string) *schema.PluginDescriptor {
	if desc, exists := r.state.Load().plugins[id]; exists {
		return types.Ptr(*desc)
	}
	return nil
}

// Plugins returns all plugin descriptors sorted by id
func (r *Registry) Plugins() []schema.PluginDescriptor {
	s := r.state.Load()
	result := make([]schema.PluginDescriptor, 0, len(s.plugins))
	for _, desc := range s.plugins {
		result = append(result, *desc)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// AllTools returns every tool in registration order
func (r *Registry) AllTools() []schema.ToolDefinition {
	return r.state.Load().filter(func(*schema.ToolDefinition) bool { return true })
}

// EnabledTools returns the enabled tools in registration order
func (r *Registry) EnabledTools() []schema.ToolDefinition {
	return r.state.Load().filter(func(def *schema.ToolDefinition) bool { return def.Enabled })
}

// ToolsByPlugin returns the tools owned by a plugin in registration order
func (r *Registry) ToolsByPlugin(id string) []schema.ToolDefinition {
	return r.state.Load().filter(func(def *schema.ToolDefinition) bool { return def.Plugin == id })
}

// IsToolEnabled returns true if the tool exists and is enabled
func (r *Registry) IsToolEnabled(name string) bool {
	def, exists := r.state.Load().tools[name]
	return exists && def.Enabled
}

// Catalog returns the model-facing list of enabled tools
func (r *Registry) Catalog() []schema.CatalogEntry {
	tools := r.EnabledTools()
	result := make([]schema.CatalogEntry, 0, len(tools))
	for _, def := range tools {
		result = append(result, def.Catalog())
	}
	return result
}

// Stats returns the plugin, tool and enabled tool counts
func (r *Registry) Stats() schema.Stats {
	s := r.state.Load()
	stats := schema.Stats{
		PluginCount: len(s.plugins),
		ToolCount:   len(s.tools),
	}
	for _, def := range s.tools {
		if def.Enabled {
			stats.EnabledCount++
		}
	}
	return stats
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// update clones the current snapshot, applies fn and publishes the result
// if fn succeeds
func (r *Registry) update(fn func(*snapshot) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.state.Load().clone()
	if err := fn(next); err != nil {
		return err
	}
	r.state.Store(next)
	return nil
}

func (r *Registry) setEnabled(name string, enabled bool) bool {
	found := false
	_ = r.update(func(s *snapshot) error {
		def, exists := s.tools[name]
		if !exists {
			return toolcall.ErrNotFound
		}
		found = true
		if def.Enabled != enabled {
			s.tools[name] = types.Ptr(*def)
			s.tools[name].Enabled = enabled
			r.logger.Debug("tool enablement changed", "tool", name, "enabled", enabled)
		}
		return nil
	})
	return found
}

func (s *snapshot) clone() *snapshot {
	next := &snapshot{
		plugins: make(map[string]*schema.PluginDescriptor, len(s.plugins)),
		tools:   make(map[string]*schema.ToolDefinition, len(s.tools)),
		order:   make([]string, len(s.order)),
	}
	for k, v := range s.plugins {
		next.plugins[k] = v
	}
	for k, v := range s.tools {
		next.tools[k] = v
	}
	copy(next.order, s.order)
	return next
}

func (s *snapshot) addTool(def schema.ToolDefinition) error {
	if existing, exists := s.tools[def.Name]; exists {
		return toolcall.ErrDuplicateName.Withf("tool %q already registered by plugin %q", def.Name, existing.Plugin)
	}
	if def.Plugin != "" {
		plugin, exists := s.plugins[def.Plugin]
		if !exists {
			return toolcall.ErrNotFound.Withf("plugin %q for tool %q", def.Plugin, def.Name)
		}
		def.Enabled = def.Enabled && plugin.IsEnabled()
	}
	if def.Timeout <= 0 {
		def.Timeout = schema.DefaultTimeout
	}
	s.tools[def.Name] = &def
	s.order = append(s.order, def.Name)
	return nil
}

// removePlugin deletes the plugin and its tools, returning the number of
// tools removed
func (s *snapshot) removePlugin(id string) int {
	delete(s.plugins, id)
	order := s.order[:0]
	n := 0
	for _, name := range s.order {
		if s.tools[name].Plugin == id {
			delete(s.tools, name)
			n++
		} else {
			order = append(order, name)
		}
	}
	s.order = order
	return n
}

func (s *snapshot) filter(fn func(*schema.ToolDefinition) bool) []schema.ToolDefinition {
	result := make([]schema.ToolDefinition, 0, len(s.order))
	for _, name := range s.order {
		if def := s.tools[name]; fn(def) {
			result = append(result, *def)
		}
	}
	return result
}
