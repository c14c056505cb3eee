package plugin

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	registry "github.com/mutablelogic/go-toolcall/pkg/registry"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	settings "github.com/mutablelogic/go-toolcall/pkg/settings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Loader discovers plugin directories, parses their manifests and binds the
// declared tools to compiled-in handlers
type Loader struct {
	mu       sync.Mutex
	registry *registry.Registry
	plugins  Set
	settings toolcall.Settings
	sync     func(*registry.Registry)
	logger   *slog.Logger
	dir      string
}

// candidate is a parsed plugin with its bound tools, not yet registered
type candidate struct {
	desc    *schema.PluginDescriptor
	tools   []schema.ToolDefinition
	skipped []schema.LoadFailure
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var ignoreDirs = map[string]bool{
	"__pycache__":  true,
	"node_modules": true,
	"venv":         true,
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewLoader creates a loader which registers into the registry, binding
// handlers from the set of compiled-in plugins
func NewLoader(r *registry.Registry, plugins Set, opts ...Opt) (*Loader, error) {
	if r == nil {
		return nil, toolcall.ErrBadParameter.With("registry is required")
	}
	l := &Loader{
		registry: r,
		plugins:  plugins,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Dir returns the directory most recently passed to LoadAll
func (l *Loader) Dir() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dir
}

// LoadAll loads every plugin in the immediate subdirectories of dir.
// Failures are collected in the report and never abort the scan.
func (l *Loader) LoadAll(dir string) schema.LoadReport {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.synchronize()

	l.dir = dir
	return l.loadAll(dir)
}

// LoadOne loads the plugin in a directory and registers it, replacing a
// loaded plugin with the same id
func (l *Loader) LoadOne(path string) (*schema.PluginDescriptor, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.synchronize()

	c, err := l.prepare(path)
	if err != nil {
		return nil, err
	}
	if err := l.publish(c); err != nil {
		return nil, err
	}
	return c.desc, nil
}

// ReloadOne reads the manifest of a loaded plugin again and swaps in the
// new tool set. Returns false if the plugin cannot be found or fails to
// load, in which case it is unregistered.
func (l *Loader) ReloadOne(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.synchronize()

	path := l.locate(id)
	if path == "" {
		l.logger.Warn("plugin not found", "plugin", id, "dir", l.dir)
		return false
	}
	c, err := l.prepare(path)
	if err == nil {
		err = l.publish(c)
	}
	if err != nil {
		l.registry.UnregisterPlugin(id)
		l.logger.Error("plugin reload failed", "plugin", id, "path", path, "error", err)
		return false
	} else if c.desc.ID != id {
		// The manifest id changed underneath us
		l.registry.UnregisterPlugin(id)
	}
	return true
}

// Unload removes a plugin and its tools
func (l *Loader) Unload(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.synchronize()

	l.registry.UnregisterPlugin(id)
}

// ReloadAll clears the registry and loads the last directory again
func (l *Loader) ReloadAll() schema.LoadReport {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.synchronize()

	l.registry.Clear()
	return l.loadAll(l.dir)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (l *Loader) loadAll(dir string) schema.LoadReport {
	report := schema.LoadReport{
		Loaded: []string{},
	}
	if dir == "" {
		return report
	}

	// Entries are returned sorted by name
	entries, err := os.ReadDir(dir)
	if err != nil {
		report.Failed = append(report.Failed, schema.LoadFailure{Path: dir, Error: err.Error()})
		return report
	}
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || skipDir(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		c, err := l.prepare(path)
		if err == nil {
			if other, exists := seen[c.desc.ID]; exists {
				err = toolcall.ErrDuplicateName.Withf("plugin %q already loaded from %q", c.desc.ID, other)
			} else {
				err = l.publish(c)
			}
		}
		if err != nil {
			l.logger.Error("plugin load failed", "path", path, "error", err)
			report.Failed = append(report.Failed, schema.LoadFailure{Path: path, Error: err.Error()})
			continue
		}
		seen[c.desc.ID] = path
		report.Loaded = append(report.Loaded, c.desc.ID)
		report.Skipped = append(report.Skipped, c.skipped...)
		report.TotalTools += len(c.tools)
	}

	l.logger.Info("plugins loaded", "dir", dir, "loaded", len(report.Loaded), "failed", len(report.Failed), "skipped", len(report.Skipped), "tools", report.TotalTools)
	return report
}

// prepare reads the manifest in a directory and binds its tools. Tools
// which cannot be bound, or whose name belongs to another plugin, are
// skipped. Enablement from the settings store is applied so that tools are
// never published enabled when the operator has disabled them.
func (l *Loader) prepare(path string) (*candidate, error) {
	desc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	plugin := l.plugins.Lookup(desc.ID)
	if plugin == nil {
		return nil, toolcall.ErrLoad.Withf("no handlers compiled in for plugin %q", desc.ID)
	}

	c := &candidate{
		desc:  desc,
		tools: make([]schema.ToolDefinition, 0, len(desc.Tools)),
	}
	handlers := plugin.Handlers()
	for _, entry := range desc.Tools {
		var skip error
		if handler, exists := handlers[entry.Handler]; !exists || handler == nil {
			skip = toolcall.ErrLoad.Withf("handler %q not found", entry.Handler)
		} else if existing := l.registry.Tool(entry.Name); existing != nil && existing.Plugin != desc.ID {
			skip = toolcall.ErrDuplicateName.Withf("tool %q already registered by plugin %q", entry.Name, existing.Plugin)
		} else {
			c.tools = append(c.tools, *schema.NewToolDefinition(desc.ID, entry, l.bind(desc, handler)))
			continue
		}
		l.logger.Warn("skip tool", "plugin", desc.ID, "tool", entry.Name, "error", skip)
		c.skipped = append(c.skipped, schema.LoadFailure{Path: path, Tool: entry.Name, Error: skip.Error()})
	}

	if missing := settings.Apply(l.settings, *desc, c.tools); len(missing) > 0 {
		l.logger.Warn("plugin is not configured", "plugin", desc.ID, "missing", missing)
	}
	return c, nil
}

// publish registers a prepared plugin, replacing a plugin with the same id
func (l *Loader) publish(c *candidate) error {
	if err := l.registry.ReplacePlugin(*c.desc, c.tools); err != nil {
		return err
	}
	l.logger.Info("loaded plugin", "plugin", c.desc.ID, "version", c.desc.Version, "tools", len(c.tools))
	return nil
}

// bind wraps a handler so it sees its plugin and settings in the context
func (l *Loader) bind(desc *schema.PluginDescriptor, handler schema.Handler) schema.Handler {
	settings := l.settings
	return func(ctx context.Context, args map[string]any) (any, error) {
		return handler(WithContext(ctx, desc, settings), args)
	}
}

// locate returns the directory of a plugin, either from the registry or by
// scanning the plugin directory for a manifest with the id
func (l *Loader) locate(id string) string {
	if desc := l.registry.Plugin(id); desc != nil && desc.Path != "" {
		return desc.Path
	}
	if l.dir == "" {
		return ""
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() || skipDir(entry.Name()) {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		if desc, err := ReadManifest(path); err == nil && desc.ID == id {
			return path
		}
	}
	return ""
}

func (l *Loader) synchronize() {
	if l.sync != nil {
		l.sync(l.registry)
	}
}

// skipDir returns true for hidden, private and tooling directories
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || ignoreDirs[name]
}
