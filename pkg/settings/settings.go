package settings

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	registry "github.com/mutablelogic/go-toolcall/pkg/registry"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	maskPrefix = "***"
	maskTail   = 5
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Value returns the stored value of a plugin setting, or the default
// declared in the manifest
func Value(store toolcall.Settings, desc schema.PluginDescriptor, key string) any {
	if store != nil {
		if value, exists := store.PluginSetting(desc.ID, key); exists && !isEmpty(value) {
			return value
		}
	}
	if setting := desc.Setting(key); setting != nil {
		return setting.Default
	}
	return nil
}

// Configured returns true if every required setting of the plugin has a value
func Configured(store toolcall.Settings, desc schema.PluginDescriptor) bool {
	return len(Missing(store, desc)) == 0
}

// Missing returns the keys of required settings without a value. Masked
// values count as missing.
func Missing(store toolcall.Settings, desc schema.PluginDescriptor) []string {
	var result []string
	for _, setting := range desc.Settings {
		if !setting.Required {
			continue
		}
		value := Value(store, desc, setting.Key)
		if str, ok := value.(string); ok && strings.HasPrefix(str, maskPrefix) {
			value = nil
		}
		if isEmpty(value) {
			result = append(result, setting.Key)
		}
	}
	return result
}

// Validate checks values against setting descriptors, returning a map of
// key to error message. An empty map means the values are valid.
func Validate(settings []schema.SettingDescriptor, values map[string]any) map[string]string {
	result := make(map[string]string)
	for _, setting := range settings {
		value := values[setting.Key]
		if isEmpty(value) {
			if setting.Required {
				result[setting.Key] = "Required field is empty"
			}
			continue
		}
		switch setting.Type.Normalize() {
		case schema.SettingNumber:
			if _, ok := number(value); !ok {
				result[setting.Key] = "Must be a number"
			}
		case schema.SettingBoolean:
			if _, ok := value.(bool); !ok {
				result[setting.Key] = "Must be true or false"
			}
		case schema.SettingChoice:
			if !contains(setting.Options, fmt.Sprint(value)) {
				result[setting.Key] = fmt.Sprintf("Must be one of %s", strings.Join(setting.Options, ", "))
			}
		}
	}
	return result
}

// Mask hides a secret, keeping the last five characters
func Mask(value string) string {
	if len(value) <= maskTail {
		return maskPrefix
	}
	return maskPrefix + value[len(value)-maskTail:]
}

// MaskValues returns a copy of the values with secrets masked
func MaskValues(settings []schema.SettingDescriptor, values map[string]any) map[string]any {
	result := make(map[string]any, len(values))
	for key, value := range values {
		result[key] = value
	}
	for _, setting := range settings {
		if setting.Type.Normalize() != schema.SettingSecret {
			continue
		}
		if value, exists := result[setting.Key]; exists && !isEmpty(value) {
			result[setting.Key] = Mask(fmt.Sprint(value))
		}
	}
	return result
}

// Sync applies the stored enablement to every registered tool, and disables
// the tools of plugins which are missing required settings
func Sync(r *registry.Registry, store toolcall.Settings, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	var synced int
	for _, tool := range r.AllTools() {
		if enabled, exists := store.ToolEnabled(tool.Name); exists {
			if enabled {
				r.EnableTool(tool.Name)
			} else {
				r.DisableTool(tool.Name)
			}
			synced++
		}
	}
	for _, desc := range r.Plugins() {
		missing := Missing(store, desc)
		if len(missing) == 0 {
			continue
		}
		for _, tool := range r.ToolsByPlugin(desc.ID) {
			r.DisableTool(tool.Name)
		}
		logger.Warn("plugin is not configured", "plugin", desc.ID, "missing", missing)
	}
	logger.Debug("synced tool settings", "tools", synced)
}

// Apply sets the enablement of tools before they are registered for a
// plugin, using the same rules as Sync. Returns the missing required
// settings, in which case every tool is disabled.
func Apply(store toolcall.Settings, desc schema.PluginDescriptor, tools []schema.ToolDefinition) []string {
	if store == nil {
		return nil
	}
	missing := Missing(store, desc)
	for i := range tools {
		if enabled, exists := store.ToolEnabled(tools[i].Name); exists {
			tools[i].Enabled = enabled
		}
		if len(missing) > 0 {
			tools[i].Enabled = false
		}
	}
	return missing
}

// Syncer returns a function which calls Sync, for use as a loader hook
func Syncer(store toolcall.Settings, logger *slog.Logger) func(*registry.Registry) {
	return func(r *registry.Registry) {
		Sync(r, store, logger)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if str, ok := value.(string); ok {
		return strings.TrimSpace(str) == ""
	}
	return false
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
