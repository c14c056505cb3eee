package plugin

import (
	"context"
	"fmt"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type contextKey struct{}

type pluginContext struct {
	desc     *schema.PluginDescriptor
	settings toolcall.Settings
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithContext returns a context which carries the calling plugin and the
// settings store, for handlers to read their configuration
func WithContext(ctx context.Context, desc *schema.PluginDescriptor, settings toolcall.Settings) context.Context {
	return context.WithValue(ctx, contextKey{}, &pluginContext{desc: desc, settings: settings})
}

// ID returns the plugin id of the calling handler, or an empty string
func ID(ctx context.Context) string {
	if pc := fromContext(ctx); pc != nil && pc.desc != nil {
		return pc.desc.ID
	}
	return ""
}

// Setting returns the stored value of a plugin setting, falling back to the
// default declared in the manifest. Returns false if neither exists.
func Setting(ctx context.Context, key string) (any, bool) {
	pc := fromContext(ctx)
	if pc == nil || pc.desc == nil {
		return nil, false
	}
	if pc.settings != nil {
		if value, exists := pc.settings.PluginSetting(pc.desc.ID, key); exists && value != nil && value != "" {
			return value, true
		}
	}
	if setting := pc.desc.Setting(key); setting != nil && setting.Default != nil {
		return setting.Default, true
	}
	return nil, false
}

// SettingString returns a setting as a string, or an empty string
func SettingString(ctx context.Context, key string) string {
	value, exists := Setting(ctx, key)
	if !exists {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func fromContext(ctx context.Context) *pluginContext {
	if pc, ok := ctx.Value(contextKey{}).(*pluginContext); ok {
		return pc
	}
	return nil
}
