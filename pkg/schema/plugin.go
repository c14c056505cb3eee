package schema

import (
	"strings"
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// PluginDescriptor is the parsed manifest of a plugin
type PluginDescriptor struct {
	ID          string              `json:"id" yaml:"id" toml:"id"`
	Name        string              `json:"name" yaml:"name" toml:"name"`
	Version     string              `json:"version,omitempty" yaml:"version" toml:"version"`
	Description string              `json:"description,omitempty" yaml:"description" toml:"description"`
	Enabled     *bool               `json:"enabled,omitempty" yaml:"enabled" toml:"enabled"`
	Tools       []ToolManifestEntry `json:"tools,omitempty" yaml:"tools" toml:"tools"`
	Settings    []SettingDescriptor `json:"settings,omitempty" yaml:"settings" toml:"settings"`

	// Directory the manifest was read from, empty when registered in code
	Path string `json:"path,omitempty" yaml:"-" toml:"-"`
}

// ToolManifestEntry declares one tool of a plugin
type ToolManifestEntry struct {
	Name        string     `json:"name" yaml:"name" toml:"name"`
	Description string     `json:"description" yaml:"description" toml:"description"`
	Handler     string     `json:"handler" yaml:"handler" toml:"handler"`
	Timeout     float64    `json:"timeout,omitempty" yaml:"timeout" toml:"timeout"`
	Parameters  JSONSchema `json:"parameters,omitempty" yaml:"parameters" toml:"parameters"`
}

// SettingDescriptor declares a configuration value a plugin reads
type SettingDescriptor struct {
	Key         string      `json:"key" yaml:"key" toml:"key"`
	Label       string      `json:"label,omitempty" yaml:"label" toml:"label"`
	Type        SettingType `json:"type" yaml:"type" toml:"type"`
	Required    bool        `json:"required,omitempty" yaml:"required" toml:"required"`
	Default     any         `json:"default,omitempty" yaml:"default" toml:"default"`
	Options     []string    `json:"options,omitempty" yaml:"options" toml:"options"`
	Description string      `json:"description,omitempty" yaml:"description" toml:"description"`
}

// SettingType is the type tag of a setting
type SettingType string

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	SettingText    SettingType = "text"
	SettingSecret  SettingType = "secret"
	SettingNumber  SettingType = "number"
	SettingBoolean SettingType = "boolean"
	SettingChoice  SettingType = "choice"
)

const (
	// DefaultTimeout is applied to tools which do not declare a timeout
	DefaultTimeout = 30 * time.Second
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsEnabled returns the plugin-level default, which is true unless the
// manifest says otherwise
func (p PluginDescriptor) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// Tool returns a manifest entry by name, or nil
func (p PluginDescriptor) Tool(name string) *ToolManifestEntry {
	for i := range p.Tools {
		if p.Tools[i].Name == name {
			return &p.Tools[i]
		}
	}
	return nil
}

// Setting returns a setting descriptor by key, or nil
func (p PluginDescriptor) Setting(key string) *SettingDescriptor {
	for i := range p.Settings {
		if p.Settings[i].Key == key {
			return &p.Settings[i]
		}
	}
	return nil
}

// Duration returns the tool timeout, or DefaultTimeout when none is set
func (t ToolManifestEntry) Duration() time.Duration {
	if t.Timeout <= 0 {
		return DefaultTimeout
	}
	return time.Duration(t.Timeout * float64(time.Second))
}

// Normalize maps legacy type names onto the canonical set. An empty type
// is text.
func (t SettingType) Normalize() SettingType {
	switch SettingType(strings.ToLower(strings.TrimSpace(string(t)))) {
	case "", "string", SettingText:
		return SettingText
	case "password", SettingSecret:
		return SettingSecret
	case "int", "integer", "float", SettingNumber:
		return SettingNumber
	case "bool", SettingBoolean:
		return SettingBoolean
	case "select", SettingChoice:
		return SettingChoice
	}
	return t
}

// Valid returns true if the type is one of the canonical set
func (t SettingType) Valid() bool {
	switch t {
	case SettingText, SettingSecret, SettingNumber, SettingBoolean, SettingChoice:
		return true
	}
	return false
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (p PluginDescriptor) String() string {
	return types.Stringify(p)
}

func (t ToolManifestEntry) String() string {
	return types.Stringify(t)
}
