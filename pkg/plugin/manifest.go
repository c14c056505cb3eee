package plugin

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	// Packages
	toml "github.com/BurntSushi/toml"
	types "github.com/mutablelogic/go-server/pkg/types"
	toolcall "github.com/mutablelogic/go-toolcall"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ManifestNames are the manifest file names tried in order
var ManifestNames = []string{"plugin.yaml", "plugin.yml", "plugin.toml", "plugin.json"}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ReadManifest reads and validates the manifest in a plugin directory.
// Errors wrap ErrLoad.
func ReadManifest(dir string) (*schema.PluginDescriptor, error) {
	for _, name := range ManifestNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, toolcall.ErrLoad.With(err)
		}
		desc, err := ParseManifest(data, filepath.Ext(name))
		if err != nil {
			return nil, toolcall.ErrLoad.Withf("%s: %v", path, err)
		}
		desc.Path = dir
		return desc, nil
	}
	return nil, toolcall.ErrLoad.Withf("no manifest in %q", dir)
}

// ParseManifest decodes a manifest. The format is the file extension
// (".yaml", ".yml", ".toml" or ".json").
func ParseManifest(data []byte, format string) (*schema.PluginDescriptor, error) {
	var desc schema.PluginDescriptor
	switch format {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&desc); err != nil {
			return nil, err
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &desc); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &desc); err != nil {
			return nil, err
		}
	default:
		return nil, toolcall.ErrNotImplemented.Withf("manifest format %q", format)
	}
	if err := validate(&desc); err != nil {
		return nil, err
	}
	return &desc, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func validate(desc *schema.PluginDescriptor) error {
	if !types.IsIdentifier(desc.ID) {
		return toolcall.ErrBadParameter.Withf("invalid plugin id: %q", desc.ID)
	}
	if desc.Name == "" {
		return toolcall.ErrBadParameter.Withf("plugin %q: missing name", desc.ID)
	}
	if desc.Version == "" {
		return toolcall.ErrBadParameter.Withf("plugin %q: missing version", desc.ID)
	}

	// Tools
	seen := make(map[string]bool, len(desc.Tools))
	for i := range desc.Tools {
		tool := &desc.Tools[i]
		if !types.IsIdentifier(tool.Name) {
			return toolcall.ErrBadParameter.Withf("invalid tool name: %q", tool.Name)
		} else if seen[tool.Name] {
			return toolcall.ErrDuplicateName.Withf("tool %q declared twice", tool.Name)
		} else {
			seen[tool.Name] = true
		}
		if tool.Description == "" {
			return toolcall.ErrBadParameter.Withf("tool %q: missing description", tool.Name)
		}
		if tool.Handler == "" {
			return toolcall.ErrBadParameter.Withf("tool %q: missing handler", tool.Name)
		}
		if tool.Timeout < 0 {
			return toolcall.ErrBadParameter.Withf("tool %q: negative timeout", tool.Name)
		} else if tool.Timeout == 0 {
			tool.Timeout = schema.DefaultTimeout.Seconds()
		}
		if _, err := tool.Parameters.Resolve(); err != nil {
			return toolcall.ErrBadParameter.Withf("tool %q: parameters: %v", tool.Name, err)
		}
	}

	// Settings
	keys := make(map[string]bool, len(desc.Settings))
	for i := range desc.Settings {
		setting := &desc.Settings[i]
		if setting.Key == "" {
			return toolcall.ErrBadParameter.Withf("plugin %q: setting without key", desc.ID)
		} else if keys[setting.Key] {
			return toolcall.ErrDuplicateName.Withf("setting %q declared twice", setting.Key)
		} else {
			keys[setting.Key] = true
		}
		if setting.Label == "" {
			setting.Label = setting.Key
		}
		if setting.Type = setting.Type.Normalize(); !setting.Type.Valid() {
			return toolcall.ErrBadParameter.Withf("setting %q: unknown type %q", setting.Key, setting.Type)
		}
		if setting.Type == schema.SettingChoice && len(setting.Options) == 0 {
			return toolcall.ErrBadParameter.Withf("setting %q: choice without options", setting.Key)
		}
	}

	return nil
}
