package plugin_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
	registry "github.com/mutablelogic/go-toolcall/pkg/registry"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

const echoManifest = `
id: echo
name: Echo
version: 1.0.0
tools:
  - name: echo
    description: Echo the text argument
    handler: echo
    timeout: 5
    parameters:
      type: object
      properties:
        text:
          type: string
      required: [text]
  - name: shout
    description: Echo the text argument in capitals
    handler: shout_missing
settings:
  - key: prefix
    label: Prefix
    type: string
    default: ">"
`

const mathManifest = `
id = "math"
name = "Math"
version = "0.1.0"

[[tools]]
name = "add"
description = "Add two numbers"
handler = "add"
`

// mockStore is a settings store backed by a map. Tool enablement is stored
// under "tool.<name>".
type mockStore map[string]any

func (m mockStore) PluginSetting(plugin, key string) (any, bool) {
	value, exists := m[plugin+"."+key]
	return value, exists
}

func (m mockStore) ToolEnabled(name string) (bool, bool) {
	enabled, exists := m["tool."+name].(bool)
	return enabled, exists
}

var _ toolcall.Settings = mockStore(nil)

func testPlugins(t *testing.T) plugin.Set {
	t.Helper()
	set, err := plugin.NewSet(
		plugin.New("echo", plugin.Handlers{
			"echo": func(ctx context.Context, args map[string]any) (any, error) {
				text, err := plugin.String(args, "text")
				if err != nil {
					return nil, err
				}
				return plugin.SettingString(ctx, "prefix") + text, nil
			},
		}),
		plugin.New("math", plugin.Handlers{
			"add": func(_ context.Context, args map[string]any) (any, error) {
				a, _ := args["a"].(float64)
				b, _ := args["b"].(float64)
				return a + b, nil
			},
		}),
	)
	require.NoError(t, err)
	return set
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func newLoader(t *testing.T, opts ...plugin.Opt) (*plugin.Loader, *registry.Registry) {
	t.Helper()
	r, err := registry.New()
	require.NoError(t, err)
	loader, err := plugin.NewLoader(r, testPlugins(t), opts...)
	require.NoError(t, err)
	return loader, r
}

func toolNames(tools []schema.ToolDefinition) []string {
	result := make([]string, 0, len(tools))
	for _, tool := range tools {
		result = append(result, tool.Name)
	}
	return result
}
