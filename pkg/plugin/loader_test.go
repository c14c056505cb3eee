package plugin_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
	registry "github.com/mutablelogic/go-toolcall/pkg/registry"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_loader_001(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken", "plugin.yaml"), "id: [")
	writeFile(t, filepath.Join(dir, "math", "plugin.toml"), mathManifest)
	writeFile(t, filepath.Join(dir, ".hidden", "plugin.yaml"), "id: [")
	writeFile(t, filepath.Join(dir, "_private", "plugin.yaml"), "id: [")
	writeFile(t, filepath.Join(dir, "node_modules", "plugin.yaml"), "id: [")
	writeFile(t, filepath.Join(dir, "README.md"), "not a plugin")

	loader, r := newLoader(t)
	report := loader.LoadAll(dir)
	assert.Equal([]string{"math"}, report.Loaded)
	if assert.Len(report.Failed, 1) {
		assert.Equal(filepath.Join(dir, "broken"), report.Failed[0].Path)
	}
	assert.Equal(1, report.TotalTools)
	assert.NotNil(r.Tool("add"))
	assert.Equal(dir, loader.Dir())
}

func Test_loader_002(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "echo", "plugin.yaml"), echoManifest)

	// The shout tool has no handler and is skipped
	loader, r := newLoader(t)
	desc, err := loader.LoadOne(filepath.Join(dir, "echo"))
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("echo", desc.ID)
	assert.Equal([]string{"echo"}, toolNames(r.AllTools()))
	assert.Nil(r.Tool("shout"))

	tool := r.Tool("echo")
	if assert.NotNil(tool) {
		assert.Equal("echo", tool.Plugin)
		assert.Equal(5.0, tool.Timeout.Seconds())
	}
}

func Test_loader_003(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "other", "plugin.yaml"), "id: other\nname: Other\nversion: '1'\ntools: []\n")

	// No compiled-in plugin for the manifest
	loader, r := newLoader(t)
	_, err := loader.LoadOne(filepath.Join(dir, "other"))
	assert.True(errors.Is(err, toolcall.ErrLoad))
	assert.Nil(r.Plugin("other"))

	// Missing directory
	report := loader.LoadAll(filepath.Join(dir, "missing"))
	assert.Empty(report.Loaded)
	assert.Len(report.Failed, 1)
}

func Test_loader_004(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "echo", "plugin.yaml"), echoManifest)

	// Handlers see their plugin and settings
	loader, r := newLoader(t, plugin.WithSettings(mockStore{"echo.prefix": "# "}))
	loader.LoadAll(dir)
	tool := r.Tool("echo")
	if !assert.NotNil(tool) {
		t.FailNow()
	}
	result, err := tool.Handler(context.Background(), map[string]any{"text": "hello"})
	assert.NoError(err)
	assert.Equal("# hello", result)

	// Default from the manifest
	loader, r = newLoader(t)
	loader.LoadAll(dir)
	result, err = r.Tool("echo").Handler(context.Background(), map[string]any{"text": "hello"})
	assert.NoError(err)
	assert.Equal(">hello", result)
}

func Test_loader_005(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "math", "plugin.toml"), mathManifest)

	var synced int
	loader, r := newLoader(t, plugin.WithSync(func(*registry.Registry) { synced++ }))
	loader.LoadAll(dir)
	assert.Equal(1, synced)

	// Reload picks up a new tool set
	writeFile(t, filepath.Join(dir, "math", "plugin.toml"), mathManifest+`
[[tools]]
name = "plus"
description = "Add two numbers"
handler = "add"
timeout = 1
`)
	assert.True(loader.ReloadOne("math"))
	assert.Equal([]string{"add", "plus"}, toolNames(r.ToolsByPlugin("math")))
	assert.Equal(2, synced)

	// Unknown plugin
	assert.False(loader.ReloadOne("unknown"))

	// Broken manifest unregisters the plugin
	writeFile(t, filepath.Join(dir, "math", "plugin.toml"), "id = ")
	assert.False(loader.ReloadOne("math"))
	assert.Nil(r.Plugin("math"))
	assert.Empty(r.ToolsByPlugin("math"))
}

func Test_loader_006(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "math", "plugin.toml"), mathManifest)
	writeFile(t, filepath.Join(dir, "echo", "plugin.yaml"), echoManifest)

	loader, r := newLoader(t)
	report := loader.LoadAll(dir)
	assert.Equal([]string{"echo", "math"}, report.Loaded)
	assert.True(r.DisableTool("add"))

	// Reload all starts from a clean registry
	assert.NoError(os.RemoveAll(filepath.Join(dir, "echo")))
	report = loader.ReloadAll()
	assert.Equal([]string{"math"}, report.Loaded)
	assert.Equal(1, report.TotalTools)
	assert.True(r.IsToolEnabled("add"))
	assert.Nil(r.Plugin("echo"))
}

func Test_loader_007(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "echo", "plugin.yaml"), echoManifest)
	writeFile(t, filepath.Join(dir, "math", "plugin.toml"), `
id = "math"
name = "Math"
version = "0.1.0"
enabled = false

[[tools]]
name = "echo"
description = "Clashes with the echo plugin"
handler = "add"

[[tools]]
name = "add"
description = "Add two numbers"
handler = "add"
`)

	// A clashing tool name is skipped, a disabled plugin registers disabled tools
	loader, r := newLoader(t)
	report := loader.LoadAll(dir)
	assert.Equal([]string{"echo", "math"}, report.Loaded)
	assert.Empty(report.Failed)
	assert.Equal(2, report.TotalTools)

	// Both the unbound shout tool and the clash are reported
	if assert.Len(report.Skipped, 2) {
		assert.Equal(filepath.Join(dir, "echo"), report.Skipped[0].Path)
		assert.Equal("shout", report.Skipped[0].Tool)
		assert.Contains(report.Skipped[0].Error, "shout_missing")
		assert.Equal(filepath.Join(dir, "math"), report.Skipped[1].Path)
		assert.Equal("echo", report.Skipped[1].Tool)
		assert.Contains(report.Skipped[1].Error, toolcall.ErrDuplicateName.Error())
	}
	assert.Equal("echo", r.Tool("echo").Plugin)
	assert.Equal([]string{"add"}, toolNames(r.ToolsByPlugin("math")))
	assert.False(r.IsToolEnabled("add"))
	assert.Equal(schema.Stats{PluginCount: 2, ToolCount: 2, EnabledCount: 1}, r.Stats())
}

func Test_loader_008(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "math", "plugin.toml"), mathManifest)

	loader, r := newLoader(t)
	loader.LoadAll(dir)
	loader.Unload("math")
	assert.Nil(r.Plugin("math"))
	assert.Nil(r.Tool("add"))
}

func Test_loader_009(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "math", "plugin.toml"), mathManifest)

	// A tool disabled in the store is never published as enabled
	var enabled []bool
	loader, r := newLoader(t,
		plugin.WithSettings(mockStore{"tool.add": false}),
		plugin.WithSync(func(r *registry.Registry) {
			enabled = append(enabled, r.IsToolEnabled("add"))
		}),
	)
	loader.LoadAll(dir)
	assert.NotNil(r.Tool("add"))
	assert.True(loader.ReloadOne("math"))
	assert.Equal([]bool{false, false}, enabled)
	assert.Empty(r.Catalog())
}

func Test_loader_010(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "plugin.toml"), mathManifest)
	writeFile(t, filepath.Join(dir, "b", "plugin.toml"), `
id = "math"
name = "Math"
version = "0.2.0"
tools = []
`)

	// The second plugin with the same id fails and leaves the first in place
	loader, r := newLoader(t)
	report := loader.LoadAll(dir)
	assert.Equal([]string{"math"}, report.Loaded)
	if assert.Len(report.Failed, 1) {
		assert.Equal(filepath.Join(dir, "b"), report.Failed[0].Path)
		assert.Contains(report.Failed[0].Error, toolcall.ErrDuplicateName.Error())
	}
	assert.Equal(1, report.TotalTools)
	assert.NotNil(r.Tool("add"))
	if desc := r.Plugin("math"); assert.NotNil(desc) {
		assert.Equal("0.1.0", desc.Version)
	}
}

func Test_loader_011(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "math", "plugin.toml"), mathManifest)

	// Tools registered outside the scan are not counted
	loader, r := newLoader(t)
	assert.NoError(r.ReplacePlugin(schema.PluginDescriptor{ID: "extra"}, []schema.ToolDefinition{
		*schema.NewToolDefinition("extra", schema.ToolManifestEntry{Name: "noop", Description: "d"}, func(context.Context, map[string]any) (any, error) {
			return nil, nil
		}),
	}))
	report := loader.LoadAll(dir)
	assert.Equal(1, report.TotalTools)
	assert.Equal(2, r.Stats().ToolCount)
}
