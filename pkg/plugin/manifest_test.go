package plugin_test

import (
	"errors"
	"path/filepath"
	"testing"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_manifest_001(t *testing.T) {
	assert := assert.New(t)

	desc, err := plugin.ParseManifest([]byte(echoManifest), ".yaml")
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("echo", desc.ID)
	assert.Len(desc.Tools, 2)
	assert.Equal(float64(30), desc.Tools[1].Timeout)
	if setting := desc.Setting("prefix"); assert.NotNil(setting) {
		assert.Equal(schema.SettingText, setting.Type)
		assert.Equal(">", setting.Default)
	}
}

func Test_manifest_002(t *testing.T) {
	assert := assert.New(t)

	desc, err := plugin.ParseManifest([]byte(mathManifest), ".toml")
	if assert.NoError(err) {
		assert.Equal("math", desc.ID)
		assert.Equal("add", desc.Tools[0].Name)
	}
}

func Test_manifest_003(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"not yaml", "id: [unterminated"},
		{"empty", ""},
		{"bad id", "id: not an id\nname: X\nversion: '1'\n"},
		{"no version", "id: x\nname: X\n"},
		{"no handler", "id: x\nname: X\nversion: '1'\ntools:\n  - name: t\n    description: d\n"},
		{"duplicate tool", "id: x\nname: X\nversion: '1'\ntools:\n  - {name: t, description: d, handler: h}\n  - {name: t, description: d, handler: h}\n"},
		{"negative timeout", "id: x\nname: X\nversion: '1'\ntools:\n  - {name: t, description: d, handler: h, timeout: -1}\n"},
		{"parameters not object", "id: x\nname: X\nversion: '1'\ntools:\n  - {name: t, description: d, handler: h, parameters: {type: string}}\n"},
		{"bad setting type", "id: x\nname: X\nversion: '1'\nsettings:\n  - {key: k, type: colour}\n"},
		{"choice without options", "id: x\nname: X\nversion: '1'\nsettings:\n  - {key: k, type: select}\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := plugin.ParseManifest([]byte(test.manifest), ".yaml")
			assert.Error(t, err)
		})
	}
}

func Test_manifest_004(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	// No manifest
	_, err := plugin.ReadManifest(dir)
	assert.True(errors.Is(err, toolcall.ErrLoad))

	// TOML manifest, path is recorded
	writeFile(t, filepath.Join(dir, "plugin.toml"), mathManifest)
	desc, err := plugin.ReadManifest(dir)
	if assert.NoError(err) {
		assert.Equal(dir, desc.Path)
	}

	// YAML takes precedence
	writeFile(t, filepath.Join(dir, "plugin.yaml"), "id: [")
	_, err = plugin.ReadManifest(dir)
	assert.True(errors.Is(err, toolcall.ErrLoad))
}

func Test_manifest_005(t *testing.T) {
	assert := assert.New(t)

	desc, err := plugin.ParseManifest([]byte(`{
		"id": "news",
		"name": "News",
		"version": "1.0.0",
		"tools": [{
			"name": "news_search",
			"description": "Search",
			"handler": "news_search",
			"parameters": {"type": "object", "properties": {"query": {"type": "string"}}, "required": ["query"]}
		}]
	}`), ".json")
	if assert.NoError(err) {
		assert.Equal("news", desc.ID)
		assert.Equal([]string{"query*"}, desc.Tools[0].Parameters.Properties())
	}

	_, err = plugin.ParseManifest([]byte(`id = "x"`), ".ini")
	assert.ErrorIs(err, toolcall.ErrNotImplemented)
}
