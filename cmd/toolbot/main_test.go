package main

import (
	"log/slog"
	"testing"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	anthropic "github.com/mutablelogic/go-toolcall/pkg/provider/anthropic"
	gemini "github.com/mutablelogic/go-toolcall/pkg/provider/gemini"
	openai "github.com/mutablelogic/go-toolcall/pkg/provider/openai"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_main_001(t *testing.T) {
	assert := assert.New(t)
	logger := slog.Default()

	adapter, err := adapterFor("anthropic", logger)
	assert.NoError(err)
	assert.IsType(&anthropic.Adapter{}, adapter)

	adapter, err = adapterFor(" Gemini ", logger)
	assert.NoError(err)
	assert.IsType(&gemini.Adapter{}, adapter)

	adapter, err = adapterFor("groq", logger)
	assert.NoError(err)
	assert.IsType(&openai.Adapter{}, adapter)

	_, err = adapterFor("nobody", logger)
	assert.ErrorIs(err, toolcall.ErrBadParameter)
}

func Test_main_002(t *testing.T) {
	assert := assert.New(t)

	value, err := parseSetting(schema.SettingDescriptor{Key: "days", Type: schema.SettingNumber}, " 3 ")
	assert.NoError(err)
	assert.Equal(3.0, value)

	value, err = parseSetting(schema.SettingDescriptor{Key: "metric", Type: schema.SettingBoolean}, "true")
	assert.NoError(err)
	assert.Equal(true, value)

	value, err = parseSetting(schema.SettingDescriptor{Key: "api_key", Type: schema.SettingSecret}, "${WEATHER_KEY}")
	assert.NoError(err)
	assert.Equal("${WEATHER_KEY}", value)

	_, err = parseSetting(schema.SettingDescriptor{Key: "days", Type: "number"}, "three")
	assert.ErrorIs(err, toolcall.ErrBadParameter)
}

func Test_main_003(t *testing.T) {
	assert := assert.New(t)
	tools := []schema.ToolDefinition{{Name: "a", Enabled: true}, {Name: "b"}, {Name: "c", Enabled: true}}
	result := enabledOnly(tools)
	assert.Len(result, 2)
	assert.Equal("c", result[1].Name)
}
