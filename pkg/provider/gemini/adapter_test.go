package gemini_test

import (
	"encoding/json"
	"strings"
	"testing"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	gemini "github.com/mutablelogic/go-toolcall/pkg/provider/gemini"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

const (
	functionCallResponse = `{"candidates":[{"finishReason":"STOP","content":{"role":"model","parts":[
		{"functionCall":{"name":"get_current_weather","args":{"location":"Oslo"}},"thoughtSignature":"c2ln"},
		{"functionCall":{"name":"calculate","args":{"expression":"1/0"}}}
	]}}]}`
	textResponse = `{"candidates":[{"finishReason":"STOP","content":{"role":"model","parts":[
		{"text":"thinking...","thought":true},
		{"text":"It is sunny "},
		{"text":"in Oslo."}
	]}}]}`
)

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_adapter_001(t *testing.T) {
	// Round trip from a catalog entry through a synthetic functionCall response
	assert := assert.New(t)
	require := require.New(t)
	adapter := gemini.NewAdapter(nil)
	assert.Equal("gemini", adapter.Name())

	entry := schema.CatalogEntry{
		Name:        "get_forecast",
		Description: "Weather forecast",
		Parameters:  schema.JSONSchema(`{"type":"object","properties":{"location":{"type":"string"},"days":{"type":"integer"}}}`),
	}
	data, err := adapter.ToWireSchema([]schema.CatalogEntry{entry})
	require.NoError(err)

	var tools []struct {
		FunctionDeclarations []struct {
			Name                 string         `json:"name"`
			ParametersJSONSchema map[string]any `json:"parametersJsonSchema"`
		} `json:"functionDeclarations"`
	}
	require.NoError(json.Unmarshal(data, &tools))
	require.Len(tools, 1)
	require.Len(tools[0].FunctionDeclarations, 1)
	decl := tools[0].FunctionDeclarations[0]
	assert.Equal("object", decl.ParametersJSONSchema["type"])

	args := map[string]any{"location": "Lisbon", "days": float64(3)}
	response, err := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{"content": map[string]any{
			"role":  "model",
			"parts": []any{map[string]any{"functionCall": map[string]any{"name": decl.Name, "args": args}}},
		}}},
	})
	require.NoError(err)

	calls, err := adapter.ParseToolCalls(response)
	require.NoError(err)
	require.Len(calls, 1)
	assert.Equal(entry.Name, calls[0].Name)
	assert.Equal(args, calls[0].Arguments)
	assert.True(strings.HasPrefix(calls[0].ID, "call_"))
}

func Test_adapter_002(t *testing.T) {
	// Synthesized identifiers are unique within a round
	assert := assert.New(t)
	require := require.New(t)
	adapter := gemini.NewAdapter(nil)

	calls, err := adapter.ParseToolCalls(json.RawMessage(functionCallResponse))
	require.NoError(err)
	require.Len(calls, 2)
	assert.NotEqual(calls[0].ID, calls[1].ID)
	assert.Equal("Oslo", calls[0].Arguments["location"])

	calls, err = adapter.ParseToolCalls(json.RawMessage(textResponse))
	assert.NoError(err)
	assert.Nil(calls)

	calls, err = adapter.ParseToolCalls(json.RawMessage(`{"candidates":[]}`))
	assert.NoError(err)
	assert.Nil(calls)
}

func Test_adapter_003(t *testing.T) {
	// Text excludes thoughts
	assert := assert.New(t)
	adapter := gemini.NewAdapter(nil)

	text, err := adapter.ParseText(json.RawMessage(textResponse))
	assert.NoError(err)
	assert.Equal("It is sunny in Oslo.", text)

	_, err = adapter.ParseText(json.RawMessage(`[`))
	assert.ErrorIs(err, toolcall.ErrParse)
}

func Test_adapter_004(t *testing.T) {
	// Assistant turns use the model role
	assert := assert.New(t)
	require := require.New(t)
	adapter := gemini.NewAdapter(nil)

	req, err := adapter.NewRequest("Be brief", []schema.Message{
		{Role: schema.RoleUser, Content: "hi"},
		{Role: schema.RoleAssistant, Content: "hello"},
	})
	require.NoError(err)
	assert.Equal("Be brief", req.System)
	require.Len(req.Messages, 2)
	assert.JSONEq(`{"role":"user","parts":[{"text":"hi"}]}`, string(req.Messages[0]))
	assert.JSONEq(`{"role":"model","parts":[{"text":"hello"}]}`, string(req.Messages[1]))
}

func Test_adapter_005(t *testing.T) {
	// Follow-up echoes the model turn and answers with functionResponse parts
	assert := assert.New(t)
	require := require.New(t)
	adapter := gemini.NewAdapter(nil)

	calls, err := adapter.ParseToolCalls(json.RawMessage(functionCallResponse))
	require.NoError(err)
	results := []schema.ToolResult{
		schema.NewToolError(calls[1], toolcall.ErrExecution, "Tool 'calculate' failed: division by zero"),
		schema.NewToolResult(calls[0], "Sunny, 18°C"),
	}

	messages, err := adapter.BuildFollowupMessages([]json.RawMessage{json.RawMessage(`{"role":"user","parts":[{"text":"hi"}]}`)}, json.RawMessage(functionCallResponse), calls, results)
	require.NoError(err)
	require.Len(messages, 3)

	// Thought signature survives
	assert.Contains(string(messages[1]), `"thoughtSignature":"c2ln"`)

	assert.JSONEq(`{"role":"user","parts":[
		{"functionResponse":{"name":"get_current_weather","response":{"output":"Sunny, 18°C"}}},
		{"functionResponse":{"name":"calculate","response":{"error":"Error: Tool 'calculate' failed: division by zero"}}}
	]}`, string(messages[2]))
}
