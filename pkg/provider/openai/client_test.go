package openai_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	provider "github.com/mutablelogic/go-toolcall/pkg/provider"
	openai "github.com/mutablelogic/go-toolcall/pkg/provider/openai"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_client_001(t *testing.T) {
	// Known and unknown vendors
	assert := assert.New(t)
	url, ok := openai.BaseURL("Groq")
	assert.True(ok)
	assert.Equal("https://api.groq.com/openai/v1", url)
	_, ok = openai.BaseURL("eliza")
	assert.False(ok)
	assert.Contains(openai.Vendors(), "ollama")
}

func Test_client_002(t *testing.T) {
	// Generate posts the conversation and tools with bearer authentication
	assert := assert.New(t)
	require := require.New(t)

	var body map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(textResponse))
	}))
	defer srv.Close()

	c, err := openai.New("secret", srv.URL, "")
	require.NoError(err)
	assert.Equal(openai.DefaultModel, c.Model())

	response, err := c.Generate(t.Context(), &provider.Request{
		System:   "Be brief",
		Messages: []json.RawMessage{json.RawMessage(`{"role":"user","content":"hi"}`)},
		Tools:    json.RawMessage(`[{"type":"function","function":{"name":"calculate","parameters":{"type":"object"}}}]`),
	})
	require.NoError(err)
	assert.Equal("Bearer secret", auth)
	assert.Equal(openai.DefaultModel, body["model"])
	assert.Equal("auto", body["tool_choice"])
	messages := body["messages"].([]any)
	require.Len(messages, 2)
	assert.Equal("system", messages[0].(map[string]any)["role"])

	text, err := openai.NewAdapter(nil).ParseText(response)
	assert.NoError(err)
	assert.Equal("The answer is 4", text)
}

func Test_client_003(t *testing.T) {
	// Vendor errors are returned
	assert := assert.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := openai.New("", srv.URL, "gpt-test")
	assert.NoError(err)
	_, err = c.Generate(t.Context(), &provider.Request{})
	assert.Error(err)
}
