/*
openai implements the adapter and an API client for the chat completions
format, which is shared by OpenAI and many compatible vendors.
https://platform.openai.com/docs/api-reference/chat
*/
package openai

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolcall "github.com/mutablelogic/go-toolcall"
	provider "github.com/mutablelogic/go-toolcall/pkg/provider"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	model string
}

var _ provider.Model = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultModel     = "gpt-4o-mini"
	defaultMaxTokens = 1024
)

// Default base URLs of vendors which speak the chat completions format
var baseURLs = map[string]string{
	"openai":     "https://api.openai.com/v1",
	"groq":       "https://api.groq.com/openai/v1",
	"deepseek":   "https://api.deepseek.com",
	"xai":        "https://api.x.ai/v1",
	"perplexity": "https://api.perplexity.ai",
	"openrouter": "https://openrouter.ai/api/v1",
	"mistral":    "https://api.mistral.ai/v1",
	"ollama":     "http://localhost:11434/v1",
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for a base URL. When baseURL is empty the OpenAI
// endpoint is used. The API key is optional for local servers.
func New(apiKey, baseURL, model string, opts ...client.ClientOpt) (*Client, error) {
	if baseURL = strings.TrimSpace(baseURL); baseURL == "" {
		baseURL = baseURLs[defaultName]
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	defaults := []client.ClientOpt{client.OptEndpoint(baseURL)}
	if apiKey != "" {
		defaults = append(defaults, client.OptReqToken(client.Token{
			Scheme: client.Bearer,
			Value:  apiKey,
		}))
	}
	if c, err := client.New(append(defaults, opts...)...); err != nil {
		return nil, err
	} else {
		return &Client{c, model}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// BaseURL returns the default base URL for a vendor, or false if the
// vendor is unknown
func BaseURL(vendor string) (string, bool) {
	url, exists := baseURLs[strings.ToLower(strings.TrimSpace(vendor))]
	return url, exists
}

// Vendors returns the names of the vendors with a default base URL
func Vendors() []string {
	return slices.Sorted(maps.Keys(baseURLs))
}

// Model returns the default model
func (c *Client) Model() string {
	return c.model
}

// Generate sends a chat completion request and returns the raw response
func (c *Client) Generate(ctx context.Context, req *provider.Request) (json.RawMessage, error) {
	if req == nil {
		return nil, toolcall.ErrBadParameter.With("request is required")
	}
	request := chatCompletionRequest{
		Model:     c.model,
		Messages:  req.Messages,
		MaxTokens: defaultMaxTokens,
	}
	if req.Model != "" {
		request.Model = req.Model
	}
	if req.System != "" {
		system, err := newMessage(schema.RoleSystem, req.System)
		if err != nil {
			return nil, err
		}
		request.Messages = append([]json.RawMessage{system}, req.Messages...)
	}
	if len(req.Tools) > 0 {
		request.Tools = req.Tools
		request.ToolChoice = toolAuto
	}

	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}
	var response json.RawMessage
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, err
	}
	return response, nil
}
