/*
anthropic implements the adapter and an API client for the Anthropic
Messages API.
https://docs.anthropic.com/en/api/getting-started
*/
package anthropic

import (
	"context"
	"encoding/json"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolcall "github.com/mutablelogic/go-toolcall"
	provider "github.com/mutablelogic/go-toolcall/pkg/provider"
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
	endPoint     = "https://api.anthropic.com/v1"
	apiVersion   = "2023-06-01"
	DefaultModel = "claude-3-5-haiku-latest"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new Anthropic API client with the given API key
func New(apiKey, model string, opts ...client.ClientOpt) (*Client, error) {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptHeader("x-api-key", apiKey),
		client.OptHeader("anthropic-version", apiVersion),
	}, opts...)
	if c, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &Client{c, model}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Model returns the default model
func (c *Client) Model() string {
	return c.model
}

// Generate sends a messages request and returns the raw response
func (c *Client) Generate(ctx context.Context, req *provider.Request) (json.RawMessage, error) {
	if req == nil {
		return nil, toolcall.ErrBadParameter.With("request is required")
	}
	request := messagesRequest{
		MaxTokens: defaultMaxTokens,
		Messages:  req.Messages,
		Model:     c.model,
		System:    req.System,
	}
	if req.Model != "" {
		request.Model = req.Model
	}
	if len(req.Tools) > 0 {
		request.Tools = req.Tools
		request.ToolChoice = &toolChoice{Type: toolChoiceAuto}
	}

	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}
	var response json.RawMessage
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("messages")); err != nil {
		return nil, err
	}
	return response, nil
}
