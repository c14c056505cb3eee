/*
gemini implements the adapter and an API client for the Google Gemini
REST API.
https://ai.google.dev/gemini-api/docs
*/
package gemini

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
	endPoint     = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel = "gemini-2.0-flash"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new Google Gemini API client with the given API key
func New(apiKey, model string, opts ...client.ClientOpt) (*Client, error) {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptHeader("x-goog-api-key", apiKey),
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

// Generate sends a generateContent request and returns the raw response
func (c *Client) Generate(ctx context.Context, req *provider.Request) (json.RawMessage, error) {
	if req == nil {
		return nil, toolcall.ErrBadParameter.With("request is required")
	}
	model := c.model
	if req.Model != "" {
		model = req.Model
	}
	request := geminiGenerateRequest{
		Contents:         req.Messages,
		GenerationConfig: &geminiConfig{MaxOutputTokens: defaultMaxTokens},
	}
	if req.System != "" {
		system, err := newContent("", geminiPart{Text: req.System})
		if err != nil {
			return nil, err
		}
		request.SystemInstruction = system
	}
	if len(req.Tools) > 0 {
		request.Tools = req.Tools
		request.ToolConfig = &geminiToolConfig{
			FunctionCallingConfig: &geminiFunctionCallingConfig{Mode: modeAuto},
		}
	}

	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}
	var response json.RawMessage
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("models", model+":generateContent")); err != nil {
		return nil, err
	}
	return response, nil
}
