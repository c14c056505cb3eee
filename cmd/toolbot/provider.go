package main

import (
	"log/slog"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolcall "github.com/mutablelogic/go-toolcall"
	provider "github.com/mutablelogic/go-toolcall/pkg/provider"
	anthropic "github.com/mutablelogic/go-toolcall/pkg/provider/anthropic"
	gemini "github.com/mutablelogic/go-toolcall/pkg/provider/gemini"
	openai "github.com/mutablelogic/go-toolcall/pkg/provider/openai"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// adapterFor returns the adapter for a provider name. Vendors which speak
// the chat completions format share the OpenAI adapter.
func adapterFor(name string, logger *slog.Logger) (provider.Adapter, error) {
	switch name = strings.ToLower(strings.TrimSpace(name)); name {
	case "anthropic", "claude":
		return anthropic.NewAdapter(logger), nil
	case "gemini", "google":
		return gemini.NewAdapter(logger), nil
	default:
		if _, ok := openai.BaseURL(name); ok {
			return openai.NewAdapter(logger), nil
		}
	}
	return nil, toolcall.ErrBadParameter.Withf("unknown provider %q (expected anthropic, gemini or one of %s)", name, strings.Join(openai.Vendors(), ", "))
}

// model returns the configured adapter and a client for it
func (g *Globals) model() (provider.Adapter, provider.Model, error) {
	adapter, err := adapterFor(g.Provider, g.logger)
	if err != nil {
		return nil, nil, err
	}

	opts := append([]client.ClientOpt{}, g.clientopts...)
	if g.BaseURL != "" {
		opts = append(opts, client.OptEndpoint(g.BaseURL))
	}

	var model provider.Model
	switch adapter.(type) {
	case *anthropic.Adapter:
		model, err = anthropic.New(g.APIKey, g.Model, opts...)
	case *gemini.Adapter:
		model, err = gemini.New(g.APIKey, g.Model, opts...)
	default:
		baseURL, _ := openai.BaseURL(strings.ToLower(strings.TrimSpace(g.Provider)))
		if g.BaseURL != "" {
			baseURL = g.BaseURL
		}
		model, err = openai.New(g.APIKey, baseURL, g.Model, g.clientopts...)
	}
	if err != nil {
		return nil, nil, err
	}
	return adapter, model, nil
}
