/*
newsapi implements an API client for NewsAPI
https://newsapi.org/docs
*/
package newsapi

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolcall "github.com/mutablelogic/go-toolcall"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

// status is the envelope of every response
type status struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://newsapi.org/v2"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client. The endpoint can be replaced with client.OptEndpoint.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		return nil, toolcall.ErrBadParameter.With("missing API key")
	}
	c, err := client.New(append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptHeader("X-Api-Key", apiKey),
	}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Client{c}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Headlines returns the top headlines
func (c *Client) Headlines(ctx context.Context, req *HeadlinesRequest) (*Articles, error) {
	var response Articles
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("top-headlines"), client.OptQuery(req.Values())); err != nil {
		return nil, err
	} else if err := response.err(); err != nil {
		return nil, err
	}
	return &response, nil
}

// Search returns articles which match a query
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*Articles, error) {
	if req.Query == "" {
		return nil, toolcall.ErrBadParameter.With("missing query")
	}
	var response Articles
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("everything"), client.OptQuery(req.Values())); err != nil {
		return nil, err
	} else if err := response.err(); err != nil {
		return nil, err
	}
	return &response, nil
}

// Sources returns the news sources which match the request
func (c *Client) Sources(ctx context.Context, req *SourcesRequest) ([]Source, error) {
	var response struct {
		status
		Sources []Source `json:"sources"`
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("top-headlines", "sources"), client.OptQuery(req.Values())); err != nil {
		return nil, err
	} else if err := response.err(); err != nil {
		return nil, err
	}
	return response.Sources, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s status) err() error {
	if s.Status == "" || s.Status == "ok" {
		return nil
	}
	return toolcall.ErrExecution.Withf("%s: %s", s.Code, s.Message)
}
