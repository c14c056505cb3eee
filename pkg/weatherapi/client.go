/*
weatherapi implements an API client for WeatherAPI
https://www.weatherapi.com/docs/
*/
package weatherapi

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
	key string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.weatherapi.com/v1"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client. The endpoint can be replaced with client.OptEndpoint.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		return nil, toolcall.ErrBadParameter.With("missing API key")
	}
	c, err := client.New(append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client: c,
		key:    apiKey,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Current returns the current weather for a location
func (c *Client) Current(ctx context.Context, req *CurrentWeatherRequest) (*Weather, error) {
	var response Weather
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("current.json"), client.OptQuery(req.Values(c.key))); err != nil {
		return nil, err
	}
	response.Query = req.Query
	return &response, nil
}

// Forecast returns the forecast for a location
func (c *Client) Forecast(ctx context.Context, req *ForecastWeatherRequest) (*Forecast, error) {
	var response Forecast
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("forecast.json"), client.OptQuery(req.Values(c.key))); err != nil {
		return nil, err
	}
	response.Query = req.Query
	return &response, nil
}
