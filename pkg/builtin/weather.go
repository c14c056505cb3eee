package builtin

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolcall "github.com/mutablelogic/go-toolcall"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
	weatherapi "github.com/mutablelogic/go-toolcall/pkg/weatherapi"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type weather struct {
	opts []client.ClientOpt
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	WeatherID = "weather"
)

const (
	settingAPIKey = "api_key"
	maxDays       = 14
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Weather returns the weather plugin. The client options are passed to the
// WeatherAPI client created for each call, which reads the key from the
// api_key setting of the plugin.
func Weather(opts ...client.ClientOpt) plugin.Plugin {
	w := &weather{opts: opts}
	return plugin.New(WeatherID, plugin.Handlers{
		"get_current_weather": w.current,
		"get_forecast":        w.forecast,
	})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (w *weather) current(ctx context.Context, args map[string]any) (any, error) {
	location, err := plugin.String(args, "location")
	if err != nil {
		return nil, err
	}
	c, err := w.client(ctx)
	if err != nil {
		return nil, err
	}
	response, err := c.Current(ctx, &weatherapi.CurrentWeatherRequest{
		Query:    location,
		Language: plugin.OptString(args, "language", ""),
	})
	if err != nil {
		return nil, err
	}
	return response.Summary(), nil
}

func (w *weather) forecast(ctx context.Context, args map[string]any) (any, error) {
	location, err := plugin.String(args, "location")
	if err != nil {
		return nil, err
	}
	days, err := plugin.Int(args, "days", 3)
	if err != nil {
		return nil, err
	} else if days < 1 || days > maxDays {
		return nil, toolcall.ErrInvalidArguments.Withf("days must be between 1 and %d", maxDays)
	}
	c, err := w.client(ctx)
	if err != nil {
		return nil, err
	}
	response, err := c.Forecast(ctx, &weatherapi.ForecastWeatherRequest{
		Query:  location,
		Days:   days,
		Alerts: true,
	})
	if err != nil {
		return nil, err
	}
	return response.Summary(), nil
}

func (w *weather) client(ctx context.Context) (*weatherapi.Client, error) {
	key := plugin.SettingString(ctx, settingAPIKey)
	if key == "" {
		return nil, toolcall.ErrExecution.With("weather API key is not configured")
	}
	return weatherapi.New(key, w.opts...)
}
