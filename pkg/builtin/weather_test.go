package builtin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolcall "github.com/mutablelogic/go-toolcall"
	builtin "github.com/mutablelogic/go-toolcall/pkg/builtin"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	settings "github.com/mutablelogic/go-toolcall/pkg/settings"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

func newWeatherServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/current.json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "secret" {
			http.Error(w, `{"error":{"code":2006,"message":"API key is invalid."}}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"location":{"name":"Paris","country":"France","localtime":"2024-05-01 09:00"},
			"current":{"temp_c":12,"feelslike_c":10,"humidity":70,"wind_kph":5,"wind_dir":"S","condition":{"text":"Cloudy"}}}`))
	})
	mux.HandleFunc("/forecast.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"location":{"name":"Paris","country":"France"},
			"forecast":{"forecastday":[{"date":"2024-05-01","day":{"mintemp_c":8,"maxtemp_c":16,"daily_chance_of_rain":40,"condition":{"text":"Cloudy"}}}]}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func weatherContext(ctx context.Context, key string) context.Context {
	store := settings.NewMemoryStore()
	if key != "" {
		store.SetPluginSetting(builtin.WeatherID, "api_key", key)
	}
	desc := &schema.PluginDescriptor{
		ID:       builtin.WeatherID,
		Settings: []schema.SettingDescriptor{{Key: "api_key", Type: schema.SettingSecret, Required: true}},
	}
	return plugin.WithContext(ctx, desc, store)
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_weather_001(t *testing.T) {
	// Current weather with a configured key
	assert := assert.New(t)
	srv := newWeatherServer(t)
	handlers := builtin.Weather(client.OptEndpoint(srv.URL)).Handlers()

	result, err := handlers["get_current_weather"](weatherContext(t.Context(), "secret"), map[string]any{"location": "Paris"})
	assert.NoError(err)
	assert.Equal("Paris, France at 2024-05-01 09:00: Cloudy, 12°C (feels like 10°C), humidity 70%, wind 5 km/h S", result)

	// Wrong key
	_, err = handlers["get_current_weather"](weatherContext(t.Context(), "wrong"), map[string]any{"location": "Paris"})
	assert.Error(err)
}

func Test_weather_002(t *testing.T) {
	// Missing key and bad arguments
	assert := assert.New(t)
	srv := newWeatherServer(t)
	handlers := builtin.Weather(client.OptEndpoint(srv.URL)).Handlers()

	_, err := handlers["get_current_weather"](weatherContext(t.Context(), ""), map[string]any{"location": "Paris"})
	assert.ErrorIs(err, toolcall.ErrExecution)

	_, err = handlers["get_forecast"](weatherContext(t.Context(), "secret"), map[string]any{"location": "Paris", "days": 30})
	assert.ErrorIs(err, toolcall.ErrInvalidArguments)

	_, err = handlers["get_forecast"](weatherContext(t.Context(), "secret"), map[string]any{})
	assert.ErrorIs(err, toolcall.ErrInvalidArguments)
}

func Test_weather_003(t *testing.T) {
	// Forecast
	assert := assert.New(t)
	require := require.New(t)
	srv := newWeatherServer(t)
	handlers := builtin.Weather(client.OptEndpoint(srv.URL)).Handlers()

	result, err := handlers["get_forecast"](weatherContext(t.Context(), "secret"), map[string]any{"location": "Paris", "days": float64(1)})
	require.NoError(err)
	assert.Equal("Forecast for Paris, France:\n2024-05-01: Cloudy, 8..16°C, chance of rain 40%", result)
}
