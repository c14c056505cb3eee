package weatherapi

import (
	"net/url"
	"strconv"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// CurrentWeatherRequest is a query for the current weather. The query is
// a city name, coordinates, postcode or IP address.
type CurrentWeatherRequest struct {
	Query      string `json:"query"`
	AirQuality bool   `json:"air_quality,omitempty"`
	Pollen     bool   `json:"pollen,omitempty"`
	Language   string `json:"language,omitempty"`
}

// ForecastWeatherRequest is a query for up to fourteen days of forecast
type ForecastWeatherRequest struct {
	Query      string `json:"query"`
	Days       int    `json:"days"`
	Date       string `json:"date,omitempty"`
	AirQuality bool   `json:"air_quality,omitempty"`
	Alerts     bool   `json:"alerts,omitempty"`
	Pollen     bool   `json:"pollen,omitempty"`
	Language   string `json:"language,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Values converts CurrentWeatherRequest to URL query parameters
func (r *CurrentWeatherRequest) Values(apiKey string) url.Values {
	result := url.Values{}
	result.Set("key", apiKey)
	result.Set("q", r.Query)
	if r.AirQuality {
		result.Set("aqi", "yes")
	}
	if r.Pollen {
		result.Set("pollen", "yes")
	}
	if r.Language != "" {
		result.Set("lang", r.Language)
	}
	return result
}

// Values converts ForecastWeatherRequest to URL query parameters
func (r *ForecastWeatherRequest) Values(apiKey string) url.Values {
	result := url.Values{}
	result.Set("key", apiKey)
	result.Set("q", r.Query)
	result.Set("days", strconv.Itoa(r.Days))
	if r.Date != "" {
		result.Set("dt", r.Date)
	}
	if r.AirQuality {
		result.Set("aqi", "yes")
	}
	if r.Alerts {
		result.Set("alerts", "yes")
	}
	if r.Pollen {
		result.Set("pollen", "yes")
	}
	if r.Language != "" {
		result.Set("lang", r.Language)
	}
	return result
}
