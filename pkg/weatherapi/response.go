package weatherapi

import (
	"fmt"
	"slices"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Weather is the response of current.json
type Weather struct {
	Query    string   `json:"query,omitempty"`
	Location Location `json:"location"`
	Current  Current  `json:"current"`
}

// Forecast is the response of forecast.json
type Forecast struct {
	Weather
	Forecast struct {
		Days []ForecastDay `json:"forecastday"`
	} `json:"forecast"`
	Alerts struct {
		Alert []Alert `json:"alert"`
	} `json:"alerts"`
}

type Location struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TimeZone  string  `json:"tz_id"`
	LocalTime string  `json:"localtime"`
}

type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon,omitempty"`
	Code int    `json:"code,omitempty"`
}

type Current struct {
	LastUpdated string    `json:"last_updated"`
	TempC       float64   `json:"temp_c"`
	FeelsLikeC  float64   `json:"feelslike_c"`
	IsDay       int       `json:"is_day"`
	Condition   Condition `json:"condition"`
	WindKph     float64   `json:"wind_kph"`
	WindDir     string    `json:"wind_dir"`
	PressureMb  float64   `json:"pressure_mb"`
	PrecipMm    float64   `json:"precip_mm"`
	Humidity    int       `json:"humidity"`
	Cloud       int       `json:"cloud"`
	UV          float64   `json:"uv"`
	GustKph     float64   `json:"gust_kph"`
}

type ForecastDay struct {
	Date string `json:"date"`
	Day  struct {
		MaxTempC     float64   `json:"maxtemp_c"`
		MinTempC     float64   `json:"mintemp_c"`
		AvgTempC     float64   `json:"avgtemp_c"`
		MaxWindKph   float64   `json:"maxwind_kph"`
		TotalPrecip  float64   `json:"totalprecip_mm"`
		AvgHumidity  float64   `json:"avghumidity"`
		ChanceOfRain int       `json:"daily_chance_of_rain"`
		Condition    Condition `json:"condition"`
		UV           float64   `json:"uv"`
	} `json:"day"`
	Astro struct {
		Sunrise string `json:"sunrise"`
		Sunset  string `json:"sunset"`
	} `json:"astro"`
}

type Alert struct {
	Headline  string `json:"headline"`
	Severity  string `json:"severity"`
	Event     string `json:"event"`
	Effective string `json:"effective"`
	Expires   string `json:"expires"`
	Desc      string `json:"desc"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Place returns the location as "name, region, country" without blanks
// or repeats
func (l Location) Place() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{l.Name, l.Region, l.Country} {
		if part = strings.TrimSpace(part); part != "" && !slices.Contains(parts, part) {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// Summary returns a one-line description of the current weather
func (w Weather) Summary() string {
	return fmt.Sprintf("%s at %s: %s, %.0f°C (feels like %.0f°C), humidity %d%%, wind %.0f km/h %s",
		w.Location.Place(), w.Location.LocalTime, w.Current.Condition.Text,
		w.Current.TempC, w.Current.FeelsLikeC, w.Current.Humidity, w.Current.WindKph, w.Current.WindDir,
	)
}

// Summary returns one line per forecast day, followed by any alerts
func (f Forecast) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Forecast for %s:", f.Location.Place())
	for _, day := range f.Forecast.Days {
		fmt.Fprintf(&b, "\n%s: %s, %.0f..%.0f°C, chance of rain %d%%",
			day.Date, day.Day.Condition.Text, day.Day.MinTempC, day.Day.MaxTempC, day.Day.ChanceOfRain,
		)
	}
	for _, alert := range f.Alerts.Alert {
		fmt.Fprintf(&b, "\nAlert: %s", alert.Headline)
	}
	return b.String()
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (w Weather) String() string {
	return types.Stringify(w)
}

func (f Forecast) String() string {
	return types.Stringify(f)
}
