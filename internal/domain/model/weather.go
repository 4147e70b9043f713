// Package model holds the summary shapes returned to the front-end and the
// upstream documents they are built from.
package model

import "fmt"

// rainWindow is the OpenWeatherMap rain volume key summarized as Rain.
const rainWindow = "3h"

// Coordinates is a lat/lon pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherSummary is the reply of GET /api/weather.
type WeatherSummary struct {
	Temperature float64      `json:"temperature"`
	Description string       `json:"description"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	FeelsLike   float64      `json:"feels_like"`
	WindSpeed   float64      `json:"wind_speed"`
	CountryCode string       `json:"country_code"`
	Rain        float64      `json:"rain"`
}

// WeatherPayload is the subset of the OpenWeatherMap current weather
// document the summary reads.
type WeatherPayload struct {
	Coord   *Coordinates `json:"coord"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
	} `json:"main"`
	Wind *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys *struct {
		Country string `json:"country"`
	} `json:"sys"`
	Rain map[string]float64 `json:"rain"`
}

// NewWeatherSummary reshapes p. main, wind, sys and at least one weather
// entry are required; rain defaults to 0.
func NewWeatherSummary(p WeatherPayload) (WeatherSummary, error) {
	switch {
	case p.Main == nil:
		return WeatherSummary{}, fmt.Errorf("%w: missing main", ErrMalformedPayload)
	case len(p.Weather) == 0:
		return WeatherSummary{}, fmt.Errorf("%w: missing weather", ErrMalformedPayload)
	case p.Wind == nil:
		return WeatherSummary{}, fmt.Errorf("%w: missing wind", ErrMalformedPayload)
	case p.Sys == nil:
		return WeatherSummary{}, fmt.Errorf("%w: missing sys", ErrMalformedPayload)
	}

	var coords *Coordinates
	if p.Coord != nil {
		c := *p.Coord
		coords = &c
	}

	return WeatherSummary{
		Temperature: p.Main.Temp,
		Description: p.Weather[0].Description,
		Coordinates: coords,
		FeelsLike:   p.Main.FeelsLike,
		WindSpeed:   p.Wind.Speed,
		CountryCode: p.Sys.Country,
		Rain:        p.Rain[rainWindow],
	}, nil
}
