package upstream

import (
	"context"
	"net/url"

	"github.com/okian/relay/internal/domain/model"
)

// ProviderOpenWeather labels OpenWeatherMap in metrics and spans.
const ProviderOpenWeather = "openweathermap"

// OpenWeather calls the OpenWeatherMap current weather API.
type OpenWeather struct {
	base
	apiKey string
}

// NewOpenWeather creates a client for baseURL, e.g.
// "https://api.openweathermap.org/data/2.5". An empty apiKey is sent as is
// and rejected by the provider.
func NewOpenWeather(baseURL, apiKey string, opts ...Option) *OpenWeather {
	return &OpenWeather{base: newBase(ProviderOpenWeather, baseURL, opts), apiKey: apiKey}
}

// CurrentByCity fetches current conditions for city in metric units.
func (c *OpenWeather) CurrentByCity(ctx context.Context, city string) (model.WeatherPayload, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	var p model.WeatherPayload
	if err := c.getJSON(ctx, "/weather", q, &p); err != nil {
		return model.WeatherPayload{}, err
	}
	return p, nil
}
