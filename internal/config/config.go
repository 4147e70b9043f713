// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New() returns a Config populated with defaults.
//   - Load(ctx) layers .env, an optional YAML file and the environment on top.
//   - External errors are wrapped with this package's sentinel errors.
package config

import (
	"net"
	"time"
)

// Default upstream endpoints.
const (
	DefaultWeatherBaseURL   = "https://api.openweathermap.org/data/2.5"
	DefaultCountriesBaseURL = "https://restcountries.com/v3.1"
	DefaultExchangeBaseURL  = "https://open.er-api.com/v6"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Host and Port form the HTTP listen address.
	Host string `koanf:"host"`
	Port string `koanf:"port"`

	// OpenWeatherAPIKey is sent as appid to OpenWeatherMap. May be empty.
	OpenWeatherAPIKey string `koanf:"openweather_api_key"`

	WeatherBaseURL   string `koanf:"weather_base_url"`
	CountriesBaseURL string `koanf:"countries_base_url"`
	ExchangeBaseURL  string `koanf:"exchange_base_url"`

	// UpstreamTimeout bounds every outbound call.
	UpstreamTimeout time.Duration `koanf:"upstream_timeout"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// StaticDir is the directory of pre-built front-end files served at /.
	StaticDir string `koanf:"static_dir"`

	// CORSAllowedOrigins lists origins allowed to call /api.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// OTLPEndpoint enables span export over OTLP/HTTP when set, e.g. "localhost:4318".
	OTLPEndpoint string `koanf:"otlp_endpoint"`

	// OTLPInsecure disables TLS towards OTLPEndpoint.
	OTLPInsecure bool `koanf:"otlp_insecure"`

	// MetricsEnabled turns recording off without removing /metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace prefixes every Prometheus series name.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Port:               "3000",
		WeatherBaseURL:     DefaultWeatherBaseURL,
		CountriesBaseURL:   DefaultCountriesBaseURL,
		ExchangeBaseURL:    DefaultExchangeBaseURL,
		UpstreamTimeout:    10 * time.Second,
		ShutdownTimeout:    30 * time.Second,
		StaticDir:          "public",
		CORSAllowedOrigins: []string{"*"},
		MetricsEnabled:     true,
		MetricsNamespace:   "relay",
	}
}

// Addr returns the listen address, e.g. ":3000".
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
