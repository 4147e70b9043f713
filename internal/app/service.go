// Package service composes the upstream providers and the summary
// transforms into the operations the HTTP API exposes.
package service

import (
	"context"
	"fmt"

	"github.com/okian/relay/internal/domain/model"
	"github.com/okian/relay/pkg/logger"
	"github.com/okian/relay/pkg/metrics"
)

// Exchange fallback reasons.
const (
	FallbackUnknownCurrency = "unknown_currency"
	FallbackUpstreamError   = "upstream_error"
)

// WeatherProvider fetches the current weather document for a city.
type WeatherProvider interface {
	CurrentByCity(ctx context.Context, city string) (model.WeatherPayload, error)
}

// CountryProvider fetches the candidate records for an alpha code.
type CountryProvider interface {
	ByAlphaCode(ctx context.Context, code string) ([]model.CountryRecord, error)
}

// RatesProvider fetches the USD-based rate table.
type RatesProvider interface {
	LatestUSD(ctx context.Context) (model.RatesTable, error)
}

// Service implements the relay operations. It holds no mutable state and is
// safe for concurrent use.
type Service struct {
	weather   WeatherProvider
	countries CountryProvider
	rates     RatesProvider

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service over the three providers.
func New(weather WeatherProvider, countries CountryProvider, rates RatesProvider, opts ...Option) *Service {
	s := &Service{
		weather:   weather,
		countries: countries,
		rates:     rates,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weather returns the summary for city.
func (s *Service) Weather(ctx context.Context, city string) (model.WeatherSummary, error) {
	p, err := s.weather.CurrentByCity(ctx, city)
	if err != nil {
		return model.WeatherSummary{}, fmt.Errorf("weather %q: %w", city, err)
	}
	summary, err := model.NewWeatherSummary(p)
	if err != nil {
		return model.WeatherSummary{}, fmt.Errorf("weather %q: %w", city, err)
	}
	return summary, nil
}

// Country returns the summary of the first record matching code.
func (s *Service) Country(ctx context.Context, code string) (model.CountrySummary, error) {
	records, err := s.countries.ByAlphaCode(ctx, code)
	if err != nil {
		return model.CountrySummary{}, fmt.Errorf("country %q: %w", code, err)
	}
	summary, err := model.NewCountrySummary(records)
	if err != nil {
		return model.CountrySummary{}, fmt.Errorf("country %q: %w", code, err)
	}
	return summary, nil
}

// ExchangeRate returns the USD rate for currency. It never fails: an unknown
// currency and an unavailable provider both yield the N/A sentinel. The two
// cases are told apart only in logs and metrics.
func (s *Service) ExchangeRate(ctx context.Context, currency string) model.ExchangeRate {
	table, err := s.rates.LatestUSD(ctx)
	if err != nil {
		s.logger.Warn(ctx, "exchange rate table unavailable", logger.String("currency", currency), logger.Error(err))
		metrics.RecordExchangeFallback(FallbackUpstreamError)
		return model.UnavailableRate()
	}
	rate, found := model.NewExchangeRate(table, currency)
	if !found {
		s.logger.Debug(ctx, "currency not in rate table", logger.String("currency", currency))
		metrics.RecordExchangeFallback(FallbackUnknownCurrency)
	}
	return rate
}
