// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/relay/internal/domain/model"
	"github.com/okian/relay/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Weather(ctx context.Context, city string) (model.WeatherSummary, error)
	Country(ctx context.Context, code string) (model.CountrySummary, error)
	// ExchangeRate never fails; unknown and unavailable both map to N/A.
	ExchangeRate(ctx context.Context, currency string) model.ExchangeRate
}

// Server wires HTTP routes for the relay API.
type Server struct {
	healthHandler   *HealthHandler
	weatherHandler  *WeatherHandler
	countryHandler  *CountryHandler
	exchangeHandler *ExchangeHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, log logger.Logger) (*Server, error) {
	if deps == nil {
		return nil, ErrNoDependencies
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		healthHandler:   NewHealthHandler(),
		weatherHandler:  NewWeatherHandler(deps, log.Named("weather")),
		countryHandler:  NewCountryHandler(deps, log.Named("country")),
		exchangeHandler: NewExchangeHandler(deps),
	}, nil
}

// Register attaches all API and operational routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Method(http.MethodGet, "/metrics", s.healthHandler.MetricsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/weather", MetricsMiddleware(s.weatherHandler.HandleGetWeather, "weather"))
		r.Get("/country/{code}", MetricsMiddleware(s.countryHandler.HandleGetCountry, "country"))
		r.Get("/exchange/{currency}", MetricsMiddleware(s.exchangeHandler.HandleGetExchange, "exchange"))
	})
}

// errorResponse is the failure body of the weather and country endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
