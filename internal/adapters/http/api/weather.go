package api

import (
	"context"
	"net/http"

	"github.com/okian/relay/internal/domain/model"
	"github.com/okian/relay/pkg/logger"
)

// WeatherDependencies defines the interface for weather lookups.
type WeatherDependencies interface {
	Weather(ctx context.Context, city string) (model.WeatherSummary, error)
}

// WeatherHandler handles weather requests.
type WeatherHandler struct {
	deps   WeatherDependencies
	logger logger.Logger
}

// NewWeatherHandler creates a new weather handler.
func NewWeatherHandler(deps WeatherDependencies, log logger.Logger) *WeatherHandler {
	return &WeatherHandler{deps: deps, logger: log}
}

// HandleGetWeather handles GET /api/weather?city=NAME. The city is passed
// through unchecked; the provider rejects what it cannot resolve.
func (h *WeatherHandler) HandleGetWeather(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	summary, err := h.deps.Weather(r.Context(), city)
	if err != nil {
		h.logger.Warn(r.Context(), "weather lookup failed", logger.String("city", city), logger.Error(err))
		writeError(w, http.StatusInternalServerError, MsgWeatherFailed)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
