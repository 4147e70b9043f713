package api

import (
	"context"
	"net/http"

	"github.com/okian/relay/internal/domain/model"
	"github.com/okian/relay/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// CountryDependencies defines the interface for country lookups.
type CountryDependencies interface {
	Country(ctx context.Context, code string) (model.CountrySummary, error)
}

// CountryHandler handles country requests.
type CountryHandler struct {
	deps   CountryDependencies
	logger logger.Logger
}

// NewCountryHandler creates a new country handler.
func NewCountryHandler(deps CountryDependencies, log logger.Logger) *CountryHandler {
	return &CountryHandler{deps: deps, logger: log}
}

// HandleGetCountry handles GET /api/country/{code}.
func (h *CountryHandler) HandleGetCountry(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	summary, err := h.deps.Country(r.Context(), code)
	if err != nil {
		h.logger.Warn(r.Context(), "country lookup failed", logger.String("code", code), logger.Error(err))
		writeError(w, http.StatusInternalServerError, MsgCountryFailed)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
