package api

import (
	"context"
	"net/http"

	"github.com/okian/relay/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// ExchangeDependencies defines the interface for rate lookups.
type ExchangeDependencies interface {
	ExchangeRate(ctx context.Context, currency string) model.ExchangeRate
}

// ExchangeHandler handles exchange rate requests.
type ExchangeHandler struct {
	deps ExchangeDependencies
}

// NewExchangeHandler creates a new exchange handler.
func NewExchangeHandler(deps ExchangeDependencies) *ExchangeHandler {
	return &ExchangeHandler{deps: deps}
}

// HandleGetExchange handles GET /api/exchange/{currency}. It always answers
// 200; failures surface as the N/A rate.
func (h *ExchangeHandler) HandleGetExchange(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.ExchangeRate(r.Context(), chi.URLParam(r, "currency")))
}
