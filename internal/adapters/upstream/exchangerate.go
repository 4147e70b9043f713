package upstream

import (
	"context"
	"fmt"

	"github.com/okian/relay/internal/domain/model"
)

// ProviderExchangeRate labels ExchangeRate-API in metrics and spans.
const ProviderExchangeRate = "exchangerate"

const (
	baseCurrency = "USD"
	resultError  = "error"
)

// ExchangeRate calls the ExchangeRate-API open access endpoint.
type ExchangeRate struct {
	base
}

// NewExchangeRate creates a client for baseURL, e.g. "https://open.er-api.com/v6".
func NewExchangeRate(baseURL string, opts ...Option) *ExchangeRate {
	return &ExchangeRate{base: newBase(ProviderExchangeRate, baseURL, opts)}
}

// LatestUSD fetches the whole USD-based rate table.
func (c *ExchangeRate) LatestUSD(ctx context.Context) (model.RatesTable, error) {
	var t model.RatesTable
	if err := c.getJSON(ctx, "/latest/"+baseCurrency, nil, &t); err != nil {
		return model.RatesTable{}, err
	}
	if t.Result == resultError {
		return model.RatesTable{}, fmt.Errorf("%w: %s: %s", ErrUpstreamResult, c.provider, t.ErrorType)
	}
	return t, nil
}
