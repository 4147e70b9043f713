package upstream

import (
	"context"
	"net/url"

	"github.com/okian/relay/internal/domain/model"
)

// ProviderRestCountries labels REST Countries in metrics and spans.
const ProviderRestCountries = "restcountries"

// RestCountries calls the REST Countries v3.1 API.
type RestCountries struct {
	base
}

// NewRestCountries creates a client for baseURL, e.g. "https://restcountries.com/v3.1".
func NewRestCountries(baseURL string, opts ...Option) *RestCountries {
	return &RestCountries{base: newBase(ProviderRestCountries, baseURL, opts)}
}

// ByAlphaCode looks up a country by its alpha-2 or alpha-3 code. The
// provider answers with an array of candidates.
func (c *RestCountries) ByAlphaCode(ctx context.Context, code string) ([]model.CountryRecord, error) {
	var records []model.CountryRecord
	if err := c.getJSON(ctx, "/alpha/"+url.PathEscape(code), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
