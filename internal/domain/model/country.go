package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CountrySummary is the reply of GET /api/country/{code}. CurrencyCode is
// omitted when the country has no currency.
type CountrySummary struct {
	FullName     string `json:"fullName"`
	Flag         string `json:"flag"`
	Population   int64  `json:"population"`
	Region       string `json:"region"`
	CurrencyCode string `json:"currencyCode,omitempty"`
	CurrencyName string `json:"currencyName"`
}

// CountryRecord is one element of the REST Countries alpha lookup array.
type CountryRecord struct {
	Name *struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Flags *struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
	Population int64      `json:"population"`
	Region     string     `json:"region"`
	Currencies Currencies `json:"currencies"`
}

// Currency is one entry of a country's currencies object.
type Currency struct {
	Code   string `json:"-"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Currencies keeps the entries of the upstream currencies object in
// document order.
type Currencies []Currency

// UnmarshalJSON decodes a JSON object keyed by currency code.
func (c *Currencies) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: currencies is not an object", ErrMalformedPayload)
	}

	out := Currencies{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		code, _ := keyTok.(string)
		cur := Currency{}
		if err := dec.Decode(&cur); err != nil {
			return fmt.Errorf("currency %s: %w", code, err)
		}
		cur.Code = code
		out = append(out, cur)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

// First returns the first currency in document order.
func (c Currencies) First() (Currency, bool) {
	if len(c) == 0 {
		return Currency{}, false
	}
	return c[0], true
}

// NewCountrySummary reshapes the first record. An empty slice, or a record
// without name or flags, is malformed. A country without currencies gets no
// code and the N/A name, as does a currency without a name.
func NewCountrySummary(records []CountryRecord) (CountrySummary, error) {
	if len(records) == 0 {
		return CountrySummary{}, fmt.Errorf("%w: empty country list", ErrMalformedPayload)
	}
	r := records[0]
	switch {
	case r.Name == nil:
		return CountrySummary{}, fmt.Errorf("%w: missing name", ErrMalformedPayload)
	case r.Flags == nil:
		return CountrySummary{}, fmt.Errorf("%w: missing flags", ErrMalformedPayload)
	}

	s := CountrySummary{
		FullName:     r.Name.Official,
		Flag:         r.Flags.PNG,
		Population:   r.Population,
		Region:       r.Region,
		CurrencyName: NotAvailable,
	}
	if cur, ok := r.Currencies.First(); ok {
		s.CurrencyCode = cur.Code
		if cur.Name != "" {
			s.CurrencyName = cur.Name
		}
	}
	return s, nil
}
