package model

import "github.com/shopspring/decimal"

// NotAvailable is the sentinel used in place of a missing value.
const NotAvailable = "N/A"

// ratePlaces is the number of decimals in a formatted rate.
const ratePlaces = 2

// ExchangeRate is the reply of GET /api/exchange/{currency}.
type ExchangeRate struct {
	Rate string `json:"rate"`
}

// RatesTable is the ExchangeRate-API latest document.
type RatesTable struct {
	Result    string             `json:"result"`
	ErrorType string             `json:"error-type"`
	BaseCode  string             `json:"base_code"`
	Rates     map[string]float64 `json:"rates"`
}

// UnavailableRate is the reply used when no rate can be given.
func UnavailableRate() ExchangeRate {
	return ExchangeRate{Rate: NotAvailable}
}

// NewExchangeRate looks code up in t. Codes are matched exactly. A missing
// or zero rate yields the N/A sentinel and found=false.
func NewExchangeRate(t RatesTable, code string) (rate ExchangeRate, found bool) {
	v, ok := t.Rates[code]
	if !ok || v == 0 {
		return UnavailableRate(), false
	}
	return ExchangeRate{Rate: decimal.NewFromFloat(v).StringFixed(ratePlaces)}, true
}
