package api

import "errors"

// Fixed failure messages returned to the front-end.
const (
	MsgWeatherFailed = "Weather data failed"
	MsgCountryFailed = "Country failed"
)

// Sentinel kinds for API errors.
var (
	ErrNoDependencies = errors.New("api: dependencies are nil")
)
