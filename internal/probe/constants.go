package probe

import "errors"

// Endpoint names used in cases and logs.
const (
	EndpointWeather  = "weather"
	EndpointCountry  = "country"
	EndpointExchange = "exchange"
)

// Fixed failure bodies and sentinel the relay is expected to answer with.
const (
	weatherFailureBody = `{"error":"Weather data failed"}`
	countryFailureBody = `{"error":"Country failed"}`
	notAvailable       = "N/A"
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	maxBodyBytes         = 1 << 20
)

// Probe errors.
var (
	ErrUnhealthy  = errors.New("relay health check failed")
	ErrViolations = errors.New("relay violated response properties")
	ErrNoCases    = errors.New("nothing to probe")
)
