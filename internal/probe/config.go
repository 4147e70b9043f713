package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL    string        // Base URL of the relay
	Cities     []string      // Cities for /api/weather
	Countries  []string      // Codes for /api/country
	Currencies []string      // Codes for /api/exchange
	Workers    int           // Concurrent requests in flight
	Timeout    time.Duration // Per-request timeout
	Verbose    bool          // Log every check, not only violations
}

// Case is one request the probe issues.
type Case struct {
	Endpoint string // weather, country or exchange
	Input    string // city, country code or currency code
	Path     string // request path with query
}

// Result is the outcome of one case.
type Result struct {
	Case       Case
	Status     int
	Latency    time.Duration
	Violations []string
	Err        error
}

// OK reports whether the case met every property.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Violations) == 0
}

// Stats holds run statistics.
type Stats struct {
	Requests   int
	Passed     int
	Failed     int
	Violations int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
