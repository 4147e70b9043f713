// Package probe drives a running relay with concurrent requests and checks
// every response against the documented shapes.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/relay/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Run executes the complete probe.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("probe")

	cases := buildCases(config)
	if len(cases) == 0 {
		return stats, ErrNoCases
	}

	log.Info(ctx, "starting relay probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("cases", len(cases)),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	client := newHTTPClient(config.Timeout)
	if err := checkServiceHealth(ctx, client, config.BaseURL); err != nil {
		return stats, err
	}

	results := runCases(ctx, client, config, cases)

	for _, r := range results {
		stats.Requests++
		if r.OK() {
			stats.Passed++
			if config.Verbose {
				log.Info(ctx, "check passed",
					logger.String("endpoint", r.Case.Endpoint),
					logger.String("input", r.Case.Input),
					logger.Int("status", r.Status),
					logger.Duration("latency", r.Latency))
			}
			continue
		}
		stats.Failed++
		stats.Violations += len(r.Violations)
		fields := []logger.Field{
			logger.String("endpoint", r.Case.Endpoint),
			logger.String("input", r.Case.Input),
			logger.Int("status", r.Status),
			logger.String("violations", strings.Join(r.Violations, "; ")),
		}
		if r.Err != nil {
			fields = append(fields, logger.Error(r.Err))
		}
		log.Warn(ctx, "check failed", fields...)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d checks failed", ErrViolations, stats.Failed, stats.Requests)
	}
	log.Info(ctx, "probe completed successfully")
	return stats, nil
}

// buildCases expands the configured inputs into request cases.
func buildCases(config *Config) []Case {
	cases := make([]Case, 0, len(config.Cities)+len(config.Countries)+len(config.Currencies))
	for _, city := range config.Cities {
		cases = append(cases, Case{Endpoint: EndpointWeather, Input: city, Path: "/api/weather?city=" + url.QueryEscape(city)})
	}
	for _, code := range config.Countries {
		cases = append(cases, Case{Endpoint: EndpointCountry, Input: code, Path: "/api/country/" + url.PathEscape(code)})
	}
	for _, code := range config.Currencies {
		cases = append(cases, Case{Endpoint: EndpointExchange, Input: code, Path: "/api/exchange/" + url.PathEscape(code)})
	}
	return cases
}

// runCases issues every case with at most config.Workers in flight. Results
// keep the order of cases.
func runCases(ctx context.Context, client *HTTPClient, config *Config, cases []Case) []Result {
	results := make([]Result, len(cases))
	base := strings.TrimRight(config.BaseURL, "/")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Workers, 1))

	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			results[i] = runCase(gctx, client, base, c)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func runCase(ctx context.Context, client *HTTPClient, base string, c Case) Result {
	start := time.Now()
	status, body, err := client.Get(ctx, base+c.Path)
	r := Result{Case: c, Status: status, Latency: time.Since(start), Err: err}
	if err != nil {
		r.Violations = []string{"request failed"}
		return r
	}
	r.Violations = checkFor(c.Endpoint)(status, body)
	return r
}

// checkServiceHealth verifies the relay is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	status, _, err := client.Get(ctx, strings.TrimRight(baseURL, "/")+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var passRate, requestsPerSecond float64

	if stats.Requests > 0 {
		passRate = float64(stats.Passed) / float64(stats.Requests) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Requests) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("requests", stats.Requests),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Int("violations", stats.Violations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("passRate", passRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
