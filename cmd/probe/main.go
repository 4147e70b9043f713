package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/relay/internal/probe"
)

// Default configuration constants.
const (
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 15 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:3000", "Base URL of the relay")
		cities     = flag.String("cities", "London,Tokyo,São Paulo,Nairobi", "Comma separated cities for /api/weather")
		countries  = flag.String("countries", "GB,JP,BR,KE,AQ", "Comma separated alpha codes for /api/country")
		currencies = flag.String("currencies", "EUR,JPY,BRL,KES,XXX", "Comma separated currency codes for /api/exchange")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Concurrent requests in flight")
		timeout    = flag.Duration("timeout", defaultTimeout, "Per-request timeout")
		logFile    = flag.String("log", "", "Also write logs to this file")
		verbose    = flag.Bool("verbose", false, "Log passing checks too")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	if err := probe.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	config := &probe.Config{
		BaseURL:    *baseURL,
		Cities:     probe.SplitList(*cities),
		Countries:  probe.SplitList(*countries),
		Currencies: probe.SplitList(*currencies),
		Workers:    *workers,
		Timeout:    *timeout,
		Verbose:    *verbose,
	}

	if _, err := probe.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		cancel()
		stop()
		os.Exit(1)
	}
}
