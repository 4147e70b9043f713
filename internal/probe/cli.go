package probe

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/relay/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0o600
)

// SetupLogging initializes the logger, teeing to logFile when set.
func SetupLogging(logFile string, verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	if logFile == "" {
		return nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	return logger.SetOutput(io.MultiWriter(os.Stdout, file))
}

// SplitList parses a comma separated flag value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`Relay Probe
===========

Issues concurrent requests against a running relay and checks every
response against the documented shapes. Exits non-zero on any violation.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the relay (default "http://localhost:3000")
  -cities string
        Comma separated cities for /api/weather
  -countries string
        Comma separated alpha codes for /api/country
  -currencies string
        Comma separated currency codes for /api/exchange
  -workers int
        Concurrent requests in flight (default CPU cores * 2)
  -timeout duration
        Per-request timeout (default 15s)
  -log string
        Also write logs to this file
  -verbose
        Log passing checks too
  -help
        Show this help message

Examples:
  go run ./cmd/probe -cities "London,Tokyo,São Paulo" -countries GB,JP,AQ -currencies EUR,JPY,XXX
`)
}
