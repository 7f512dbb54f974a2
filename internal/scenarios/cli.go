package scenarios

import (
	"fmt"
	"os"

	"econlab/pkg/logger"
)

// SetupLogging initializes the logger for the scenario tool.
func SetupLogging() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the scenario tool.
func ShowHelp() {
	os.Stdout.WriteString(`Econlab Scenario Tool
=====================

Runs model scenarios against a live econlab service and verifies the
computed outputs against closed-form expectations.

Usage:
  go run cmd/scenarios/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9090")
  -file string
        YAML scenario file (default: built-in suite covering every model)
  -workers int
        Number of concurrent submitters (default 4)
  -timeout duration
        HTTP request timeout (default 30s)
  -tolerance float
        Maximum absolute difference between expected and observed outputs
        (default 1e-6)
  -verbose
        Enable per-scenario logging
  -help
        Show this help message

Examples:
  # Run the built-in suite against a local service
  go run cmd/scenarios/main.go

  # Run a custom suite with a looser tolerance
  go run cmd/scenarios/main.go -file suites/markets.yaml -tolerance 1e-4

  # Run with verbose output
  go run cmd/scenarios/main.go -verbose -workers 8
`)
}
