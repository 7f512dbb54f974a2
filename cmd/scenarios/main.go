package main

import (
	"context"
	"flag"
	"os"
	"time"

	"econlab/internal/scenarios"
)

// Default run configuration constants.
const (
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9090", "Base URL of the service")
		file      = flag.String("file", "", "YAML scenario file (default: built-in suite)")
		workers   = flag.Int("workers", scenarios.DefaultWorkers, "Number of concurrent submitters")
		timeout   = flag.Duration("timeout", scenarios.DefaultTimeout, "HTTP request timeout")
		tolerance = flag.Float64("tolerance", scenarios.DefaultTolerance, "Maximum absolute output difference")
		verbose   = flag.Bool("verbose", false, "Enable per-scenario logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		scenarios.ShowHelp()
		return
	}

	if err := scenarios.SetupLogging(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &scenarios.Config{
		BaseURL:   *baseURL,
		File:      *file,
		Workers:   *workers,
		Timeout:   *timeout,
		Tolerance: *tolerance,
		Verbose:   *verbose,
	}

	if err := scenarios.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Scenario run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
