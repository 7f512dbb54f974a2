// Package scenarios runs model scenarios against a live service and
// verifies the results.
package scenarios

import "time"

// Default runner configuration constants.
const (
	DefaultTolerance = 1e-6
	DefaultWorkers   = 4
	DefaultTimeout   = 30 * time.Second
)

// Config holds runner configuration.
type Config struct {
	// BaseURL of the service under test.
	BaseURL string

	// File is an optional YAML scenario file; empty means the built-in
	// suite.
	File string

	// Workers is the number of concurrent submitters.
	Workers int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Tolerance is the maximum absolute difference accepted between an
	// expected and an observed output.
	Tolerance float64

	// Verbose enables per-scenario logging.
	Verbose bool
}
