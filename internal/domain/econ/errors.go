package econ

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. Callers distinguish domain
// infeasibility from caller mistakes and internal faults via errors.Is.
var (
	// ErrInfeasible marks parameters that admit no economically valid
	// solution (negative equilibrium, non-positive slopes, domain
	// violations in a closed form).
	ErrInfeasible = errors.New("model infeasible")

	// ErrUnknownModel marks an unrecognized model kind.
	ErrUnknownModel = errors.New("unknown model kind")

	// ErrMissingParam marks a required parameter absent from the input.
	ErrMissingParam = errors.New("missing parameter")

	// ErrBadParam marks a parameter that is present but not a finite number.
	ErrBadParam = errors.New("bad parameter")

	// ErrNotFinite marks a solver that produced NaN or Inf despite passing
	// its feasibility guards. This is an internal fault, not infeasibility.
	ErrNotFinite = errors.New("non-finite result")
)

// infeasible builds an ErrInfeasible with a reason.
func infeasible(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInfeasible, fmt.Sprintf(format, args...))
}
