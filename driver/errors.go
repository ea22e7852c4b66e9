package driver

import "errors"

// Sentinel errors for the iteration driver.
var (
	// ErrInvalidCallbacks is returned by New when the supplied callback.Set
	// is missing a required field.
	ErrInvalidCallbacks = errors.New("driver: invalid callback set")

	// ErrTimeBudgetExceeded is returned by RunIteration when the driver's
	// wall-clock budget has already expired at an iteration boundary
	// (spec.md §5: "the next iteration boundary returns a time exceeded
	// result").
	ErrTimeBudgetExceeded = errors.New("driver: time budget exceeded")
)
