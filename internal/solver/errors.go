package solver

import "errors"

var (
	// ErrSolverUnavailable indicates the solver server is unreachable.
	ErrSolverUnavailable = errors.New("menu solver unavailable")

	// ErrTimeout indicates the solver request exceeded the configured timeout.
	ErrTimeout = errors.New("menu solver request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("menu solver retry attempts exhausted")
)
