package tonks

import (
	"errors"
	"fmt"
)

// Domain errors for model evaluation.
var (
	// ErrInvalidArgument indicates an input outside the model's domain
	// (negative N, x1 > x2, r < 0, beta <= 0, NaN).
	ErrInvalidArgument = errors.New("tonks: invalid argument")

	// ErrNumericOverflow indicates a result that does not fit in a float64.
	ErrNumericOverflow = errors.New("tonks: numeric overflow")

	// ErrEmptyDistribution indicates a distribution whose weights sum to zero.
	ErrEmptyDistribution = errors.New("tonks: distribution has zero total weight")
)

// ElementError reports which element of a vector input failed.
type ElementError struct {
	Index int
	L     float64
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d (L=%g): %v", e.Index, e.L, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func overflow(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNumericOverflow, fmt.Sprintf(format, args...))
}
