package trajectory

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn indicates a row with fewer fields than requested.
	ErrMissingColumn = errors.New("trajectory: missing column")

	// ErrNoColumns indicates ReadColumns was called without column indexes.
	ErrNoColumns = errors.New("trajectory: no columns requested")
)

// ParseError wraps a failure on a specific input line (1-based).
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trajectory: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
