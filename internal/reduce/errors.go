package reduce

import "errors"

var (
	// ErrNoData indicates an empty input.
	ErrNoData = errors.New("reduce: no data")

	// ErrLengthMismatch indicates paired inputs of different lengths.
	ErrLengthMismatch = errors.New("reduce: length mismatch")

	// ErrZeroDuration indicates a time series that ends at t = 0, so
	// nothing can be normalised by its duration.
	ErrZeroDuration = errors.New("reduce: series has zero duration")
)
