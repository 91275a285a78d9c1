package kmc

import "errors"

var (
	// ErrInvalidParameters indicates parameters that cannot describe a lattice.
	ErrInvalidParameters = errors.New("kmc: invalid parameters")

	// ErrNoTransition is returned by Select when every rate is zero.
	ErrNoTransition = errors.New("kmc: no enabled transition")
)
