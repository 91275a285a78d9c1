package landscape

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/san-kum/tonksim/internal/trajectory"
)

var ErrEmptyLandscape = errors.New("landscape: no sites")

// Read parses a landscape written one value per line, as produced by
// trajectory.WriteValues.
func Read(r io.Reader) ([]float64, error) {
	cols, err := trajectory.ReadColumns(r, 0)
	if err != nil {
		return nil, err
	}
	return checkValues(cols[0])
}

// ReadFile reads a landscape from path, decompressing by extension.
func ReadFile(path string) ([]float64, error) {
	cols, err := trajectory.ReadColumnFile(path, 0)
	if err != nil {
		return nil, err
	}
	v, err := checkValues(cols[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func checkValues(v []float64) ([]float64, error) {
	if len(v) == 0 {
		return nil, ErrEmptyLandscape
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("landscape: site %d is %v", i, x)
		}
	}
	return v, nil
}
