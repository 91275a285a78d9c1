package reduce

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Average returns the element-wise mean of equal-length series, e.g. the
// same column read from several replicate runs.
func Average(series [][]float64) ([]float64, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}
	total := make([]float64, len(series[0]))
	for i, s := range series {
		if len(s) != len(total) {
			return nil, fmt.Errorf("%w: series %d has %d values, want %d", ErrLengthMismatch, i, len(s), len(total))
		}
		floats.Add(total, s)
	}
	floats.Scale(1/float64(len(series)), total)
	return total, nil
}

// Stats summarises a sample.
type Stats struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary returns the mean, sample standard deviation and range of values.
func Summary(values []float64) (Stats, error) {
	if len(values) == 0 {
		return Stats{}, ErrNoData
	}
	mean, std := stat.MeanStdDev(values, nil)
	return Stats{
		N:      len(values),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}, nil
}
