package trajectory

import (
	"bufio"
	"fmt"
	"io"
)

// WriteIndexed writes values as "index<TAB>value" lines.
func WriteIndexed(w io.Writer, values []float64) error {
	bw := bufio.NewWriter(w)
	for i, v := range values {
		if _, err := fmt.Fprintf(bw, "%d\t%g\n", i, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePairs writes "x<TAB>y" lines. xs and ys must have equal length.
func WritePairs(w io.Writer, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("trajectory: %d x values but %d y values", len(xs), len(ys))
	}
	bw := bufio.NewWriter(w)
	for i := range xs {
		if _, err := fmt.Fprintf(bw, "%g\t%g\n", xs[i], ys[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteValues writes one value per line in the fixed scientific layout
// expected by the simulator's landscape loader.
func WriteValues(w io.Writer, values []float64) error {
	bw := bufio.NewWriter(w)
	for _, v := range values {
		if _, err := fmt.Fprintf(bw, "%.18e\n", v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCounts writes "time<TAB>count" lines.
func WriteCounts(w io.Writer, times []float64, counts []int) error {
	if len(times) != len(counts) {
		return fmt.Errorf("trajectory: %d times but %d counts", len(times), len(counts))
	}
	bw := bufio.NewWriter(w)
	for i := range times {
		if _, err := fmt.Fprintf(bw, "%g\t%d\n", times[i], counts[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFrame writes f as "time<TAB>p1,p2,...". An empty lattice writes the
// time alone, which ReadFrames reads back as a frame without positions.
func WriteFrame(w io.Writer, f Frame) error {
	if _, err := fmt.Fprintf(w, "%g", f.Time); err != nil {
		return err
	}
	for i, p := range f.Positions {
		sep := ","
		if i == 0 {
			sep = "\t"
		}
		if _, err := fmt.Fprintf(w, "%s%d", sep, p); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
