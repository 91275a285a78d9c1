package reduce

import (
	"fmt"

	"github.com/san-kum/tonksim/internal/trajectory"
)

// Count is the number of objects on the lattice at a time.
type Count struct {
	Time float64
	N    int
}

// NObjects counts the occupied positions of every frame.
func NObjects(frames []trajectory.Frame) []Count {
	out := make([]Count, len(frames))
	for i, f := range frames {
		out[i] = Count{Time: f.Time, N: len(f.Positions)}
	}
	return out
}

// SplitCounts separates a count series into its times and counts.
func SplitCounts(cs []Count) ([]float64, []int) {
	times := make([]float64, len(cs))
	counts := make([]int, len(cs))
	for i, c := range cs {
		times[i], counts[i] = c.Time, c.N
	}
	return times, counts
}

// HistByTime returns the fraction of the total time spent with each number
// of objects. counts[i] holds from times[i] until times[i+1]; the result is
// normalised by the final time.
func HistByTime(times []float64, counts []int) ([]float64, error) {
	if len(times) != len(counts) {
		return nil, fmt.Errorf("%w: %d times, %d counts", ErrLengthMismatch, len(times), len(counts))
	}
	if len(times) == 0 {
		return nil, ErrNoData
	}
	end := times[len(times)-1]
	if end == 0 {
		return nil, ErrZeroDuration
	}

	maxCount := 0
	for i, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("reduce: negative count %d at row %d", c, i)
		}
		if c > maxCount {
			maxCount = c
		}
	}

	hist := make([]float64, maxCount+1)
	for i := 0; i < len(counts)-1; i++ {
		hist[counts[i]] += times[i+1] - times[i]
	}
	for i := range hist {
		hist[i] /= end
	}
	return hist, nil
}

// Transitions tallies changes in the number of bound objects.
type Transitions struct {
	Adsorptions int
	Desorptions int
	Total       int
}

// CountTransitions classifies each row of a count series against the
// previous row, starting from an empty lattice. Rows where the count does
// not change still count towards Total.
func CountTransitions(counts []int) Transitions {
	var t Transitions
	prev := 0
	for _, n := range counts {
		t.Total++
		switch {
		case n > prev:
			t.Adsorptions++
		case n < prev:
			t.Desorptions++
		}
		prev = n
	}
	return t
}

// PositionDistribution returns, for every lattice position, the fraction
// of the total time it was occupied. Each frame's occupancy holds until the
// next frame's time.
func PositionDistribution(frames []trajectory.Frame) ([]float64, error) {
	if len(frames) == 0 {
		return nil, ErrNoData
	}
	end := frames[len(frames)-1].Time
	if end == 0 {
		return nil, ErrZeroDuration
	}

	dist := []float64{0}
	for i := 1; i < len(frames); i++ {
		dt := frames[i].Time - frames[i-1].Time
		for _, p := range frames[i-1].Positions {
			if p >= len(dist) {
				dist = append(dist, make([]float64, p-len(dist)+1)...)
			}
			dist[p] += dt
		}
	}
	for i := range dist {
		dist[i] /= end
	}
	return dist, nil
}

// DefaultHoleSize is the footprint, in lattice sites, of a nucleosome.
const DefaultHoleSize = 147

// PHole returns the probability mass at or beyond index size, i.e. the
// chance of a linker long enough to fit another object of that size.
func PHole(p []float64, size int) (float64, error) {
	if size < 0 {
		return 0, fmt.Errorf("reduce: negative hole size %d", size)
	}
	if size >= len(p) {
		return 0, nil
	}
	sum := 0.0
	for _, v := range p[size:] {
		sum += v
	}
	return sum, nil
}
