// Package landscape builds per-site potential energy landscapes for lattice
// simulations.
package landscape

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidWell = errors.New("landscape: invalid well")

// Well is a Gaussian dip (negative Depth) or bump centred on a lattice site.
type Well struct {
	Pos   int
	Depth float64
	Sigma float64
}

func (w Well) String() string {
	return fmt.Sprintf("pos=%d depth=%g sigma=%g", w.Pos, w.Depth, w.Sigma)
}

// At returns the well's contribution at site i, ignoring its cutoff.
func (w Well) At(i int) float64 {
	d := float64(i - w.Pos)
	return w.Depth * math.Exp(-d*d/(w.Sigma*w.Sigma))
}

// ParseWell parses "pos,depth,sigma".
func ParseWell(s string) (Well, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Well{}, fmt.Errorf("%w: %q is not pos,depth,sigma", ErrInvalidWell, s)
	}
	pos, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Well{}, fmt.Errorf("%w: position: %v", ErrInvalidWell, err)
	}
	depth, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Well{}, fmt.Errorf("%w: depth: %v", ErrInvalidWell, err)
	}
	sigma, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return Well{}, fmt.Errorf("%w: sigma: %v", ErrInvalidWell, err)
	}
	return Well{Pos: int(pos), Depth: depth, Sigma: sigma}, nil
}

// Build returns a landscape of length sites at height flat with each well
// added over [pos-3σ, pos+3σ), clipped to the lattice. The upper cutoff is
// exclusive and never reaches the last site.
func Build(length int, flat float64, wells []Well) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("landscape: length %d must be positive", length)
	}
	v := make([]float64, length)
	for i := range v {
		v[i] = flat
	}
	for _, w := range wells {
		if w.Sigma <= 0 || math.IsNaN(w.Sigma) {
			return nil, fmt.Errorf("%w: %v: sigma must be positive", ErrInvalidWell, w)
		}
		start := int(float64(w.Pos) - 3*w.Sigma)
		if start < 0 {
			start = 0
		}
		end := int(float64(w.Pos) + 3*w.Sigma)
		if end > length-1 {
			end = length - 1
		}
		for i := start; i < end; i++ {
			v[i] += w.At(i)
		}
	}
	return v, nil
}

// DoubleWell is Build with exactly two wells of equal shape at a and b.
func DoubleWell(length int, flat float64, a, b int, depth, sigma float64) ([]float64, error) {
	return Build(length, flat, []Well{
		{Pos: a, Depth: depth, Sigma: sigma},
		{Pos: b, Depth: depth, Sigma: sigma},
	})
}
