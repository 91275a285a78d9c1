package tonks

import "math"

// Prn is the probability that the nearest neighbour of a rod lies within
// distance r, for N rods on a segment of length L at density rho = N/L:
//
//	1 - exp(2*rho*(r-1)/(rho-1))
//
// A packed segment (rho = 1) returns 1, an empty one (N = 0) returns 0, and
// r < 1 returns 0 since two unit rods cannot be closer than one length.
func Prn(L float64, N int, r float64) (float64, error) {
	if err := checkLength(L); err != nil {
		return 0, err
	}
	if err := checkCount(N); err != nil {
		return 0, err
	}
	if math.IsNaN(r) || r < 0 {
		return 0, invalid("distance %v", r)
	}
	if N == 0 {
		return 0, nil
	}
	if float64(N) > L {
		return 0, invalid("%d rods do not fit on length %g", N, L)
	}
	rho := float64(N) / L
	if rho == 1 {
		return 1, nil
	}
	if r < 1 {
		return 0, nil
	}
	return 1 - math.Exp(2*rho*(r-1)/(rho-1)), nil
}

// Pr is Prn averaged over the grand-canonical occupation distribution.
func Pr(L, u, r, beta float64) (float64, error) {
	if math.IsNaN(r) || r < 0 {
		return 0, invalid("distance %v", r)
	}
	p, err := PnDist(L, u, beta)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for N, pn := range p {
		prn, err := Prn(L, N, r)
		if err != nil {
			return 0, err
		}
		sum += prn * pn
	}
	return sum, nil
}

// PrVec evaluates Pr for every length in ls.
func PrVec(ls []float64, u, r, beta float64) ([]float64, error) {
	return mapLengths(ls, func(L float64) (float64, error) { return Pr(L, u, r, beta) })
}

// Rmean is the mean nearest-neighbour distance for N rods on length L,
// (1 + L/N) / 2. With no rods there is no neighbour and the result is +Inf.
func Rmean(L float64, N int) (float64, error) {
	if err := checkLength(L); err != nil {
		return 0, err
	}
	if err := checkCount(N); err != nil {
		return 0, err
	}
	if N == 0 {
		return math.Inf(1), nil
	}
	return (1 + L/float64(N)) / 2, nil
}

// Hn is the probability of a hole of size at least r next to a rod, i.e.
// no neighbour within r+1, for exactly N rods.
func Hn(L float64, N int, r float64) (float64, error) {
	if math.IsNaN(r) || r < 0 {
		return 0, invalid("hole size %v", r)
	}
	prn, err := Prn(L, N, r+1)
	if err != nil {
		return 0, err
	}
	return 1 - prn, nil
}

// H is the grand-canonical hole probability, 1 - Pr(L, u, r+1, beta).
func H(L, u, r, beta float64) (float64, error) {
	if math.IsNaN(r) || r < 0 {
		return 0, invalid("hole size %v", r)
	}
	pr, err := Pr(L, u, r+1, beta)
	if err != nil {
		return 0, err
	}
	return 1 - pr, nil
}

// HVec evaluates H for every length in ls.
func HVec(ls []float64, u, r, beta float64) ([]float64, error) {
	return mapLengths(ls, func(L float64) (float64, error) { return H(L, u, r, beta) })
}
