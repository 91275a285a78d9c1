package tonks

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Pn is the probability of finding exactly N rods on a segment of length L
// in a bath at chemical potential u, exp(beta*N*u) * Q(L,N) / Z(L,u,beta).
// It is 0 for N > floor(L). A negative length holds only the empty
// configuration, matching Z = 1 there, so Pn is 1 for N = 0 and 0 otherwise.
func Pn(L, u float64, N int, beta float64) (float64, error) {
	if err := checkCount(N); err != nil {
		return 0, err
	}
	lz, err := LogZ(L, u, beta)
	if err != nil {
		return 0, err
	}
	if L < 0 {
		if N == 0 {
			return 1, nil
		}
		return 0, nil
	}
	lq, err := LogQ(L, N)
	if err != nil {
		return 0, err
	}
	if math.IsInf(lq, -1) {
		return 0, nil
	}
	return math.Exp(beta*float64(N)*u + lq - lz), nil
}

// PnDist returns Pn for N = 0..floor(L), normalised against a single
// evaluation of ln Z. A negative length gives the single-entry distribution
// [1], the certain empty configuration.
func PnDist(L, u, beta float64) ([]float64, error) {
	if err := checkLength(L); err != nil {
		return nil, err
	}
	if err := checkBath(u, beta); err != nil {
		return nil, err
	}
	if L < 0 {
		return []float64{1}, nil
	}
	w, err := logWeights(L, u, beta)
	if err != nil {
		return nil, err
	}
	lz := floats.LogSumExp(w)
	if math.IsInf(lz, 1) || math.IsNaN(lz) {
		return nil, overflow("ln Z(%g, %g, %g)", L, u, beta)
	}
	p := make([]float64, len(w))
	for N, lw := range w {
		p[N] = math.Exp(lw - lz)
	}
	return p, nil
}

// Nmean is the mean number of rods, sum over N of N * Pn(L,u,N,beta).
// Q(L,N) vanishes at N = L, so for integer L a strongly attracting bath
// saturates at floor(L)-1 rods, not floor(L).
func Nmean(L, u, beta float64) (float64, error) {
	p, err := PnDist(L, u, beta)
	if err != nil {
		return 0, err
	}
	mean := 0.0
	for N, pn := range p {
		mean += float64(N) * pn
	}
	return mean, nil
}

// NmeanVec evaluates Nmean for every length in ls.
func NmeanVec(ls []float64, u, beta float64) ([]float64, error) {
	return mapLengths(ls, func(L float64) (float64, error) { return Nmean(L, u, beta) })
}

// Density is the mean fraction of the segment covered, Nmean / L. An empty
// segment (L = 0) has density 0.
func Density(L, u, beta float64) (float64, error) {
	if L < 0 {
		return 0, invalid("density of negative length %g", L)
	}
	nm, err := Nmean(L, u, beta)
	if err != nil {
		return 0, err
	}
	if L == 0 {
		return 0, nil
	}
	return nm / L, nil
}

// DensityVec evaluates Density for every length in ls.
func DensityVec(ls []float64, u, beta float64) ([]float64, error) {
	return mapLengths(ls, func(L float64) (float64, error) { return Density(L, u, beta) })
}

// Entropy returns the Shannon entropy, in bits, of the distribution v/sum(v).
// Zero weights contribute nothing. A distribution with zero total weight
// yields NaN and ErrEmptyDistribution. Weights are rescaled by their maximum
// before summing, so values near MaxFloat64 do not overflow the total.
func Entropy(v []float64) (float64, error) {
	for i, x := range v {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return math.NaN(), invalid("weight %d is %v", i, x)
		}
	}
	if len(v) == 0 {
		return math.NaN(), ErrEmptyDistribution
	}
	top := floats.Max(v)
	if top == 0 {
		return math.NaN(), ErrEmptyDistribution
	}
	p := floats.ScaleTo(make([]float64, len(v)), 1/top, v)
	floats.Scale(1/floats.Sum(p), p)
	return stat.Entropy(p) / math.Ln2, nil
}

// Bistability is the entropy of the occupation-number distribution of a
// segment of length L, in bits. It peaks where two occupancies compete.
func Bistability(L, u, beta float64) (float64, error) {
	p, err := PnDist(L, u, beta)
	if err != nil {
		return 0, err
	}
	return Entropy(p)
}

// BistabilityVec evaluates Bistability for every length in ls.
func BistabilityVec(ls []float64, u, beta float64) ([]float64, error) {
	return mapLengths(ls, func(L float64) (float64, error) { return Bistability(L, u, beta) })
}
