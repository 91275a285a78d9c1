package tonks

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultBeta is the inverse temperature used by New.
const DefaultBeta = 1.0

func checkLength(L float64) error {
	if math.IsNaN(L) || math.IsInf(L, 0) {
		return invalid("length %v", L)
	}
	return nil
}

func checkBath(u, beta float64) error {
	if math.IsNaN(u) || math.IsInf(u, 0) {
		return invalid("chemical potential %v", u)
	}
	if math.IsNaN(beta) || beta <= 0 {
		return invalid("inverse temperature %v must be positive", beta)
	}
	return nil
}

func checkCount(N int) error {
	if N < 0 {
		return invalid("occupation count %d is negative", N)
	}
	return nil
}

// LogQ returns ln Q(L, N). It is -Inf when Q is zero, that is when N rods
// do not fit (N > L) or fill the segment with no free length left (N = L > 0).
func LogQ(L float64, N int) (float64, error) {
	if err := checkLength(L); err != nil {
		return 0, err
	}
	if err := checkCount(N); err != nil {
		return 0, err
	}
	free := L - float64(N)
	switch {
	case Heaviside(free) == 0:
		return math.Inf(-1), nil
	case N == 0:
		return 0, nil
	case free == 0:
		return math.Inf(-1), nil
	}
	return float64(N)*math.Log(free) - LogFactorial(N), nil
}

// Q is the canonical partition function of N unit rods on a segment of
// length L, heaviside(L-N) * (L-N)^N / N!. It is 0 when N > L.
func Q(L float64, N int) (float64, error) {
	if err := checkLength(L); err != nil {
		return 0, err
	}
	if err := checkCount(N); err != nil {
		return 0, err
	}
	free := L - float64(N)
	if Heaviside(free) == 0 {
		return 0, nil
	}
	if N <= maxFactorial {
		if q := math.Pow(free, float64(N)) / Factorial(N); !math.IsInf(q, 0) {
			return q, nil
		}
	}
	lq, err := LogQ(L, N)
	if err != nil {
		return 0, err
	}
	q := math.Exp(lq)
	if math.IsInf(q, 1) {
		return 0, overflow("Q(%g, %d)", L, N)
	}
	return q, nil
}

// QVec evaluates Q(L, N) for every N in ns against a single length.
func QVec(L float64, ns []int) ([]float64, error) {
	out := make([]float64, len(ns))
	for i, n := range ns {
		q, err := Q(L, n)
		if err != nil {
			return nil, &ElementError{Index: i, L: L, Err: err}
		}
		out[i] = q
	}
	return out, nil
}

// logWeights returns beta*N*u + ln Q(L,N) for N = 0..Nmax(L).
func logWeights(L, u, beta float64) ([]float64, error) {
	n := Nmax(L)
	w := make([]float64, n+1)
	for N := 0; N <= n; N++ {
		lq, err := LogQ(L, N)
		if err != nil {
			return nil, err
		}
		w[N] = beta*float64(N)*u + lq
		if math.IsInf(w[N], 1) {
			return nil, overflow("weight of N=%d at L=%g", N, L)
		}
	}
	return w, nil
}

// LogZ returns ln Z(L, u, beta). A negative length gives 0 (Z = 1).
func LogZ(L, u, beta float64) (float64, error) {
	if err := checkLength(L); err != nil {
		return 0, err
	}
	if err := checkBath(u, beta); err != nil {
		return 0, err
	}
	if L < 0 {
		return 0, nil
	}
	w, err := logWeights(L, u, beta)
	if err != nil {
		return 0, err
	}
	lz := floats.LogSumExp(w)
	if math.IsInf(lz, 1) || math.IsNaN(lz) {
		return 0, overflow("ln Z(%g, %g, %g)", L, u, beta)
	}
	return lz, nil
}

// Z is the grand-canonical partition function, the sum over
// N = 0..floor(L) of exp(beta*N*u) * Q(L, N). Z of a negative length is 1.
// ErrNumericOverflow is returned when the sum does not fit in a float64;
// LogZ stays usable in that regime.
func Z(L, u, beta float64) (float64, error) {
	lz, err := LogZ(L, u, beta)
	if err != nil {
		return 0, err
	}
	z := math.Exp(lz)
	if math.IsInf(z, 1) {
		return 0, overflow("Z(%g, %g, %g) = exp(%g)", L, u, beta, lz)
	}
	return z, nil
}

// ZVec evaluates Z for every length in ls.
func ZVec(ls []float64, u, beta float64) ([]float64, error) {
	return mapLengths(ls, func(L float64) (float64, error) { return Z(L, u, beta) })
}

// LogZVec evaluates LogZ for every length in ls.
func LogZVec(ls []float64, u, beta float64) ([]float64, error) {
	return mapLengths(ls, func(L float64) (float64, error) { return LogZ(L, u, beta) })
}
