package tonks

import "math"

// R1 is the one-particle density at position x (0.5 <= x <= L-0.5) on a
// segment of length L:
//
//	exp(beta*u) * Z(x-0.5) * Z(L-x-0.5) / Z(L)
//
// Positions outside that range are not rejected; the sub-segment that
// becomes negative contributes Z = 1.
func R1(L, u, x, beta float64) (float64, error) {
	if err := checkLength(x); err != nil {
		return 0, err
	}
	lz, err := logZs(u, beta, L, x-0.5, L-x-0.5)
	if err != nil {
		return 0, err
	}
	return math.Exp(beta*u + lz[1] + lz[2] - lz[0]), nil
}

// R1Profile evaluates R1 at each position in xs.
func R1Profile(L, u, beta float64, xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		r, err := R1(L, u, x, beta)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// R2 is the density of finding a particle at x2 given one at x1, with
// x1 <= x2 <= L-0.5:
//
//	exp(2*beta*u) * Z(x1-0.5) * Z(x2-x1-1) * Z(L-x2-0.5) / Z(L)
func R2(L, u, x1, x2, beta float64) (float64, error) {
	if err := checkLength(x1); err != nil {
		return 0, err
	}
	if err := checkLength(x2); err != nil {
		return 0, err
	}
	if x1 > x2 {
		return 0, invalid("x1 = %g is past x2 = %g", x1, x2)
	}
	lz, err := logZs(u, beta, L, x1-0.5, x2-x1-1, L-x2-0.5)
	if err != nil {
		return 0, err
	}
	return math.Exp(2*beta*u + lz[1] + lz[2] + lz[3] - lz[0]), nil
}

func logZs(u, beta float64, ls ...float64) ([]float64, error) {
	out := make([]float64, len(ls))
	for i, l := range ls {
		lz, err := LogZ(l, u, beta)
		if err != nil {
			return nil, err
		}
		out[i] = lz
	}
	return out, nil
}
