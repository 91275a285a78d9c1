package tonks

import (
	"math"
	"math/big"

	"golang.org/x/exp/constraints"
)

// Number is any built-in integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// maxFactorial is the largest n whose factorial fits in a float64.
const maxFactorial = 170

// Heaviside returns 1 if x >= 0 and 0 otherwise, in the type of x.
func Heaviside[T Number](x T) T {
	if x >= 0 {
		return 1
	}
	return 0
}

// HeavisideVec applies Heaviside to every element of xs.
func HeavisideVec[T Number](xs []T) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[i] = Heaviside(x)
	}
	return out
}

// Factorial returns n! as a float64. Entries <= 0 are treated as 1, so the
// result is never below 1. Above 170! the result is +Inf; use LogFactorial
// or BigFactorial there.
func Factorial(n int) float64 {
	if n > maxFactorial {
		return math.Inf(1)
	}
	f := 1.0
	for k := 2; k <= n; k++ {
		f *= float64(k)
	}
	return f
}

// FactorialVec returns a new slice holding Factorial of each element of ns.
// ns is not modified.
func FactorialVec(ns []int) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = Factorial(n)
	}
	return out
}

// LogFactorial returns ln(n!), with the same <= 0 guard as Factorial.
func LogFactorial(n int) float64 {
	if n <= 1 {
		return 0
	}
	lg, _ := math.Lgamma(float64(n) + 1)
	return lg
}

// BigFactorial returns n! exactly. Entries <= 0 give 1.
func BigFactorial(n int) *big.Int {
	if n <= 1 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, int64(n))
}

// Nmax is the largest number of unit rods that fit on a segment of length
// L, floor(L). A negative length gives -1, an empty range.
func Nmax(L float64) int {
	if L < 0 {
		return -1
	}
	return int(math.Floor(L))
}
