// Package tonks implements closed-form statistical mechanics of a 1-D
// hard-rod (Tonks) gas: unit-length rods that cannot overlap, placed on a
// line segment of length L in contact with a particle bath at chemical
// potential u and inverse temperature beta.
//
// The package is organised leaves first:
//
//   - [Heaviside], [Factorial]: combinatorics primitives
//   - [Q], [Z]: canonical and grand-canonical partition functions
//   - [Pn], [Nmean], [Density], [Entropy], [Bistability]: occupation statistics
//   - [R1], [R2]: one- and two-particle position densities
//   - [Prn], [Pr], [Rmean], [Hn], [H]: nearest-neighbour gap and hole statistics
//
// Every function that takes a length has a Vec sibling that evaluates the
// same formula independently for each element of a []float64.
//
// # Numerics
//
// Partition sums run over N = 0..floor(L) inclusive and are accumulated in
// log space, so [LogZ] and everything derived from it stays finite well past
// L = 10000. [Z] itself returns [ErrNumericOverflow] when exp(LogZ) does not
// fit in a float64.
//
// # Boundary convention
//
// The partition function of a negative length is 1 (only the empty
// configuration contributes). [R1] and [R2] rely on this outside
// 0.5 <= x <= L-0.5.
//
// # Example
//
//	m := tonks.New(-1.5)
//	p, _ := m.PnDist(20)
//	rho, _ := m.Density(20)
package tonks
