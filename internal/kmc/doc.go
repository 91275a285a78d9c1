// Package kmc implements kinetic Monte Carlo for hard rods on a
// one-dimensional lattice.
//
// A rod of width w occupies w consecutive sites: its first site is the
// Head and the rest are Steric. Rods adsorb onto empty stretches, desorb
// and slide by a fixed step. Desorption and sliding are weighted by a
// per-site potential V so that, in equilibrium, a rod sits at position i
// with weight exp(-beta*V[i]):
//
//	adsorption  k_on
//	desorption  k_off * exp(beta*V[i])
//	slide i->j  D * exp(beta*(V[i]-V[j])/2)
//
// The Manager keeps the set of enabled transitions current after each move
// and selects one with probability proportional to its rate, which is the
// selection step of the Gillespie algorithm. The time loop lives in package
// sim.
package kmc
