package kmc

import (
	"fmt"
	"math"
)

// Parameters describe the lattice, the rod species and its kinetics.
type Parameters struct {
	Size     int
	Boundary Boundary
	Width    int

	Adsorption float64
	Desorption float64
	Diffusion  float64
	Step       int

	Beta float64
	// Potential holds V per site. Nil means a flat landscape at zero.
	Potential []float64
}

// Validate reports the first parameter that cannot be simulated.
func (p Parameters) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("%w: lattice size %d must be positive", ErrInvalidParameters, p.Size)
	}
	if p.Width < 1 {
		return fmt.Errorf("%w: width %d must be at least 1", ErrInvalidParameters, p.Width)
	}
	if p.Width > p.Size {
		return fmt.Errorf("%w: width %d exceeds lattice size %d", ErrInvalidParameters, p.Width, p.Size)
	}
	for name, k := range map[string]float64{"adsorption": p.Adsorption, "desorption": p.Desorption, "diffusion": p.Diffusion} {
		if k < 0 || math.IsNaN(k) || math.IsInf(k, 0) {
			return fmt.Errorf("%w: %s rate %v", ErrInvalidParameters, name, k)
		}
	}
	if p.Diffusion > 0 {
		if p.Step < 1 {
			return fmt.Errorf("%w: slide step %d must be at least 1", ErrInvalidParameters, p.Step)
		}
		if p.Boundary == Periodic && p.Width+p.Step > p.Size {
			return fmt.Errorf("%w: width %d plus step %d does not fit a ring of %d sites", ErrInvalidParameters, p.Width, p.Step, p.Size)
		}
	}
	if !(p.Beta > 0) || math.IsInf(p.Beta, 1) {
		return fmt.Errorf("%w: beta %v must be positive", ErrInvalidParameters, p.Beta)
	}
	if p.Potential != nil && len(p.Potential) != p.Size {
		return fmt.Errorf("%w: potential has %d sites, lattice has %d", ErrInvalidParameters, len(p.Potential), p.Size)
	}
	for i, v := range p.Potential {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: potential at site %d is %v", ErrInvalidParameters, i, v)
		}
	}
	return nil
}

// ChemicalPotential is the bath chemical potential u that the adsorption
// and desorption rates imply, ln(k_on/k_off)/beta. It is the u to compare
// against the grand-canonical rod model.
func (p Parameters) ChemicalPotential() float64 {
	return math.Log(p.Adsorption/p.Desorption) / p.Beta
}

func (p Parameters) potential(i int) float64 {
	if p.Potential == nil {
		return 0
	}
	return p.Potential[i]
}
