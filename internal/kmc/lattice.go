package kmc

import "fmt"

// State is the occupancy of a single site.
type State uint8

const (
	Empty State = iota
	Head
	Steric

	numStates = 3
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Head:
		return "head"
	case Steric:
		return "steric"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Boundary selects what happens to a rod footprint at the lattice ends.
type Boundary int

const (
	// Fixed lattices reject footprints that run past either end.
	Fixed Boundary = iota
	// Periodic lattices wrap footprints around to site 0.
	Periodic
)

func (b Boundary) String() string {
	if b == Periodic {
		return "periodic"
	}
	return "fixed"
}

// ParseBoundary accepts "fixed" or "periodic".
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "fixed", "":
		return Fixed, nil
	case "periodic":
		return Periodic, nil
	}
	return Fixed, fmt.Errorf("%w: unknown boundary %q", ErrInvalidParameters, s)
}

// Lattice is a row of sites.
type Lattice struct {
	sites    []State
	boundary Boundary
	objects  int
}

// NewLattice returns an empty lattice of size sites.
func NewLattice(size int, b Boundary) (*Lattice, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: lattice size %d must be positive", ErrInvalidParameters, size)
	}
	return &Lattice{sites: make([]State, size), boundary: b}, nil
}

func (l *Lattice) Size() int          { return len(l.sites) }
func (l *Lattice) Boundary() Boundary { return l.boundary }

// Objects is the number of rods on the lattice.
func (l *Lattice) Objects() int { return l.objects }

// Get returns the state of site i.
func (l *Lattice) Get(i int) State { return l.sites[i] }

func (l *Lattice) set(i int, s State) {
	prev := l.sites[i]
	if prev == Head {
		l.objects--
	}
	if s == Head {
		l.objects++
	}
	l.sites[i] = s
}

// Positions returns the head site of every rod in increasing order.
func (l *Lattice) Positions() []int {
	pos := make([]int, 0, l.objects)
	for i, s := range l.sites {
		if s == Head {
			pos = append(pos, i)
		}
	}
	return pos
}

// Covered is the number of sites a rod occupies.
func (l *Lattice) Covered() int {
	n := 0
	for _, s := range l.sites {
		if s != Empty {
			n++
		}
	}
	return n
}

// footprint returns the w sites starting at pos, or false if they do not
// fit on a fixed lattice.
func (l *Lattice) footprint(pos, w int) ([]int, bool) {
	n := len(l.sites)
	if l.boundary == Fixed && (pos < 0 || pos+w > n) {
		return nil, false
	}
	sites := make([]int, w)
	for j := range sites {
		sites[j] = ((pos+j)%n + n) % n
	}
	return sites, true
}
