package kmc

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func build(t *testing.T, p Parameters) (*Lattice, *Manager) {
	t.Helper()
	l, err := NewLattice(p.Size, p.Boundary)
	if err != nil {
		t.Fatal(err)
	}
	ts, err := Transitions(l, p)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewManager(l, ts)
	if err != nil {
		t.Fatal(err)
	}
	return l, m
}

func find(t *testing.T, m *Manager, kind Kind, from, to int) int {
	t.Helper()
	for i := 0; i < m.Len(); i++ {
		tr := m.Transition(i)
		if tr.Kind == kind && tr.From == from && tr.To == to {
			return i
		}
	}
	t.Fatalf("no %s transition %d->%d", kind, from, to)
	return -1
}

func TestParseBoundary(t *testing.T) {
	tests := []struct {
		in   string
		want Boundary
		ok   bool
	}{
		{"fixed", Fixed, true},
		{"", Fixed, true},
		{"periodic", Periodic, true},
		{"open", Fixed, false},
	}
	for _, tt := range tests {
		got, err := ParseBoundary(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseBoundary(%q): unexpected error %v", tt.in, err)
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseBoundary(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestValidate(t *testing.T) {
	base := Parameters{Size: 20, Width: 3, Adsorption: 1, Desorption: 1, Diffusion: 1, Step: 1, Beta: 1}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid parameters, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *Parameters)
	}{
		{"zero size", func(p *Parameters) { p.Size = 0 }},
		{"zero width", func(p *Parameters) { p.Width = 0 }},
		{"wide rod", func(p *Parameters) { p.Width = 21 }},
		{"negative rate", func(p *Parameters) { p.Desorption = -1 }},
		{"NaN rate", func(p *Parameters) { p.Adsorption = math.NaN() }},
		{"zero step", func(p *Parameters) { p.Step = 0 }},
		{"zero beta", func(p *Parameters) { p.Beta = 0 }},
		{"short potential", func(p *Parameters) { p.Potential = make([]float64, 19) }},
		{"infinite potential", func(p *Parameters) {
			p.Potential = make([]float64, 20)
			p.Potential[4] = math.Inf(1)
		}},
		{"crowded ring", func(p *Parameters) {
			p.Boundary = Periodic
			p.Width = 20
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}

func TestTransitionCounts(t *testing.T) {
	p := Parameters{Size: 10, Width: 3, Adsorption: 1, Desorption: 1, Diffusion: 1, Step: 1, Beta: 1}
	l, _ := NewLattice(10, Fixed)
	ts, err := Transitions(l, p)
	if err != nil {
		t.Fatal(err)
	}
	// 8 head positions, 7 slides each way
	if len(ts) != 30 {
		t.Errorf("fixed: expected 30 transitions, got %d", len(ts))
	}

	p.Boundary = Periodic
	ring, _ := NewLattice(10, Periodic)
	ts, err = Transitions(ring, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 40 {
		t.Errorf("periodic: expected 40 transitions, got %d", len(ts))
	}

	if _, err := Transitions(ring, Parameters{Size: 10, Width: 3, Beta: 1}); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected boundary mismatch error, got %v", err)
	}
}

func TestRatesFollowPotential(t *testing.T) {
	v := []float64{0, -2, 1, 0, 0}
	p := Parameters{Size: 5, Width: 1, Adsorption: 3, Desorption: 0.5, Diffusion: 2, Step: 1, Beta: 0.7, Potential: v}
	_, m := build(t, p)

	if r := m.Transition(find(t, m, Adsorption, -1, 1)).Rate; r != 3 {
		t.Errorf("adsorption: expected 3, got %g", r)
	}
	if r, want := m.Transition(find(t, m, Desorption, 1, -1)).Rate, 0.5*math.Exp(0.7*-2); math.Abs(r-want) > 1e-15 {
		t.Errorf("desorption: expected %g, got %g", want, r)
	}
	fwd := m.Transition(find(t, m, Slide, 1, 2)).Rate
	back := m.Transition(find(t, m, Slide, 2, 1)).Rate
	if want := 2 * math.Exp(0.7*(-2-1)/2); math.Abs(fwd-want) > 1e-15 {
		t.Errorf("slide 1->2: expected %g, got %g", want, fwd)
	}
	// detailed balance against exp(-beta*V)
	if got, want := fwd/back, math.Exp(-0.7*(1-(-2))); math.Abs(got-want) > 1e-12 {
		t.Errorf("slide ratio: expected %g, got %g", want, got)
	}
}

func TestManagerSelect(t *testing.T) {
	p := Parameters{Size: 3, Width: 1, Adsorption: 1, Desorption: 2, Beta: 1}
	l, m := build(t, p)

	if got := m.RateTotal(); got != 3 {
		t.Fatalf("expected total 3 on an empty lattice, got %g", got)
	}
	i, err := m.Select(0)
	if err != nil {
		t.Fatal(err)
	}
	if tr := m.Transition(i); tr.Kind != Adsorption || tr.To != 0 {
		t.Errorf("Select(0): expected adsorption at 0, got %v", tr)
	}

	tr, err := m.Move(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Kind != Adsorption || tr.To != 1 {
		t.Errorf("Move(0.5): expected adsorption at 1, got %v", tr)
	}
	if l.Objects() != 1 || l.Get(1) != Head {
		t.Errorf("expected one rod at site 1, got %v", l.Positions())
	}
	if got := m.RateTotal(); got != 4 {
		t.Errorf("expected total 4 after adsorption, got %g", got)
	}

	i, err = m.Select(0.9999999)
	if err != nil {
		t.Fatal(err)
	}
	if tr := m.Transition(i); tr.Kind != Adsorption || tr.To != 2 {
		t.Errorf("expected the last enabled transition, got %v", tr)
	}
}

func TestManagerNoTransition(t *testing.T) {
	_, m := build(t, Parameters{Size: 4, Width: 2, Beta: 1})
	if _, err := m.Move(0.3); !errors.Is(err, ErrNoTransition) {
		t.Errorf("expected ErrNoTransition, got %v", err)
	}
}

func TestSlideMovesRod(t *testing.T) {
	p := Parameters{Size: 6, Width: 2, Adsorption: 1, Desorption: 1, Diffusion: 1, Step: 1, Beta: 1}
	l, m := build(t, p)

	m.Fire(find(t, m, Adsorption, -1, 0))
	m.Fire(find(t, m, Slide, 0, 1))

	want := []State{Empty, Head, Steric, Empty, Empty, Empty}
	for i, s := range want {
		if l.Get(i) != s {
			t.Errorf("site %d: expected %v, got %v", i, s, l.Get(i))
		}
	}
	// adsorption at 3 and 4, desorption at 1, slides to 0 and 2
	if got := m.Enabled(); got != 5 {
		t.Errorf("expected 5 enabled transitions, got %d", got)
	}

	m.Fire(find(t, m, Slide, 1, 0))
	if pos := l.Positions(); len(pos) != 1 || pos[0] != 0 || l.Get(1) != Steric || l.Get(2) != Empty {
		t.Errorf("expected rod back at 0, got %v", pos)
	}
}

func TestPeriodicFootprintWraps(t *testing.T) {
	p := Parameters{Size: 5, Boundary: Periodic, Width: 2, Adsorption: 1, Desorption: 1, Diffusion: 1, Step: 1, Beta: 1}
	l, m := build(t, p)

	m.Fire(find(t, m, Adsorption, -1, 4))
	if l.Get(4) != Head || l.Get(0) != Steric {
		t.Fatalf("expected rod over sites 4 and 0, got %v %v", l.Get(4), l.Get(0))
	}
	if l.Covered() != 2 {
		t.Errorf("expected 2 covered sites, got %d", l.Covered())
	}
	m.Fire(find(t, m, Slide, 4, 0))
	if l.Get(0) != Head || l.Get(1) != Steric || l.Get(4) != Empty {
		t.Errorf("expected rod over sites 0 and 1 after wrapping slide")
	}
}

// checkLattice verifies every head is followed by width-1 steric sites and
// that the manager's enabled set matches a full re-evaluation.
func checkLattice(t *testing.T, l *Lattice, m *Manager, width int) {
	t.Helper()
	covered := make([]bool, l.Size())
	for _, pos := range l.Positions() {
		fp, ok := l.footprint(pos, width)
		if !ok {
			t.Fatalf("rod at %d runs off the lattice", pos)
		}
		for j, s := range fp {
			if covered[s] {
				t.Fatalf("site %d covered twice", s)
			}
			covered[s] = true
			if j > 0 && l.Get(s) != Steric {
				t.Fatalf("site %d of rod at %d is %v", s, pos, l.Get(s))
			}
		}
	}
	for i := 0; i < l.Size(); i++ {
		if !covered[i] && l.Get(i) != Empty {
			t.Fatalf("orphan %v at site %d", l.Get(i), i)
		}
	}
	for i := 0; i < m.Len(); i++ {
		if m.enabled[i] != m.Transition(i).Allowed(l) {
			t.Fatalf("transition %v: enabled=%v but allowed=%v", m.Transition(i), m.enabled[i], !m.enabled[i])
		}
	}
}

func TestRandomMovesKeepLatticeConsistent(t *testing.T) {
	for _, b := range []Boundary{Fixed, Periodic} {
		p := Parameters{Size: 30, Boundary: b, Width: 4, Adsorption: 2, Desorption: 1, Diffusion: 3, Step: 2, Beta: 1}
		l, m := build(t, p)
		rng := rand.New(rand.NewSource(7))
		for step := 0; step < 2000; step++ {
			if _, err := m.Move(rng.Float64()); err != nil {
				t.Fatal(err)
			}
			checkLattice(t, l, m, p.Width)
		}
		if l.Objects() == 0 {
			t.Errorf("%v: expected rods on the lattice after 2000 moves", b)
		}
	}
}

func TestChemicalPotential(t *testing.T) {
	p := Parameters{Adsorption: math.E, Desorption: 1, Beta: 2}
	if got := p.ChemicalPotential(); math.Abs(got-0.5) > 1e-15 {
		t.Errorf("expected 0.5, got %g", got)
	}
}
