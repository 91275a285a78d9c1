package kmc

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Manager tracks which transitions are enabled on a lattice and picks one
// with probability proportional to its rate.
type Manager struct {
	lattice     *Lattice
	transitions []*Transition
	enabled     []bool
	rates       []float64
	cumulative  []float64
	stale       bool

	// dependents[site*numStates+state] lists the transitions with a
	// condition on that site and state.
	dependents [][]int
}

// NewManager indexes ts against l and enables those whose conditions hold.
func NewManager(l *Lattice, ts []*Transition) (*Manager, error) {
	m := &Manager{
		lattice:     l,
		transitions: ts,
		enabled:     make([]bool, len(ts)),
		rates:       make([]float64, len(ts)),
		cumulative:  make([]float64, len(ts)),
		dependents:  make([][]int, l.Size()*numStates),
		stale:       true,
	}
	for i, t := range ts {
		if t.Rate < 0 {
			return nil, fmt.Errorf("%w: transition %v has a negative rate", ErrInvalidParameters, t)
		}
		for _, c := range t.Conditions {
			if c.Site < 0 || c.Site >= l.Size() {
				return nil, fmt.Errorf("%w: transition %v conditions site %d outside the lattice", ErrInvalidParameters, t, c.Site)
			}
			k := key(c.Site, c.State)
			m.dependents[k] = append(m.dependents[k], i)
		}
		for _, a := range t.Actions {
			if a.Site < 0 || a.Site >= l.Size() {
				return nil, fmt.Errorf("%w: transition %v acts on site %d outside the lattice", ErrInvalidParameters, t, a.Site)
			}
		}
		m.refresh(i)
	}
	return m, nil
}

func key(site int, s State) int { return site*numStates + int(s) }

func (m *Manager) refresh(i int) {
	on := m.transitions[i].Allowed(m.lattice)
	if on == m.enabled[i] {
		return
	}
	m.enabled[i] = on
	if on {
		m.rates[i] = m.transitions[i].Rate
	} else {
		m.rates[i] = 0
	}
	m.stale = true
}

func (m *Manager) accumulate() {
	if !m.stale {
		return
	}
	if len(m.rates) > 0 {
		floats.CumSum(m.cumulative, m.rates)
	}
	m.stale = false
}

// RateTotal is the sum of the rates of the enabled transitions.
func (m *Manager) RateTotal() float64 {
	m.accumulate()
	if len(m.cumulative) == 0 {
		return 0
	}
	return m.cumulative[len(m.cumulative)-1]
}

// Enabled returns the number of transitions that may currently fire.
func (m *Manager) Enabled() int {
	n := 0
	for _, on := range m.enabled {
		if on {
			n++
		}
	}
	return n
}

// Select returns the index of the transition at fraction r in [0, 1) of the
// cumulative rate. Disabled transitions are never selected.
func (m *Manager) Select(r float64) (int, error) {
	total := m.RateTotal()
	if total <= 0 {
		return -1, ErrNoTransition
	}
	target := r * total
	i := sort.Search(len(m.cumulative), func(i int) bool { return m.cumulative[i] > target })
	if i == len(m.cumulative) {
		// rounding put target at the total; take the last enabled move.
		i = len(m.rates) - 1
		for m.rates[i] == 0 {
			i--
		}
	}
	return i, nil
}

// Fire applies transition i and refreshes every transition whose
// conditions read a site it changed.
func (m *Manager) Fire(i int) {
	t := m.transitions[i]
	var touched []int
	for _, a := range t.Actions {
		prev := m.lattice.Get(a.Site)
		if prev == a.State {
			continue
		}
		m.lattice.set(a.Site, a.State)
		for _, j := range m.dependents[key(a.Site, prev)] {
			m.refresh(j)
		}
		touched = append(touched, key(a.Site, a.State))
	}
	for _, k := range touched {
		for _, j := range m.dependents[k] {
			m.refresh(j)
		}
	}
}

// Move selects the transition at fraction r of the total rate and fires it.
func (m *Manager) Move(r float64) (*Transition, error) {
	i, err := m.Select(r)
	if err != nil {
		return nil, err
	}
	m.Fire(i)
	return m.transitions[i], nil
}

// Transition returns transition i.
func (m *Manager) Transition(i int) *Transition { return m.transitions[i] }

// Len is the number of transitions, enabled or not.
func (m *Manager) Len() int { return len(m.transitions) }
