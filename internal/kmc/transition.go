package kmc

import (
	"fmt"
	"math"
)

// Kind classifies a transition.
type Kind int

const (
	Adsorption Kind = iota
	Desorption
	Slide
)

func (k Kind) String() string {
	switch k {
	case Adsorption:
		return "adsorption"
	case Desorption:
		return "desorption"
	case Slide:
		return "slide"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Condition requires a site to be in a given state.
type Condition struct {
	Site  int
	State State
}

// Action puts a site into a given state.
type Action struct {
	Site  int
	State State
}

// Transition is a single move on the lattice. It is enabled while every
// condition holds.
type Transition struct {
	Kind Kind
	// From is the head site before the move and To the head site after it.
	// Adsorption has no From and desorption no To; both are -1 then.
	From, To   int
	Rate       float64
	Conditions []Condition
	Actions    []Action
}

func (t *Transition) String() string {
	return fmt.Sprintf("%s %d->%d rate=%g", t.Kind, t.From, t.To, t.Rate)
}

// Allowed reports whether every condition holds on l.
func (t *Transition) Allowed(l *Lattice) bool {
	for _, c := range t.Conditions {
		if l.Get(c.Site) != c.State {
			return false
		}
	}
	return true
}

// Transitions enumerates every adsorption, desorption and slide the
// parameters allow: one adsorption and one desorption per head position,
// and a slide by +Step and -Step from each position when Diffusion > 0.
func Transitions(l *Lattice, p Parameters) ([]*Transition, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if l.Size() != p.Size || l.Boundary() != p.Boundary {
		return nil, fmt.Errorf("%w: lattice is %d %s sites, parameters want %d %s", ErrInvalidParameters, l.Size(), l.Boundary(), p.Size, p.Boundary)
	}

	last := p.Size - p.Width
	if p.Boundary == Periodic {
		last = p.Size - 1
	}

	var ts []*Transition
	for pos := 0; pos <= last; pos++ {
		fp, _ := l.footprint(pos, p.Width)
		ts = append(ts, adsorb(fp, p.Adsorption), desorb(fp, p.Desorption*math.Exp(p.Beta*p.potential(pos))))
	}
	if p.Diffusion == 0 {
		return ts, nil
	}
	for pos := 0; pos <= last; pos++ {
		for _, d := range []int{p.Step, -p.Step} {
			if t := slide(l, p, pos, d); t != nil {
				ts = append(ts, t)
			}
		}
	}
	return ts, nil
}

func adsorb(fp []int, rate float64) *Transition {
	t := &Transition{Kind: Adsorption, From: -1, To: fp[0], Rate: rate}
	for _, s := range fp {
		t.Conditions = append(t.Conditions, Condition{s, Empty})
	}
	t.Actions = occupy(nil, fp)
	return t
}

func desorb(fp []int, rate float64) *Transition {
	t := &Transition{Kind: Desorption, From: fp[0], To: -1, Rate: rate}
	t.Conditions = []Condition{{fp[0], Head}}
	for _, s := range fp {
		t.Actions = append(t.Actions, Action{s, Empty})
	}
	return t
}

// slide moves the rod headed at pos by d sites. Sites the rod leaves are
// emptied and sites it enters must be empty beforehand.
func slide(l *Lattice, p Parameters, pos, d int) *Transition {
	from, _ := l.footprint(pos, p.Width)
	to, ok := l.footprint(pos+d, p.Width)
	if !ok {
		return nil
	}
	old := make(map[int]bool, len(from))
	for _, s := range from {
		old[s] = true
	}
	next := make(map[int]bool, len(to))
	for _, s := range to {
		next[s] = true
	}

	rate := p.Diffusion * math.Exp(p.Beta*(p.potential(pos)-p.potential(to[0]))/2)
	t := &Transition{Kind: Slide, From: pos, To: to[0], Rate: rate}
	t.Conditions = []Condition{{pos, Head}}
	for _, s := range to {
		if !old[s] {
			t.Conditions = append(t.Conditions, Condition{s, Empty})
		}
	}
	for _, s := range from {
		if !next[s] {
			t.Actions = append(t.Actions, Action{s, Empty})
		}
	}
	t.Actions = occupy(t.Actions, to)
	return t
}

// occupy appends the actions that place a rod on fp.
func occupy(actions []Action, fp []int) []Action {
	actions = append(actions, Action{fp[0], Head})
	for _, s := range fp[1:] {
		actions = append(actions, Action{s, Steric})
	}
	return actions
}
