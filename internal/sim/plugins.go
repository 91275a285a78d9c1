package sim

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/tonksim/internal/kmc"
	"github.com/san-kum/tonksim/internal/trajectory"
)

// NObjects writes "time<TAB>count" for every processed time under a
// "# name" header.
type NObjects struct {
	name    string
	w       *bufio.Writer
	lattice *kmc.Lattice
}

func NewNObjects(w io.Writer, name string) *NObjects {
	return &NObjects{name: name, w: bufio.NewWriter(w)}
}

func (n *NObjects) Boot(l *kmc.Lattice) error {
	n.lattice = l
	_, err := fmt.Fprintf(n.w, "# %s\n", n.name)
	return err
}

func (n *NObjects) Process(t float64) error {
	_, err := fmt.Fprintf(n.w, "%g\t%d\n", t, n.lattice.Objects())
	return err
}

func (n *NObjects) Close() error { return n.w.Flush() }

// Trajectory writes one frame per processed time in the format read by
// trajectory.ReadFrames.
type Trajectory struct {
	w       *bufio.Writer
	lattice *kmc.Lattice
}

func NewTrajectory(w io.Writer) *Trajectory {
	return &Trajectory{w: bufio.NewWriter(w)}
}

func (tr *Trajectory) Boot(l *kmc.Lattice) error {
	tr.lattice = l
	return nil
}

func (tr *Trajectory) Process(t float64) error {
	return trajectory.WriteFrame(tr.w, trajectory.Frame{Time: t, Positions: tr.lattice.Positions()})
}

func (tr *Trajectory) Close() error { return tr.w.Flush() }

// Distribution accumulates, per site, the fraction of time a rod is headed
// there. It writes "site<TAB>probability" rows on Close.
type Distribution struct {
	w       io.Writer
	lattice *kmc.Lattice
	weight  []float64
	heads   []int
	last    float64
}

func NewDistribution(w io.Writer) *Distribution {
	return &Distribution{w: w}
}

func (d *Distribution) Boot(l *kmc.Lattice) error {
	d.lattice = l
	d.weight = make([]float64, l.Size())
	d.heads = l.Positions()
	d.last = 0
	return nil
}

func (d *Distribution) Process(t float64) error {
	for _, p := range d.heads {
		d.weight[p] += t - d.last
	}
	d.heads = d.lattice.Positions()
	d.last = t
	return nil
}

// Probabilities returns the head occupancy per site over the time
// processed so far.
func (d *Distribution) Probabilities() []float64 {
	p := make([]float64, len(d.weight))
	if d.last == 0 {
		return p
	}
	for i, w := range d.weight {
		p[i] = w / d.last
	}
	return p
}

func (d *Distribution) Close() error {
	if d.w == nil {
		return nil
	}
	if _, err := io.WriteString(d.w, "# Position\tProbability\n"); err != nil {
		return err
	}
	return trajectory.WriteIndexed(d.w, d.Probabilities())
}

// Status reports progress every interval steps and the step count on
// Close.
type Status struct {
	w        io.Writer
	interval int
	steps    int
	last     float64
}

func NewStatus(w io.Writer, interval int) *Status {
	return &Status{w: w, interval: interval}
}

func (s *Status) Boot(l *kmc.Lattice) error {
	s.steps = 0
	return nil
}

func (s *Status) Process(t float64) error {
	s.last = t
	if s.interval > 0 && s.steps%s.interval == 0 {
		if _, err := fmt.Fprintf(s.w, "t = %g (%d steps)\n", t, s.steps); err != nil {
			return err
		}
	}
	s.steps++
	return nil
}

func (s *Status) Close() error {
	// the final Process is not a step
	steps := s.steps - 1
	if steps < 0 {
		steps = 0
	}
	_, err := fmt.Fprintf(s.w, "t = %g: %d steps\n", s.last, steps)
	return err
}
