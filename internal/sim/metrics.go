package sim

import "github.com/san-kum/tonksim/internal/kmc"

// MeanObjects is the time-averaged number of rods.
type MeanObjects struct {
	area, time float64
}

func NewMeanObjects() *MeanObjects { return &MeanObjects{} }

func (m *MeanObjects) Name() string { return "mean_objects" }

func (m *MeanObjects) Observe(l *kmc.Lattice, t, dt float64) {
	m.area += float64(l.Objects()) * dt
	m.time += dt
}

func (m *MeanObjects) Value() float64 {
	if m.time == 0 {
		return 0
	}
	return m.area / m.time
}

func (m *MeanObjects) Reset() { m.area, m.time = 0, 0 }

// Coverage is the time-averaged fraction of sites covered by a rod.
type Coverage struct {
	area, time float64
}

func NewCoverage() *Coverage { return &Coverage{} }

func (c *Coverage) Name() string { return "coverage" }

func (c *Coverage) Observe(l *kmc.Lattice, t, dt float64) {
	c.area += float64(l.Covered()) / float64(l.Size()) * dt
	c.time += dt
}

func (c *Coverage) Value() float64 {
	if c.time == 0 {
		return 0
	}
	return c.area / c.time
}

func (c *Coverage) Reset() { c.area, c.time = 0, 0 }

// DefaultMetrics returns a fresh set of the metrics every run reports.
func DefaultMetrics() []Metric {
	return []Metric{NewMeanObjects(), NewCoverage()}
}
