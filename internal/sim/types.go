package sim

import "github.com/san-kum/tonksim/internal/kmc"

// Plugin observes the lattice as a run advances. Process is called with
// the time from which the current configuration holds, once before every
// move and once more at the end of the run.
type Plugin interface {
	Boot(l *kmc.Lattice) error
	Process(t float64) error
	Close() error
}

// Metric accumulates a scalar over a run. Observe is called for each
// interval of length dt during which l is unchanged.
type Metric interface {
	Name() string
	Observe(l *kmc.Lattice, t, dt float64)
	Value() float64
	Reset()
}

type Config struct {
	Duration float64
	Seed     int64
	// MaxSteps stops the run early when positive.
	MaxSteps int
}

type Result struct {
	Steps   int
	Time    float64
	Events  map[kmc.Kind]int
	Metrics map[string]float64
}
