package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/tonksim/internal/kmc"
	"github.com/san-kum/tonksim/internal/sim"
)

type Config struct {
	Name     string
	Params   kmc.Parameters
	Duration float64
	Seed     int64
	MaxSteps int
}

type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds an empty lattice and its transitions and attaches the
// plugins and metrics.
func (e *Experiment) Setup(plugins []sim.Plugin, metrics []sim.Metric) error {
	p := e.cfg.Params
	l, err := kmc.NewLattice(p.Size, p.Boundary)
	if err != nil {
		return err
	}
	ts, err := kmc.Transitions(l, p)
	if err != nil {
		return err
	}
	m, err := kmc.NewManager(l, ts)
	if err != nil {
		return err
	}

	e.simulator = sim.New(l, m)
	for _, pl := range plugins {
		e.simulator.AddPlugin(pl)
	}
	for _, mt := range metrics {
		e.simulator.AddMetric(mt)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg := sim.Config{
		Duration: e.cfg.Duration,
		Seed:     e.cfg.Seed,
		MaxSteps: e.cfg.MaxSteps,
	}

	return e.simulator.Run(ctx, simCfg)
}

// GetSimulator returns the underlying simulator for adding plugins
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Config() Config { return e.cfg }
