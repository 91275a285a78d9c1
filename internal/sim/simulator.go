package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/tonksim/internal/kmc"
)

type Simulator struct {
	lattice *kmc.Lattice
	manager *kmc.Manager
	metrics []Metric
	plugins []Plugin
}

func New(l *kmc.Lattice, m *kmc.Manager) *Simulator {
	return &Simulator{
		lattice: l,
		manager: m,
		metrics: make([]Metric, 0),
		plugins: make([]Plugin, 0),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddPlugin(p Plugin) { s.plugins = append(s.plugins, p) }

func (s *Simulator) Lattice() *kmc.Lattice { return s.lattice }

// Run advances the lattice with the Gillespie algorithm until cfg.Duration.
// Each step draws an exponential waiting time from the total rate, then
// fires a transition chosen in proportion to its rate. A lattice with no
// enabled transition stays frozen until the end of the run. Plugins are
// closed on every return path.
func (s *Simulator) Run(ctx context.Context, cfg Config) (result *Result, err error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result = &Result{
		Events:  make(map[kmc.Kind]int),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	for i, p := range s.plugins {
		if err := p.Boot(s.lattice); err != nil {
			s.closePlugins(s.plugins[:i])
			return nil, fmt.Errorf("boot plugin: %w", err)
		}
	}
	defer func() {
		if cerr := s.closePlugins(s.plugins); err == nil {
			err = cerr
		}
	}()

	rng := rand.New(rand.NewSource(cfg.Seed))
	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			result.Time = t
			return result, ctx.Err()
		default:
		}
		if cfg.MaxSteps > 0 && result.Steps >= cfg.MaxSteps {
			break
		}

		if err := s.process(t); err != nil {
			return result, err
		}

		total := s.manager.RateTotal()
		if total <= 0 {
			s.observe(t, cfg.Duration-t)
			t = cfg.Duration
			break
		}
		dt := -math.Log(1-rng.Float64()) / total
		if t+dt >= cfg.Duration {
			s.observe(t, cfg.Duration-t)
			t = cfg.Duration
			break
		}
		s.observe(t, dt)

		tr, err := s.manager.Move(rng.Float64())
		if err != nil {
			return result, fmt.Errorf("step %d at t=%g: %w", result.Steps, t, err)
		}
		result.Events[tr.Kind]++
		result.Steps++
		t += dt
	}

	if err := s.process(t); err != nil {
		return result, err
	}
	result.Time = t
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 1) {
		return fmt.Errorf("duration must be positive and finite, got %v", cfg.Duration)
	}
	if cfg.MaxSteps < 0 {
		return fmt.Errorf("max steps must not be negative, got %d", cfg.MaxSteps)
	}
	return nil
}

func (s *Simulator) process(t float64) error {
	for _, p := range s.plugins {
		if err := p.Process(t); err != nil {
			return fmt.Errorf("plugin at t=%g: %w", t, err)
		}
	}
	return nil
}

func (s *Simulator) observe(t, dt float64) {
	for _, m := range s.metrics {
		m.Observe(s.lattice, t, dt)
	}
}

func (s *Simulator) closePlugins(ps []Plugin) error {
	var first error
	for _, p := range ps {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
