package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLength   = 147.0
	DefaultU        = 0.0
	DefaultBeta     = 1.0
	DefaultUMin     = -5.0
	DefaultUMax     = 5.0
	DefaultSteps    = 41
	DefaultHoleSize = 147
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Length   float64     `yaml:"length"`
	U        float64     `yaml:"u"`
	Beta     float64     `yaml:"beta"`
	Lengths  []float64   `yaml:"lengths"`
	Sweep    SweepConfig `yaml:"sweep"`
	Distance float64     `yaml:"distance"`
	HoleSize int         `yaml:"hole_size"`
	Output   string      `yaml:"output"`

	Simulation SimulationConfig `yaml:"simulation"`
}

// SimulationConfig sets up a kinetic Monte Carlo run. Beta is shared with
// the analytic model.
type SimulationConfig struct {
	Experiment     string  `yaml:"experiment,omitempty"`
	Lattice        int     `yaml:"lattice"`
	Boundary       string  `yaml:"boundary"`
	Width          int     `yaml:"width"`
	KOn            float64 `yaml:"k_on"`
	KOff           float64 `yaml:"k_off"`
	Diffusion      float64 `yaml:"diffusion"`
	Step           int     `yaml:"step"`
	Potential      string  `yaml:"potential,omitempty"`
	Duration       float64 `yaml:"duration"`
	Seed           int64   `yaml:"seed"`
	MaxSteps       int     `yaml:"max_steps,omitempty"`
	StatusInterval int     `yaml:"status_interval,omitempty"`
}

var defaultSimulation = SimulationConfig{
	Lattice:   1000,
	Boundary:  "fixed",
	Width:     147,
	KOn:       1,
	KOff:      1,
	Diffusion: 1,
	Step:      1,
	Duration:  100,
	Seed:      1,
}

type SweepConfig struct {
	UMin  float64 `yaml:"u_min"`
	UMax  float64 `yaml:"u_max"`
	Steps int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Length:   DefaultLength,
		U:        DefaultU,
		Beta:     DefaultBeta,
		Distance: 1.0,
		HoleSize: DefaultHoleSize,
		Sweep: SweepConfig{
			UMin:  DefaultUMin,
			UMax:  DefaultUMax,
			Steps: DefaultSteps,
		},
		Simulation: defaultSimulation,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Length < 0 {
		return fmt.Errorf("%w: length %g is negative", ErrInvalidConfig, c.Length)
	}
	for _, l := range c.Lengths {
		if l < 0 {
			return fmt.Errorf("%w: length %g is negative", ErrInvalidConfig, l)
		}
	}
	if c.Beta <= 0 {
		return fmt.Errorf("%w: beta %g must be positive", ErrInvalidConfig, c.Beta)
	}
	if c.Sweep.Steps < 2 {
		return fmt.Errorf("%w: sweep needs at least 2 steps, got %d", ErrInvalidConfig, c.Sweep.Steps)
	}
	if c.Sweep.UMax <= c.Sweep.UMin {
		return fmt.Errorf("%w: sweep range [%g, %g] is empty", ErrInvalidConfig, c.Sweep.UMin, c.Sweep.UMax)
	}
	if c.Distance < 0 {
		return fmt.Errorf("%w: distance %g is negative", ErrInvalidConfig, c.Distance)
	}
	if c.HoleSize < 0 {
		return fmt.Errorf("%w: hole size %d is negative", ErrInvalidConfig, c.HoleSize)
	}
	return c.Simulation.validate()
}

func (s *SimulationConfig) validate() error {
	if s.Lattice <= 0 {
		return fmt.Errorf("%w: simulation lattice %d must be positive", ErrInvalidConfig, s.Lattice)
	}
	if s.Boundary != "fixed" && s.Boundary != "periodic" {
		return fmt.Errorf("%w: boundary %q is neither fixed nor periodic", ErrInvalidConfig, s.Boundary)
	}
	if s.Width < 1 {
		return fmt.Errorf("%w: width %d must be at least 1", ErrInvalidConfig, s.Width)
	}
	if s.KOn < 0 || s.KOff < 0 || s.Diffusion < 0 {
		return fmt.Errorf("%w: rates must not be negative", ErrInvalidConfig)
	}
	if s.Step < 1 {
		return fmt.Errorf("%w: slide step %d must be at least 1", ErrInvalidConfig, s.Step)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%w: duration %g must be positive", ErrInvalidConfig, s.Duration)
	}
	if s.MaxSteps < 0 || s.StatusInterval < 0 {
		return fmt.Errorf("%w: step limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

// SweepLengths returns the lengths to sweep: Lengths when set, else Length.
func (c *Config) SweepLengths() []float64 {
	if len(c.Lengths) > 0 {
		return c.Lengths
	}
	return []float64{c.Length}
}

// Potentials returns Steps evenly spaced chemical potentials from UMin to UMax.
func (c *Config) Potentials() []float64 {
	us := make([]float64, c.Sweep.Steps)
	step := (c.Sweep.UMax - c.Sweep.UMin) / float64(c.Sweep.Steps-1)
	for i := range us {
		us[i] = c.Sweep.UMin + float64(i)*step
	}
	us[len(us)-1] = c.Sweep.UMax
	return us
}
