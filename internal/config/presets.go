package config

import "sort"

// Presets are named bath regimes for a nucleosome-sized segment.
var Presets = map[string]*Config{
	"dilute": {
		Length: 147, U: -4, Beta: 1, Distance: 1, HoleSize: DefaultHoleSize,
		Sweep:      SweepConfig{UMin: -8, UMax: 0, Steps: 33},
		Simulation: defaultSimulation,
	},
	"crowded": {
		Length: 147, U: 3, Beta: 1, Distance: 1, HoleSize: DefaultHoleSize,
		Sweep:      SweepConfig{UMin: 0, UMax: 8, Steps: 33},
		Simulation: defaultSimulation,
	},
	"bistable": {
		Length: 2.5, U: 0.4, Beta: 1, Distance: 0.5, HoleSize: 1,
		Lengths:    []float64{1.5, 2.5, 3.5},
		Sweep:      SweepConfig{UMin: -3, UMax: 3, Steps: 61},
		Simulation: defaultSimulation,
	},
	"packed": {
		Length: 20.5, U: 25, Beta: 1, Distance: 0, HoleSize: 1,
		Sweep:      SweepConfig{UMin: 10, UMax: 40, Steps: 31},
		Simulation: defaultSimulation,
	},
	"cold": {
		Length: 50, U: 0.5, Beta: 4, Distance: 1, HoleSize: DefaultHoleSize,
		Sweep:      SweepConfig{UMin: -2, UMax: 2, Steps: 41},
		Simulation: defaultSimulation,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	c.Lengths = append([]float64(nil), p.Lengths...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
