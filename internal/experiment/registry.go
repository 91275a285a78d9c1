package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/tonksim/internal/kmc"
	"github.com/san-kum/tonksim/internal/landscape"
)

// NucleosomeWidth is the footprint of a nucleosome in base pairs.
const NucleosomeWidth = 147

type entry struct {
	desc  string
	build func() (Config, error)
}

type Registry struct {
	experiments map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{experiments: make(map[string]entry)}

	r.experiments["langmuir"] = entry{
		desc: "independent single-site adsorbers",
		build: func() (Config, error) {
			return Config{
				Params:   kmc.Parameters{Size: 100, Width: 1, Adsorption: 1, Desorption: 1, Beta: 1},
				Duration: 200,
				Seed:     1,
			}, nil
		},
	}
	r.experiments["rods"] = entry{
		desc: "sliding rods of width 10 at u=1 on a ring",
		build: func() (Config, error) {
			return Config{
				Params: kmc.Parameters{
					Size: 500, Boundary: kmc.Periodic, Width: 10,
					Adsorption: math.E, Desorption: 1, Diffusion: 1, Step: 1, Beta: 1,
				},
				Duration: 500,
				Seed:     1,
			}, nil
		},
	}
	r.experiments["nucleosome"] = entry{
		desc: "nucleosomes on a flat 2 kb fragment",
		build: func() (Config, error) {
			return Config{
				Params: kmc.Parameters{
					Size: 2000, Width: NucleosomeWidth,
					Adsorption: 1, Desorption: 0.1, Diffusion: 10, Step: 1, Beta: 1,
				},
				Duration: 1000,
				Seed:     1,
			}, nil
		},
	}
	r.experiments["doublewell"] = entry{
		desc: "one nucleosome choosing between two positioning wells",
		build: func() (Config, error) {
			v, err := landscape.DoubleWell(400, 0, 100, 250, -3, 10)
			if err != nil {
				return Config{}, err
			}
			return Config{
				Params: kmc.Parameters{
					Size: 400, Width: NucleosomeWidth,
					Adsorption: 1, Desorption: 1, Diffusion: 5, Step: 1, Beta: 1,
					Potential: v,
				},
				Duration: 1000,
				Seed:     1,
			}, nil
		},
	}

	return r
}

// Get builds the named experiment. Each call returns a fresh Config.
func (r *Registry) Get(name string) (Config, error) {
	e, ok := r.experiments[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown experiment: %s", name)
	}
	cfg, err := e.build()
	if err != nil {
		return Config{}, fmt.Errorf("experiment %s: %w", name, err)
	}
	cfg.Name = name
	return cfg, nil
}

func (r *Registry) Describe(name string) string { return r.experiments[name].desc }

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.experiments))
	for name := range r.experiments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
