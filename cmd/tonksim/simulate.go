package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/san-kum/tonksim/internal/config"
	"github.com/san-kum/tonksim/internal/experiment"
	"github.com/san-kum/tonksim/internal/kmc"
	"github.com/san-kum/tonksim/internal/landscape"
	"github.com/san-kum/tonksim/internal/sim"
	"github.com/san-kum/tonksim/internal/storage"
	"github.com/san-kum/tonksim/internal/trajectory"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

var (
	latticeSize    int
	boundary       string
	rodWidth       int
	kOn            float64
	kOff           float64
	diffusion      float64
	slideStep      int
	potentialPath  string
	duration       float64
	seed           int64
	maxSteps       int
	statusInterval int
	replicas       int

	nobjectsPath     string
	distributionPath string
	trajectoryPath   string
)

func simulateCommands() []*cobra.Command {
	simCmd := &cobra.Command{
		Use:   "simulate [experiment]",
		Short: "run kinetic Monte Carlo of rods adsorbing, desorbing and sliding on a lattice",
		Long: `Runs the Gillespie algorithm on a one-dimensional lattice. Without an
experiment name the lattice and rates come from the configuration; a named
experiment starts from its registered setup. Explicit flags override both.

The trajectory, nobjects and distribution outputs are the inputs of the
analysis commands (compare, hist-by-time, ntransitions, pdistribution).`,
		Args: cobra.MaximumNArgs(1),
		RunE: simulate,
	}
	d := config.DefaultConfig().Simulation
	f := simCmd.Flags()
	f.IntVar(&latticeSize, "lattice", d.Lattice, "number of lattice sites")
	f.StringVar(&boundary, "boundary", d.Boundary, "lattice boundary (fixed, periodic)")
	f.IntVar(&rodWidth, "width", d.Width, "sites covered by a rod")
	f.Float64Var(&kOn, "k-on", d.KOn, "adsorption rate")
	f.Float64Var(&kOff, "k-off", d.KOff, "desorption rate at zero potential")
	f.Float64Var(&diffusion, "diffusion", d.Diffusion, "slide rate on a flat landscape (0 disables sliding)")
	f.IntVar(&slideStep, "slide-step", d.Step, "sites moved per slide")
	f.StringVar(&potentialPath, "potential", "", "landscape file, one value per site")
	f.Float64Var(&duration, "time", d.Duration, "simulated time")
	f.Int64Var(&seed, "seed", d.Seed, "random seed")
	f.IntVar(&maxSteps, "max-steps", 0, "stop after this many steps (0 for no limit)")
	f.IntVar(&statusInterval, "status", 0, "report progress every n steps on stderr")
	f.IntVar(&replicas, "replicas", 1, "independent runs with consecutive seeds")
	f.StringVar(&nobjectsPath, "nobjects", "", "write time<TAB>count rows")
	f.StringVar(&distributionPath, "distribution", "", "write the time-averaged head distribution")
	f.StringVar(&trajectoryPath, "trajectory", "", "write time<TAB>positions frames (.gz, .zst compress)")
	f.Float64Var(&beta, "beta", config.DefaultBeta, "inverse temperature")
	f.BoolVar(&saveRun, "save", false, "save the head distribution to the run store")

	experimentsCmd := &cobra.Command{
		Use:   "experiments",
		Short: "list registered simulation experiments",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := experiment.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLATTICE\tWIDTH\tK_ON\tK_OFF\tDIFFUSION\tTIME\tDESCRIPTION")
			for _, name := range reg.List() {
				c, err := reg.Get(name)
				if err != nil {
					return err
				}
				p := c.Params
				fmt.Fprintf(w, "%s\t%d %s\t%d\t%g\t%g\t%g\t%g\t%s\n", name, p.Size, p.Boundary, p.Width, p.Adsorption, p.Desorption, p.Diffusion, c.Duration, reg.Describe(name))
			}
			return w.Flush()
		},
	}

	return []*cobra.Command{simCmd, experimentsCmd}
}

// applySimulationFlags copies explicitly set simulation flags into cfg.
func applySimulationFlags(cmd *cobra.Command, cfg *config.SimulationConfig) {
	flags := cmd.Flags()
	if flags.Lookup("lattice") == nil {
		return
	}
	if flags.Changed("lattice") {
		cfg.Lattice = latticeSize
	}
	if flags.Changed("boundary") {
		cfg.Boundary = boundary
	}
	if flags.Changed("width") {
		cfg.Width = rodWidth
	}
	if flags.Changed("k-on") {
		cfg.KOn = kOn
	}
	if flags.Changed("k-off") {
		cfg.KOff = kOff
	}
	if flags.Changed("diffusion") {
		cfg.Diffusion = diffusion
	}
	if flags.Changed("slide-step") {
		cfg.Step = slideStep
	}
	if flags.Changed("potential") {
		cfg.Potential = potentialPath
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("status") {
		cfg.StatusInterval = statusInterval
	}
}

// experimentConfig resolves the run: a named experiment with explicit flags
// laid over it, or the simulation section of cfg.
func experimentConfig(cmd *cobra.Command, cfg *config.Config, args []string) (experiment.Config, error) {
	sc := cfg.Simulation
	name := sc.Experiment
	if len(args) == 1 {
		name = args[0]
	}

	var exp experiment.Config
	potential := sc.Potential
	if name != "" {
		reg := experiment.NewRegistry()
		var err error
		exp, err = reg.Get(name)
		if err != nil {
			return exp, fmt.Errorf("%w (available: %v)", err, reg.List())
		}
		flags := cmd.Flags()
		p := &exp.Params
		if flags.Changed("lattice") {
			p.Size = sc.Lattice
		}
		if flags.Changed("boundary") {
			b, err := kmc.ParseBoundary(sc.Boundary)
			if err != nil {
				return exp, err
			}
			p.Boundary = b
		}
		if flags.Changed("width") {
			p.Width = sc.Width
		}
		if flags.Changed("k-on") {
			p.Adsorption = sc.KOn
		}
		if flags.Changed("k-off") {
			p.Desorption = sc.KOff
		}
		if flags.Changed("diffusion") {
			p.Diffusion = sc.Diffusion
		}
		if flags.Changed("slide-step") {
			p.Step = sc.Step
		}
		if flags.Changed("beta") {
			p.Beta = cfg.Beta
		}
		if flags.Changed("time") {
			exp.Duration = sc.Duration
		}
		if flags.Changed("seed") {
			exp.Seed = sc.Seed
		}
		exp.MaxSteps = sc.MaxSteps
		if !flags.Changed("potential") {
			potential = ""
		}
	} else {
		b, err := kmc.ParseBoundary(sc.Boundary)
		if err != nil {
			return exp, err
		}
		exp = experiment.Config{
			Name: "rod",
			Params: kmc.Parameters{
				Size:       sc.Lattice,
				Boundary:   b,
				Width:      sc.Width,
				Adsorption: sc.KOn,
				Desorption: sc.KOff,
				Diffusion:  sc.Diffusion,
				Step:       sc.Step,
				Beta:       cfg.Beta,
			},
			Duration: sc.Duration,
			Seed:     sc.Seed,
			MaxSteps: sc.MaxSteps,
		}
	}

	if potential != "" {
		v, err := landscape.ReadFile(potential)
		if err != nil {
			return exp, err
		}
		exp.Params.Potential = v
		slog.Debug("potential loaded", "path", potential, "sites", len(v))
	}
	return exp, exp.Params.Validate()
}

func simulate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experimentConfig(cmd, cfg, args)
	if err != nil {
		return err
	}
	p := exp.Params
	slog.Debug("simulation", "experiment", exp.Name, "lattice", p.Size, "boundary", p.Boundary,
		"width", p.Width, "k_on", p.Adsorption, "k_off", p.Desorption, "diffusion", p.Diffusion,
		"u", p.ChemicalPotential())

	if replicas > 1 {
		if nobjectsPath != "" || distributionPath != "" || trajectoryPath != "" || saveRun {
			return fmt.Errorf("output files and --save need a single replica")
		}
		return simulateEnsemble(exp)
	}

	var plugins []sim.Plugin
	var files []io.Closer
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	create := func(path string) (io.Writer, error) {
		w, err := trajectory.Create(path)
		if err != nil {
			return nil, err
		}
		files = append(files, w)
		return w, nil
	}

	if nobjectsPath != "" {
		w, err := create(nobjectsPath)
		if err != nil {
			return err
		}
		plugins = append(plugins, sim.NewNObjects(w, exp.Name))
	}
	if trajectoryPath != "" {
		w, err := create(trajectoryPath)
		if err != nil {
			return err
		}
		plugins = append(plugins, sim.NewTrajectory(w))
	}
	var dist *sim.Distribution
	if distributionPath != "" || saveRun {
		var w io.Writer
		if distributionPath != "" {
			if w, err = create(distributionPath); err != nil {
				return err
			}
		}
		dist = sim.NewDistribution(w)
		plugins = append(plugins, dist)
	}
	if cfg.Simulation.StatusInterval > 0 {
		plugins = append(plugins, sim.NewStatus(os.Stderr, cfg.Simulation.StatusInterval))
	}

	e := experiment.New(exp)
	if err := e.Setup(plugins, sim.DefaultMetrics()); err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", exp.Name)
	start := time.Now()

	result, err := e.Run(context.Background())
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := f.Close(); err != nil {
			return err
		}
	}
	files = nil

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("steps: %d to t=%g\n", result.Steps, result.Time)
	fmt.Printf("events: %d adsorptions, %d desorptions, %d slides\n",
		result.Events[kmc.Adsorption], result.Events[kmc.Desorption], result.Events[kmc.Slide])
	printMetrics(result.Metrics)

	if saveRun {
		return saveSimulation(exp, result, dist.Probabilities())
	}
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func simulateEnsemble(exp experiment.Config) error {
	fmt.Printf("running %d replicas of %s...\n", replicas, exp.Name)
	start := time.Now()
	results, err := experiment.RunEnsemble(context.Background(), exp, replicas, sim.DefaultMetrics)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))

	values := make(map[string][]float64)
	for _, r := range results {
		for name, v := range r.Metrics {
			values[name] = append(values[name], v)
		}
	}
	means := make(map[string]float64, len(values))
	for name, vs := range values {
		mean, std := stat.MeanStdDev(vs, nil)
		means[name] = mean
		means[name+"_std"] = std
	}
	printMetrics(means)
	return nil
}

func saveSimulation(exp experiment.Config, result *sim.Result, prob []float64) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	sites := make([]float64, len(prob))
	for i := range sites {
		sites[i] = float64(i)
	}
	table := &storage.Table{Columns: []string{"position", "probability"}, Rows: zipRows(sites, prob)}
	p := exp.Params
	params := map[string]float64{
		"lattice":      float64(p.Size),
		"width":        float64(p.Width),
		"k_on":         p.Adsorption,
		"k_off":        p.Desorption,
		"diffusion":    p.Diffusion,
		"beta":         p.Beta,
		"duration":     exp.Duration,
		"seed":         float64(exp.Seed),
		"steps":        float64(result.Steps),
		"mean_objects": result.Metrics["mean_objects"],
	}
	runID, err := st.Save("simulate", params, table)
	if err != nil {
		return err
	}
	slog.Info("run saved", "id", runID, "rows", len(table.Rows))
	return nil
}
