package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/tonksim/internal/config"
	"github.com/san-kum/tonksim/internal/export"
	"github.com/san-kum/tonksim/internal/storage"
	"github.com/san-kum/tonksim/internal/tonks"
	"github.com/san-kum/tonksim/internal/trajectory"
	"github.com/san-kum/tonksim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	count    int
	posX     float64
	posX2    float64
	step     float64
	rMax     float64
	showPlot bool
	pngPath  string
	saveRun  bool
)

// scalarQuantity evaluates one named quantity for the resolved config.
type scalarQuantity func(cfg *config.Config, m tonks.Model) (float64, error)

var scalarQuantities = map[string]scalarQuantity{
	"z":           func(c *config.Config, m tonks.Model) (float64, error) { return m.Z(c.Length) },
	"logz":        func(c *config.Config, m tonks.Model) (float64, error) { return m.LogZ(c.Length) },
	"q":           func(c *config.Config, m tonks.Model) (float64, error) { return tonks.Q(c.Length, count) },
	"pn":          func(c *config.Config, m tonks.Model) (float64, error) { return m.Pn(c.Length, count) },
	"nmean":       func(c *config.Config, m tonks.Model) (float64, error) { return m.Nmean(c.Length) },
	"density":     func(c *config.Config, m tonks.Model) (float64, error) { return m.Density(c.Length) },
	"bistability": func(c *config.Config, m tonks.Model) (float64, error) { return m.Bistability(c.Length) },
	"r1":          func(c *config.Config, m tonks.Model) (float64, error) { return m.R1(c.Length, posX) },
	"r2":          func(c *config.Config, m tonks.Model) (float64, error) { return m.R2(c.Length, posX, posX2) },
	"prn":         func(c *config.Config, m tonks.Model) (float64, error) { return tonks.Prn(c.Length, count, c.Distance) },
	"pr":          func(c *config.Config, m tonks.Model) (float64, error) { return m.Pr(c.Length, c.Distance) },
	"rmean":       func(c *config.Config, m tonks.Model) (float64, error) { return tonks.Rmean(c.Length, count) },
	"hn":          func(c *config.Config, m tonks.Model) (float64, error) { return tonks.Hn(c.Length, count, c.Distance) },
	"h":           func(c *config.Config, m tonks.Model) (float64, error) { return m.H(c.Length, c.Distance) },
	"factorial":   func(c *config.Config, m tonks.Model) (float64, error) { return tonks.Factorial(count), nil },
}

// vectorQuantity evaluates a quantity across several lengths at once.
type vectorQuantity func(cfg *config.Config, m tonks.Model, ls []float64) ([]float64, error)

var vectorQuantities = map[string]vectorQuantity{
	"z":           func(c *config.Config, m tonks.Model, ls []float64) ([]float64, error) { return m.ZVec(ls) },
	"logz":        func(c *config.Config, m tonks.Model, ls []float64) ([]float64, error) { return tonks.LogZVec(ls, m.U, m.Beta) },
	"nmean":       func(c *config.Config, m tonks.Model, ls []float64) ([]float64, error) { return m.NmeanVec(ls) },
	"density":     func(c *config.Config, m tonks.Model, ls []float64) ([]float64, error) { return m.DensityVec(ls) },
	"bistability": func(c *config.Config, m tonks.Model, ls []float64) ([]float64, error) { return m.BistabilityVec(ls) },
	"pr":          func(c *config.Config, m tonks.Model, ls []float64) ([]float64, error) { return m.PrVec(ls, c.Distance) },
	"h":           func(c *config.Config, m tonks.Model, ls []float64) ([]float64, error) { return m.HVec(ls, c.Distance) },
}

func quantityNames() []string {
	names := make([]string, 0, len(scalarQuantities))
	for name := range scalarQuantities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func modelCommands() []*cobra.Command {
	evalCmd := &cobra.Command{
		Use:   "eval [quantity]",
		Short: "evaluate one model quantity (" + strings.Join(quantityNames(), ", ") + ")",
		Args:  cobra.ExactArgs(1),
		RunE:  evalQuantity,
	}
	addModelFlags(evalCmd)
	evalCmd.Flags().IntVar(&count, "n", 0, "number of objects")
	evalCmd.Flags().Float64Var(&posX, "x", 0.5, "position")
	evalCmd.Flags().Float64Var(&posX2, "x2", 1.5, "second position (r2)")
	evalCmd.Flags().Float64VarP(&distance, "distance", "r", 1.0, "gap distance")
	evalCmd.Flags().Float64SliceVar(&lengths, "lengths", nil, "evaluate across these lengths")

	distCmd := &cobra.Command{
		Use:   "dist",
		Short: "occupation number distribution P(N)",
		RunE:  occupationDist,
	}
	addModelFlags(distCmd)
	addOutputFlags(distCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep chemical potential across segment lengths",
		RunE:  sweepPotential,
	}
	addModelFlags(sweepCmd)
	addOutputFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&lengths, "lengths", nil, "segment lengths")
	sweepCmd.Flags().Float64Var(&uMin, "umin", config.DefaultUMin, "lowest chemical potential")
	sweepCmd.Flags().Float64Var(&uMax, "umax", config.DefaultUMax, "highest chemical potential")
	sweepCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of potentials")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "one-point density r1 along the segment",
		RunE:  densityProfile,
	}
	addModelFlags(profileCmd)
	addOutputFlags(profileCmd)
	profileCmd.Flags().Float64Var(&step, "step", 1.0, "spacing between positions")

	holesCmd := &cobra.Command{
		Use:   "holes",
		Short: "hole probability h as a function of gap size",
		RunE:  holeCurve,
	}
	addModelFlags(holesCmd)
	addOutputFlags(holesCmd)
	holesCmd.Flags().Float64Var(&step, "step", 1.0, "spacing between gap sizes")
	holesCmd.Flags().Float64Var(&rMax, "rmax", 0, "largest gap size (default: length)")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive explorer",
		RunE:  explore,
	}
	addModelFlags(exploreCmd)

	return []*cobra.Command{evalCmd, distCmd, sweepCmd, profileCmd, holesCmd, exploreCmd}
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&showPlot, "plot", false, "print an ascii chart")
	cmd.Flags().StringVar(&pngPath, "png", "", "write a plot image (.png, .svg, .pdf)")
	cmd.Flags().BoolVar(&saveRun, "save", false, "save the result to the run store")
}

func bathModel(cfg *config.Config) tonks.Model {
	return tonks.New(cfg.U).WithBeta(cfg.Beta)
}

func evalQuantity(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(args[0])
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m := bathModel(cfg)

	if cmd.Flags().Changed("lengths") {
		fn, ok := vectorQuantities[name]
		if !ok {
			return fmt.Errorf("quantity %q has no length-vector form", name)
		}
		values, err := fn(cfg, m, cfg.Lengths)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return trajectory.WritePairs(os.Stdout, cfg.Lengths, values)
	}

	fn, ok := scalarQuantities[name]
	if !ok {
		return fmt.Errorf("unknown quantity: %s (available: %v)", name, quantityNames())
	}
	v, err := fn(cfg, m)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	fmt.Printf("%g\n", v)
	return nil
}

func occupationDist(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m := bathModel(cfg)

	p, err := m.PnDist(cfg.Length)
	if err != nil {
		return err
	}
	if nmean, err := m.Nmean(cfg.Length); err == nil {
		slog.Debug("distribution", "states", len(p), "nmean", nmean)
	}

	ns := make([]float64, len(p))
	for i := range ns {
		ns[i] = float64(i)
	}
	table := &storage.Table{Columns: []string{"n", "pn"}, Rows: zipRows(ns, p)}
	title := fmt.Sprintf("P(N) L=%g u=%g beta=%g", cfg.Length, cfg.U, cfg.Beta)
	return emit(cfg, "dist", table, title, "N", "P(N)", func(w io.Writer) error {
		return trajectory.WriteIndexed(w, p)
	})
}

func sweepPotential(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	us := cfg.Potentials()
	ls := cfg.SweepLengths()
	slog.Info("sweeping", "potentials", len(us), "lengths", len(ls))

	table := &storage.Table{Columns: []string{"u", "length", "nmean", "density", "bistability"}}
	densities := make([][]float64, len(ls))
	for i := range densities {
		densities[i] = make([]float64, len(us))
	}

	for j, uu := range us {
		m := tonks.New(uu).WithBeta(cfg.Beta)
		nm, err := m.NmeanVec(ls)
		if err != nil {
			return fmt.Errorf("u=%g: %w", uu, err)
		}
		dens, err := m.DensityVec(ls)
		if err != nil {
			return fmt.Errorf("u=%g: %w", uu, err)
		}
		bis, err := m.BistabilityVec(ls)
		if err != nil {
			return fmt.Errorf("u=%g: %w", uu, err)
		}
		for i, L := range ls {
			table.Rows = append(table.Rows, []float64{uu, L, nm[i], dens[i], bis[i]})
			densities[i][j] = dens[i]
		}
	}

	w, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer w.Close()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "U\tLENGTH\tNMEAN\tDENSITY\tBISTABILITY")
	for _, r := range table.Rows {
		fmt.Fprintf(tw, "%.4g\t%g\t%.6g\t%.6g\t%.6g\n", r[0], r[1], r[2], r[3], r[4])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if showPlot {
		fmt.Println()
		fmt.Println(viz.MultiChart(densities, "density vs u, one line per length", 12))
	}
	if pngPath != "" {
		series := make([]export.Series, len(ls))
		for i, L := range ls {
			series[i] = export.Series{Name: fmt.Sprintf("L=%g", L), X: us, Y: densities[i]}
		}
		if err := export.Curves(pngPath, fmt.Sprintf("density, beta=%g", cfg.Beta), "u", "density", series); err != nil {
			return err
		}
		slog.Info("plot written", "path", pngPath)
	}
	if saveRun {
		return saveTable(cfg, "sweep", table)
	}
	return nil
}

func densityProfile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Length < 1 {
		return fmt.Errorf("profile needs a segment of length >= 1, got %g", cfg.Length)
	}
	if step <= 0 {
		return fmt.Errorf("step must be positive, got %g", step)
	}
	m := bathModel(cfg)

	var xs []float64
	for x := 0.5; x <= cfg.Length-0.5+1e-9; x += step {
		xs = append(xs, x)
	}
	r1, err := tonks.R1Profile(cfg.Length, m.U, m.Beta, xs)
	if err != nil {
		return err
	}

	table := &storage.Table{Columns: []string{"x", "r1"}, Rows: zipRows(xs, r1)}
	title := fmt.Sprintf("r1(x) L=%g u=%g", cfg.Length, cfg.U)
	return emit(cfg, "profile", table, title, "x", "r1", func(w io.Writer) error {
		return trajectory.WritePairs(w, xs, r1)
	})
}

func holeCurve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if step <= 0 {
		return fmt.Errorf("step must be positive, got %g", step)
	}
	limit := rMax
	if !cmd.Flags().Changed("rmax") {
		limit = cfg.Length
	}
	m := bathModel(cfg)

	var rs, hs []float64
	for r := 0.0; r <= limit+1e-9; r += step {
		h, err := m.H(cfg.Length, r)
		if err != nil {
			return fmt.Errorf("r=%g: %w", r, err)
		}
		rs = append(rs, r)
		hs = append(hs, h)
	}

	table := &storage.Table{Columns: []string{"r", "h"}, Rows: zipRows(rs, hs)}
	title := fmt.Sprintf("h(r) L=%g u=%g", cfg.Length, cfg.U)
	return emit(cfg, "holes", table, title, "r", "h", func(w io.Writer) error {
		return trajectory.WritePairs(w, rs, hs)
	})
}

func explore(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p := tea.NewProgram(viz.NewExplorer(bathModel(cfg), cfg.Length), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// emit writes a two-column result and honours the shared output flags.
func emit(cfg *config.Config, kind string, table *storage.Table, title, xlabel, ylabel string, write func(io.Writer) error) error {
	out, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := write(out); err != nil {
		return err
	}

	xs, ys := table.Column(table.Columns[0]), table.Column(table.Columns[1])
	if showPlot {
		fmt.Println()
		fmt.Println(viz.Chart(ys, title, 10))
	}
	if pngPath != "" {
		series := []export.Series{{Name: ylabel, X: xs, Y: ys}}
		if err := export.Curves(pngPath, title, xlabel, ylabel, series); err != nil {
			return err
		}
		slog.Info("plot written", "path", pngPath)
	}
	if saveRun {
		return saveTable(cfg, kind, table)
	}
	return nil
}

func saveTable(cfg *config.Config, kind string, table *storage.Table) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	params := map[string]float64{
		"length": cfg.Length,
		"u":      cfg.U,
		"beta":   cfg.Beta,
	}
	if kind == "sweep" {
		params["u_min"] = cfg.Sweep.UMin
		params["u_max"] = cfg.Sweep.UMax
		params["steps"] = float64(cfg.Sweep.Steps)
	}
	runID, err := st.Save(kind, params, table)
	if err != nil {
		return err
	}
	slog.Info("run saved", "id", runID, "rows", len(table.Rows))
	return nil
}

func zipRows(xs, ys []float64) [][]float64 {
	rows := make([][]float64, len(xs))
	for i := range xs {
		rows[i] = []float64{xs[i], ys[i]}
	}
	return rows
}
