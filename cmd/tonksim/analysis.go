package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/tonksim/internal/landscape"
	"github.com/san-kum/tonksim/internal/reduce"
	"github.com/san-kum/tonksim/internal/storage"
	"github.com/san-kum/tonksim/internal/trajectory"
	"github.com/san-kum/tonksim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	valueCol   int
	timeCol    int
	flat       float64
	wells      []string
	fromCounts bool
)

func analysisCommands() []*cobra.Command {
	averageCmd := &cobra.Command{
		Use:   "average [pattern...]",
		Short: "element-wise average of one column across files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  averageFiles,
	}
	averageCmd.Flags().IntVar(&valueCol, "valuecol", 1, "column with values to average")
	averageCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	histCmd := &cobra.Command{
		Use:   "hist-by-time [file]",
		Short: "time-weighted histogram of object counts",
		Args:  cobra.ExactArgs(1),
		RunE:  histByTime,
	}
	histCmd.Flags().IntVar(&timeCol, "timecol", 0, "column with time values")
	histCmd.Flags().IntVar(&valueCol, "valuecol", 1, "column with counts")
	addOutputFlags(histCmd)

	nobjectsCmd := &cobra.Command{
		Use:   "nobjects [file]",
		Short: "number of objects against time",
		Args:  cobra.ExactArgs(1),
		RunE:  nObjects,
	}
	nobjectsCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	transitionsCmd := &cobra.Command{
		Use:   "ntransitions [file]",
		Short: "count adsorptions and desorptions in an nobjects series",
		Args:  cobra.ExactArgs(1),
		RunE:  nTransitions,
	}

	pdistCmd := &cobra.Command{
		Use:   "pdistribution [file]",
		Short: "occupancy probability of each lattice position",
		Args:  cobra.ExactArgs(1),
		RunE:  positionDist,
	}
	addOutputFlags(pdistCmd)

	pholeCmd := &cobra.Command{
		Use:   "phole [file]",
		Short: "probability of a linker at least one object long",
		Args:  cobra.ExactArgs(1),
		RunE:  pHole,
	}
	pholeCmd.Flags().IntVar(&holeSize, "hole-size", reduce.DefaultHoleSize, "object size in sites")

	statsCmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "mean, spread and range of one column",
		Args:  cobra.ExactArgs(1),
		RunE:  columnStats,
	}
	statsCmd.Flags().IntVar(&valueCol, "valuecol", 1, "column to summarise")

	wellCmd := &cobra.Command{
		Use:   "doublewell [output] [length]",
		Short: "write a flat landscape with gaussian wells",
		Args:  cobra.ExactArgs(2),
		RunE:  doubleWell,
	}
	wellCmd.Flags().Float64Var(&flat, "flat", 0, "flat height of the landscape (kT)")
	wellCmd.Flags().StringArrayVar(&wells, "well", nil, "well as pos,depth,sigma (repeatable)")

	compareCmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "compare an occupancy histogram with the model distribution",
		Args:  cobra.ExactArgs(1),
		RunE:  compareTheory,
	}
	addModelFlags(compareCmd)
	compareCmd.Flags().BoolVar(&fromCounts, "counts", false, "input is an nobjects series, not a histogram")
	compareCmd.Flags().BoolVar(&showPlot, "plot", false, "print an ascii chart")

	return []*cobra.Command{averageCmd, histCmd, nobjectsCmd, transitionsCmd, pdistCmd, pholeCmd, statsCmd, wellCmd, compareCmd}
}

func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", p)
		}
		files = append(files, matches...)
	}
	return files, nil
}

func averageFiles(cmd *cobra.Command, args []string) error {
	files, err := expandPatterns(args)
	if err != nil {
		return err
	}
	slog.Info("averaging", "files", len(files))

	series := make([][]float64, 0, len(files))
	for _, f := range files {
		slog.Debug("reading", "path", f)
		cols, err := trajectory.ReadColumnFile(f, valueCol)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		series = append(series, cols[0])
	}
	avg, err := reduce.Average(series)
	if err != nil {
		return err
	}

	w, err := openOutput(output)
	if err != nil {
		return err
	}
	defer w.Close()
	return trajectory.WriteIndexed(w, avg)
}

// readCounts reads a time column and an integer count column.
func readCounts(path string, tcol, ncol int) ([]float64, []int, error) {
	cols, err := trajectory.ReadColumnFile(path, tcol, ncol)
	if err != nil {
		return nil, nil, err
	}
	counts := make([]int, len(cols[1]))
	for i, v := range cols[1] {
		if v != math.Trunc(v) {
			return nil, nil, fmt.Errorf("%s: count %g on row %d is not an integer", path, v, i+1)
		}
		counts[i] = int(v)
	}
	return cols[0], counts, nil
}

func histByTime(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	times, counts, err := readCounts(args[0], timeCol, valueCol)
	if err != nil {
		return err
	}
	hist, err := reduce.HistByTime(times, counts)
	if err != nil {
		return err
	}
	return emit(cfg, "hist", indexTable("n", "fraction", hist), "time fraction by count", "N", "fraction", func(w io.Writer) error {
		return trajectory.WriteIndexed(w, hist)
	})
}

func nObjects(cmd *cobra.Command, args []string) error {
	frames, err := trajectory.ReadFrameFile(args[0])
	if err != nil {
		return err
	}
	times, counts := reduce.SplitCounts(reduce.NObjects(frames))

	w, err := openOutput(output)
	if err != nil {
		return err
	}
	defer w.Close()
	return trajectory.WriteCounts(w, times, counts)
}

func nTransitions(cmd *cobra.Command, args []string) error {
	_, counts, err := readCounts(args[0], 0, 1)
	if err != nil {
		return err
	}
	t := reduce.CountTransitions(counts)
	fmt.Printf("%d adsorptions, %d desorptions out of %d total transitions\n", t.Adsorptions, t.Desorptions, t.Total)
	return nil
}

func positionDist(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	frames, err := trajectory.ReadFrameFile(args[0])
	if err != nil {
		return err
	}
	dist, err := reduce.PositionDistribution(frames)
	if err != nil {
		return err
	}
	return emit(cfg, "pdistribution", indexTable("position", "probability", dist), "occupancy by position", "position", "probability", func(w io.Writer) error {
		return trajectory.WriteIndexed(w, dist)
	})
}

func pHole(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cols, err := trajectory.ReadColumnFile(args[0], 1)
	if err != nil {
		return err
	}
	p, err := reduce.PHole(cols[0], cfg.HoleSize)
	if err != nil {
		return err
	}
	fmt.Printf("%g\n", p)
	return nil
}

func columnStats(cmd *cobra.Command, args []string) error {
	cols, err := trajectory.ReadColumnFile(args[0], valueCol)
	if err != nil {
		return err
	}
	s, err := reduce.Summary(cols[0])
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tMEAN\tSTDDEV\tMIN\tMAX")
	fmt.Fprintf(w, "%d\t%.6g\t%.6g\t%.6g\t%.6g\n", s.N, s.Mean, s.StdDev, s.Min, s.Max)
	return w.Flush()
}

func doubleWell(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("length: %w", err)
	}
	slog.Info("flat landscape", "value", flat)

	parsed := make([]landscape.Well, 0, len(wells))
	for _, s := range wells {
		w, err := landscape.ParseWell(s)
		if err != nil {
			return err
		}
		slog.Info("adding well", "pos", w.Pos, "depth", w.Depth, "sigma", w.Sigma)
		parsed = append(parsed, w)
	}

	v, err := landscape.Build(n, flat, parsed)
	if err != nil {
		return err
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	return trajectory.WriteValues(f, v)
}

func compareTheory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var hist []float64
	if fromCounts {
		times, counts, err := readCounts(args[0], 0, 1)
		if err != nil {
			return err
		}
		if hist, err = reduce.HistByTime(times, counts); err != nil {
			return err
		}
	} else {
		cols, err := trajectory.ReadColumnFile(args[0], 1)
		if err != nil {
			return err
		}
		hist = cols[0]
	}

	c, err := reduce.CompareOccupancy(hist, bathModel(cfg), cfg.Length)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tEMPIRICAL\tTHEORY")
	for _, r := range c.Rows {
		fmt.Fprintf(w, "%d\t%.6g\t%.6g\n", r.N, r.Empirical, r.Theory)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nmean N: %.4f empirical, %.4f theory\n", c.MeanEmpirical, c.MeanTheory)
	fmt.Printf("total variation: %.6f\n", c.TotalVariation)
	fmt.Printf("kl divergence: %.6f bits\n", c.KL)

	if showPlot {
		emp := make([]float64, len(c.Rows))
		th := make([]float64, len(c.Rows))
		for i, r := range c.Rows {
			emp[i], th[i] = r.Empirical, r.Theory
		}
		fmt.Println()
		fmt.Println(viz.MultiChart([][]float64{emp, th}, "empirical (cyan) vs theory (yellow)", 10))
	}
	return nil
}

func indexTable(xname, yname string, ys []float64) *storage.Table {
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	return &storage.Table{Columns: []string{xname, yname}, Rows: zipRows(xs, ys)}
}
