package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/san-kum/tonksim/internal/config"
	"github.com/san-kum/tonksim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	output     string

	length   float64
	u        float64
	beta     float64
	lengths  []float64
	uMin     float64
	uMax     float64
	steps    int
	distance float64
	holeSize int
)

// main registers the model, analysis, simulation and store commands and executes the
// root command, exiting with status 1 on failure.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tonksim",
		Short:         "hard-rod lattice gas model and occupancy analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(os.Stderr, verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tonksim", "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(modelCommands()...)
	rootCmd.AddCommand(analysisCommands()...)
	rootCmd.AddCommand(simulateCommands()...)
	rootCmd.AddCommand(runCommands()...)
	return rootCmd
}

func setupLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// addModelFlags binds the bath and segment flags shared by the model
// commands.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&length, "length", "L", config.DefaultLength, "segment length")
	cmd.Flags().Float64Var(&u, "u", config.DefaultU, "chemical potential")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "inverse temperature")
}

// resolveConfig layers defaults, the preset, the config file and finally
// any flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		slog.Debug("preset loaded", "name", preset)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		slog.Debug("config loaded", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("u") {
		cfg.U = u
	}
	if flags.Changed("beta") {
		cfg.Beta = beta
	}
	if flags.Changed("lengths") {
		cfg.Lengths = lengths
	}
	if flags.Changed("umin") {
		cfg.Sweep.UMin = uMin
	}
	if flags.Changed("umax") {
		cfg.Sweep.UMax = uMax
	}
	if flags.Changed("steps") {
		cfg.Sweep.Steps = steps
	}
	if flags.Changed("distance") {
		cfg.Distance = distance
	}
	if flags.Changed("hole-size") {
		cfg.HoleSize = holeSize
	}
	if flags.Changed("output") {
		cfg.Output = output
	}
	applySimulationFlags(cmd, &cfg.Simulation)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("configuration", "length", cfg.Length, "u", cfg.U, "beta", cfg.Beta)
	return cfg, nil
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout for "" or "-", otherwise a new file.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
