package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/tonksim/internal/config"
	"github.com/san-kum/tonksim/internal/storage"
	"github.com/san-kum/tonksim/internal/trajectory"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	dataDir, configFile, preset, verbose = "", "", "", false
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestDoubleWellCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "v.txt")
	if err := execute(t, "doublewell", out, "40", "--flat", "1", "--well", "10,-2,2", "--well", "30,-2,2"); err != nil {
		t.Fatalf("doublewell failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 40 {
		t.Fatalf("expected 40 lines, got %d", len(lines))
	}
	if lines[10] != "-1.000000000000000000e+00" {
		t.Errorf("expected well centre at flat+depth, got %s", lines[10])
	}
}

func TestSweepSavesRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "sweep.txt")
	err := execute(t, "sweep", "--data", dir, "--lengths", "2.5,5.5", "--umin", "-1", "--umax", "1", "--steps", "3", "--save", "-o", out)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	runs, err := storage.New(dir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Kind != "sweep" {
		t.Fatalf("expected one sweep run, got %+v", runs)
	}
	if runs[0].Rows != 6 {
		t.Errorf("expected 6 rows, got %d", runs[0].Rows)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tonks.yaml")
	cfg := config.DefaultConfig()
	cfg.Length = 12
	cfg.U = -1
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "dist.txt")
	if err := execute(t, "dist", "--config", path, "--u", "2", "-o", out); err != nil {
		t.Fatalf("dist failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	// floor(12)+1 occupancies
	if n := len(strings.Split(strings.TrimSpace(string(data)), "\n")); n != 13 {
		t.Errorf("expected 13 rows, got %d", n)
	}
}

func TestUnknownPreset(t *testing.T) {
	if err := execute(t, "eval", "z", "--preset", "nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestUnknownQuantity(t *testing.T) {
	if err := execute(t, "eval", "entropy"); err == nil {
		t.Error("expected error for unknown quantity")
	}
	if err := execute(t, "eval", "q", "--lengths", "1,2"); err == nil {
		t.Error("expected error for quantity without vector form")
	}
}

func TestNTransitionsRejectsFractionalCounts(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "counts.txt")
	if err := os.WriteFile(good, []byte("# nuc\n0\t0\n0.5\t1\n1.2\t2\n2\t1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "ntransitions", good); err != nil {
		t.Errorf("ntransitions failed on integer counts: %v", err)
	}

	bad := filepath.Join(dir, "fractional.txt")
	if err := os.WriteFile(bad, []byte("0\t0\n0.5\t1.7\n1.2\t2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "ntransitions", bad); err == nil {
		t.Error("expected error for non-integer count")
	}
}

func TestFormatParams(t *testing.T) {
	got := formatParams(map[string]float64{"u": 1, "beta": 2})
	if got != "beta=2 u=1" {
		t.Errorf("expected sorted params, got %q", got)
	}
}

func TestSimulateWritesAnalysisInputs(t *testing.T) {
	dir := t.TempDir()
	traj := filepath.Join(dir, "traj.txt.gz")
	counts := filepath.Join(dir, "nobjects.txt")
	dist := filepath.Join(dir, "dist.txt")

	err := execute(t, "simulate", "--lattice", "30", "--width", "3", "--k-on", "2", "--time", "20", "--seed", "5",
		"--trajectory", traj, "--nobjects", counts, "--distribution", dist)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	frames, err := trajectory.ReadFrameFile(traj)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) < 2 || frames[len(frames)-1].Time != 20 {
		t.Fatalf("expected frames ending at t=20, got %d frames", len(frames))
	}
	times, n, err := readCounts(counts, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != len(frames) || n[len(n)-1] != len(frames[len(frames)-1].Positions) {
		t.Errorf("nobjects rows do not match the trajectory")
	}

	cols, err := trajectory.ReadColumnFile(dist, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(cols[0]) != 30 {
		t.Errorf("expected one row per site, got %d", len(cols[0]))
	}
	for i, p := range cols[1] {
		if p < 0 || p > 1 {
			t.Errorf("site %d: probability %g out of range", i, p)
		}
	}

	if err := execute(t, "ntransitions", counts); err != nil {
		t.Errorf("ntransitions on simulated counts: %v", err)
	}
	if err := execute(t, "compare", counts, "--counts", "--length", "10", "--u", "0.69"); err != nil {
		t.Errorf("compare on simulated counts: %v", err)
	}
	if err := execute(t, "pdistribution", traj, "-o", filepath.Join(dir, "pd.txt")); err != nil {
		t.Errorf("pdistribution on simulated trajectory: %v", err)
	}
}

func TestSimulateNamedExperimentSaves(t *testing.T) {
	dir := t.TempDir()
	if err := execute(t, "simulate", "langmuir", "--data", dir, "--lattice", "20", "--time", "5", "--save"); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	runs, err := storage.New(dir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Kind != "simulate" || runs[0].Rows != 20 {
		t.Fatalf("expected one simulate run with 20 rows, got %+v", runs)
	}
	if runs[0].Params["width"] != 1 {
		t.Errorf("expected the experiment width to survive, got %v", runs[0].Params["width"])
	}
}

func TestSimulateWithPotential(t *testing.T) {
	dir := t.TempDir()
	v := filepath.Join(dir, "v.txt")
	if err := execute(t, "doublewell", v, "40", "--well", "10,-2,2", "--well", "30,-2,2"); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "simulate", "--lattice", "40", "--width", "4", "--potential", v, "--time", "5"); err != nil {
		t.Errorf("simulate with matching landscape failed: %v", err)
	}
	if err := execute(t, "simulate", "--lattice", "50", "--width", "4", "--potential", v, "--time", "5"); err == nil {
		t.Error("expected error for a landscape shorter than the lattice")
	}
}

func TestSimulateErrors(t *testing.T) {
	if err := execute(t, "simulate", "chromatin"); err == nil {
		t.Error("expected error for unknown experiment")
	}
	if err := execute(t, "simulate", "--boundary", "open"); err == nil {
		t.Error("expected error for unknown boundary")
	}
	out := filepath.Join(t.TempDir(), "n.txt")
	if err := execute(t, "simulate", "langmuir", "--replicas", "2", "--nobjects", out); err == nil {
		t.Error("expected error for output files with replicas")
	}
	if err := execute(t, "simulate", "langmuir", "--replicas", "3", "--time", "5"); err != nil {
		t.Errorf("replicas failed: %v", err)
	}
}
