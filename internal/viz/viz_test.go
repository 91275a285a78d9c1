package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/tonksim/internal/tonks"
)

func TestCanvasCurve(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Curve([]float64{0, 1}, 0, 1)

	// bottom-left dot and top-right dot
	if c.Grid[1][0]&rune(pixelMap[3][0]) == 0 {
		t.Error("expected bottom-left dot set")
	}
	if c.Grid[0][3]&rune(pixelMap[0][1]) == 0 {
		t.Error("expected top-right dot set")
	}

	c.Clear()
	c.Curve([]float64{math.NaN(), math.Inf(1)}, 0, 1)
	for _, r := range c.Grid {
		for _, ch := range r {
			if ch != blank {
				t.Fatalf("expected empty canvas, got %q", ch)
			}
		}
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if strings.TrimSpace(c.String()) != string([]rune{blank, blank}) {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestChartSkipsNonFinite(t *testing.T) {
	if got := Chart([]float64{math.NaN()}, "x", 4); got != "" {
		t.Errorf("expected empty chart, got %q", got)
	}
	if got := Chart([]float64{1, 2, math.Inf(1), 3}, "rho", 4); !strings.Contains(got, "rho") {
		t.Errorf("expected caption in chart, got %q", got)
	}
}

func TestSparklineWidth(t *testing.T) {
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func press(e Explorer, key string) Explorer {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ := e.Update(msg)
	return m.(Explorer)
}

func TestExplorerAdjust(t *testing.T) {
	e := NewExplorer(tonks.New(0), 10)
	if e.err != nil {
		t.Fatalf("unexpected error: %v", e.err)
	}
	before := e.nmean

	e = press(e, "up")
	if e.model.U != 0.25 {
		t.Errorf("expected u 0.25, got %f", e.model.U)
	}
	if e.nmean <= before {
		t.Errorf("expected <N> to grow with u, got %f -> %f", before, e.nmean)
	}

	e = press(e, "tab")
	e = press(e, "tab")
	e = press(e, "down")
	if e.length != 9 {
		t.Errorf("expected L 9, got %f", e.length)
	}
	if len(e.dist) != 10 {
		t.Errorf("expected 10 occupancies, got %d", len(e.dist))
	}

	e = press(e, "r")
	if e.model.U != 0 || e.length != 10 {
		t.Errorf("expected reset to u=0 L=10, got u=%f L=%f", e.model.U, e.length)
	}
}

func TestExplorerLengthFloor(t *testing.T) {
	e := NewExplorer(tonks.New(0), 1)
	e.selected = paramLength
	e = press(e, "down")
	if e.length != minLength {
		t.Errorf("expected L clamped to %f, got %f", minLength, e.length)
	}
}

func TestExplorerView(t *testing.T) {
	e := NewExplorer(tonks.New(1), 12)
	view := e.View()
	for _, want := range []string{"TONKS GAS", "density", "bistability"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}
