package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/tonksim/internal/tonks"
)

const (
	canvasWidth  = 60
	canvasHeight = 12
	minLength    = 1.0
)

type param int

const (
	paramU param = iota
	paramBeta
	paramLength
)

var paramNames = [...]string{"u", "beta", "L"}

// Explorer is an interactive view of one segment in contact with a bath.
type Explorer struct {
	model   tonks.Model
	length  float64
	initial tonks.Model
	initLen float64

	selected param
	showHelp bool
	canvas   *Canvas

	dist        []float64
	profile     []float64
	nmean       float64
	density     float64
	bistability float64
	err         error
}

// NewExplorer starts the explorer at model m and segment length L.
func NewExplorer(m tonks.Model, L float64) Explorer {
	e := Explorer{
		model:   m,
		length:  math.Max(L, minLength),
		initial: m,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
	}
	e.initLen = e.length
	e.recompute()
	return e
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return e, tea.Quit
	case "tab":
		e.selected = (e.selected + 1) % param(len(paramNames))
	case "shift+tab":
		e.selected = (e.selected + param(len(paramNames)) - 1) % param(len(paramNames))
	case "up", "k":
		e.adjust(1)
	case "down", "j":
		e.adjust(-1)
	case "r":
		e.model, e.length = e.initial, e.initLen
		e.recompute()
	case "?":
		e.showHelp = !e.showHelp
	}
	return e, nil
}

// adjust steps the selected parameter: u by 0.25, beta by 10%, L by one
// site.
func (e *Explorer) adjust(dir float64) {
	switch e.selected {
	case paramU:
		e.model.U += 0.25 * dir
	case paramBeta:
		e.model.Beta *= math.Pow(1.1, dir)
	case paramLength:
		e.length = math.Max(minLength, e.length+dir)
	}
	e.recompute()
}

func (e *Explorer) recompute() {
	e.err = nil
	m, L := e.model, e.length

	dist, err := m.PnDist(L)
	if err != nil {
		e.err = err
		return
	}
	e.dist = dist
	if e.nmean, err = m.Nmean(L); err != nil {
		e.err = err
		return
	}
	if e.density, err = m.Density(L); err != nil {
		e.err = err
		return
	}
	if e.bistability, err = m.Bistability(L); err != nil {
		e.err = err
		return
	}

	xs := profilePositions(L, canvasWidth*2)
	if e.profile, err = tonks.R1Profile(L, m.U, m.Beta, xs); err != nil {
		e.err = err
		return
	}

	e.canvas.Clear()
	e.canvas.Curve(e.profile, 0, 1)
}

// profilePositions spreads n sample points over [0.5, L-0.5].
func profilePositions(L float64, n int) []float64 {
	lo, hi := 0.5, L-0.5
	if hi <= lo || n < 2 {
		return []float64{lo}
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return xs
}

func (e Explorer) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("TONKS GAS") + "\n\n")

	for i, name := range paramNames {
		var v float64
		switch param(i) {
		case paramU:
			v = e.model.U
		case paramBeta:
			v = e.model.Beta
		case paramLength:
			v = e.length
		}
		line := fmt.Sprintf("%-6s %s", name, fmtFloat(v))
		if param(i) == e.selected {
			s.WriteString(activeStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	s.WriteString("\n")

	if e.err != nil {
		s.WriteString(errorStyle.Render(e.err.Error()) + "\n")
	} else {
		s.WriteString(row("<N>", fmtFloat(e.nmean)))
		s.WriteString(row("density", fmtFloat(e.density)))
		s.WriteString(row("bistability", fmtFloat(e.bistability)+" bits"))
		s.WriteString(labelStyle.Render("fill") + Meter(e.density, 20) + "\n")
	}
	s.WriteString(helpStyle.Render("Tab:Param ↑↓:Tune R:Reset ?:Help Q:Quit"))
	stats := panelStyle.Render(s.String())

	var g strings.Builder
	if e.err == nil && len(e.dist) > 1 {
		g.WriteString(graphStyle.Render(Chart(e.dist, "P(N)", 8)) + "\n")
	}
	g.WriteString(titleStyle.Render("r1(x)") + "\n")
	g.WriteString(e.canvas.String())
	graphs := panelStyle.Render(g.String())

	layout := lipgloss.JoinHorizontal(lipgloss.Top, stats, graphs)
	if e.showHelp {
		return panelStyle.Render(helpText) + "\n" + layout
	}
	return layout
}

const helpText = `Tab        select next parameter
Shift+Tab  select previous parameter
Up/K       u +0.25, beta x1.1, L +1
Down/J     u -0.25, beta /1.1, L -1
R          reset
?          toggle this help
Q          quit`
