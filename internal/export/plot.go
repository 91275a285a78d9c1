// Package export writes model curves to image files.
package export

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var (
	ErrNoSeries     = errors.New("export: no series to plot")
	ErrBadSeries    = errors.New("export: x and y lengths differ")
	ErrUnknownFormat = errors.New("export: unsupported file format")
)

const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// Series is one named curve.
type Series struct {
	Name string
	X, Y []float64
}

// Curves draws every series as a line on one set of axes and saves the
// plot to path. The image format is taken from the file extension.
// Points with a non-finite coordinate are skipped.
func Curves(path, title, xlabel, ylabel string, series []Series) error {
	if len(series) == 0 {
		return ErrNoSeries
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	for i, s := range series {
		pts, err := points(s)
		if err != nil {
			return err
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("export: series %q: %w", s.Name, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}
	p.Legend.Top = true

	return p.Save(Width, Height, path)
}

func points(s Series) (plotter.XYs, error) {
	if len(s.X) != len(s.Y) {
		return nil, fmt.Errorf("%w: %q has %d x and %d y", ErrBadSeries, s.Name, len(s.X), len(s.Y))
	}
	pts := make(plotter.XYs, 0, len(s.X))
	for i := range s.X {
		if !finite(s.X[i]) || !finite(s.Y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: s.X[i], Y: s.Y[i]})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: %q has no finite points", ErrNoSeries, s.Name)
	}
	return pts, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
