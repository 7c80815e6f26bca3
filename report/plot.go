package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	pso "github.com/RodrigoJC20/PSO-Rastrigin"
)

// Plot buffers the per-sweep global best and renders a convergence line
// chart to Path when closed.
type Plot struct {
	Path string
	xys  plotter.XYs
}

func NewPlot(path string) *Plot {
	return &Plot{Path: path}
}

func (p *Plot) Record(iter int, best pso.Point) error {
	p.xys = append(p.xys, plotter.XY{X: float64(iter), Y: best.Val})
	return nil
}

// Close renders the chart.  Nothing is written for a run with no sweeps.
func (p *Plot) Close() error {
	if len(p.xys) == 0 {
		return nil
	}

	pl := plot.New()
	pl.Title.Text = "PSO convergence"
	pl.X.Label.Text = "iteration"
	pl.Y.Label.Text = "global best fitness"

	line, err := plotter.NewLine(p.xys)
	if err != nil {
		return fmt.Errorf("building convergence plot: %w", err)
	}
	pl.Add(line)
	pl.Legend.Add("gbest", line)

	if err := pl.Save(6*vg.Inch, 4*vg.Inch, p.Path); err != nil {
		return fmt.Errorf("saving convergence plot: %w: %w", IOErr, err)
	}
	return nil
}
