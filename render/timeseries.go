package render

import (
	"fmt"

	"gonum.org/v1/plot/plotter"

	"github.com/cwbudde/algo-spice/trace"
)

// TimeSeries renders the named columns of a time-domain trace as an
// overlay figure with a millisecond x axis. An empty column list plots
// every column.
func TimeSeries(tr *trace.Trace, columns []string, title string, opts ...Option) ([]byte, error) {
	cfg := applyOptions(opts)

	if len(columns) == 0 {
		columns = tr.Names()
	}
	if len(columns) == 0 {
		return nil, ErrNoCurves
	}

	p := newPlot(title, "Time (ms)", "Amplitude")

	for i, name := range columns {
		col, err := tr.Column(name)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}

		xys := make(plotter.XYs, len(tr.X))
		for j := range tr.X {
			xys[j] = plotter.XY{X: tr.X[j] * 1e3, Y: col.Data[j]}
		}

		line, err := labeledLine(p, xys, i)
		if err != nil {
			return nil, err
		}
		if len(columns) > 1 {
			p.Legend.Add(col.Name, line)
		}
	}

	return writeSVG(p, cfg)
}
