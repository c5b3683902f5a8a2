package render

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/cwbudde/algo-spice/spice"
)

// TempBias renders a stepped-temperature bias sweep, one line-and-marker
// series per measured node.
func TempBias(tb *spice.TempBias, title string, opts ...Option) ([]byte, error) {
	cfg := applyOptions(opts)

	if tb == nil || len(tb.TempC) == 0 || len(tb.Series) == 0 {
		return nil, ErrNoCurves
	}

	p := newPlot(title, "Temperature (°C)", "Voltage (V)")

	for i, series := range tb.Series {
		xys := make(plotter.XYs, len(tb.TempC))
		for j := range tb.TempC {
			xys[j] = plotter.XY{X: tb.TempC[j], Y: series.Values[j]}
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("render: series %s: %w", series.Node, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)

		p.Add(line, points)
		p.Legend.Add(series.Node, line, points)
	}

	return writeSVG(p, cfg)
}
