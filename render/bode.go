package render

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/cwbudde/algo-spice/measure/bode"
	"github.com/cwbudde/algo-spice/overlay"
	"github.com/cwbudde/algo-spice/trace"
)

// ErrNoCurves reports that nothing renderable was supplied.
var ErrNoCurves = errors.New("render: no curves to draw")

// Bode renders a frequency response as two SVG figures, magnitude and
// phase, sharing a logarithmic frequency axis. Rows at non-positive
// frequencies are dropped; they cannot sit on a log axis.
func Bode(res bode.Result, title string, opts ...Option) (magSVG, phaseSVG []byte, err error) {
	cfg := applyOptions(opts)

	magXYs := positiveXYs(res.Freq, res.MagnitudeDB)
	phaseXYs := positiveXYs(res.Freq, res.PhaseDeg)
	if len(magXYs) == 0 {
		return nil, nil, ErrNoCurves
	}

	magPlot := newLogFreqPlot(title, "Magnitude (dB)")
	phasePlot := newLogFreqPlot(title, "Phase (°)")

	if err := addLine(magPlot, magXYs, 0); err != nil {
		return nil, nil, err
	}
	if err := addLine(phasePlot, phaseXYs, 0); err != nil {
		return nil, nil, err
	}

	magSVG, err = writeSVG(magPlot, cfg)
	if err != nil {
		return nil, nil, err
	}
	phaseSVG, err = writeSVG(phasePlot, cfg)
	if err != nil {
		return nil, nil, err
	}
	return magSVG, phaseSVG, nil
}

// OverlayBode renders one magnitude and one phase figure with a curve
// per labeled trace in the set, computed through the given column
// schema. Legend entries follow the set's insertion order. Curves keep
// their own frequency samples; no common grid is required.
func OverlayBode(set overlay.Set, schema trace.ComplexSchema, title string, opts ...Option) (magSVG, phaseSVG []byte, err error) {
	cfg := applyOptions(opts)

	if len(set.Entries) == 0 {
		return nil, nil, ErrNoCurves
	}

	magPlot := newLogFreqPlot(title, "Magnitude (dB)")
	phasePlot := newLogFreqPlot(title, "Phase (°)")

	for i, entry := range set.Entries {
		re, im, err := schema.Bind(entry.Trace)
		if err != nil {
			return nil, nil, fmt.Errorf("render: curve %s: %w", entry.Label, err)
		}

		res, err := bode.FromParts(entry.Trace.X, re, im)
		if err != nil {
			return nil, nil, fmt.Errorf("render: curve %s: %w", entry.Label, err)
		}

		magLine, err := labeledLine(magPlot, positiveXYs(res.Freq, res.MagnitudeDB), i)
		if err != nil {
			return nil, nil, fmt.Errorf("render: curve %s: %w", entry.Label, err)
		}
		magPlot.Legend.Add(entry.Label, magLine)

		phaseLine, err := labeledLine(phasePlot, positiveXYs(res.Freq, res.PhaseDeg), i)
		if err != nil {
			return nil, nil, fmt.Errorf("render: curve %s: %w", entry.Label, err)
		}
		phasePlot.Legend.Add(entry.Label, phaseLine)
	}

	magSVG, err = writeSVG(magPlot, cfg)
	if err != nil {
		return nil, nil, err
	}
	phaseSVG, err = writeSVG(phasePlot, cfg)
	if err != nil {
		return nil, nil, err
	}
	return magSVG, phaseSVG, nil
}

func newLogFreqPlot(title, yLabel string) *plot.Plot {
	p := newPlot(title, "Frequency (Hz)", yLabel)
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	return p
}

func positiveXYs(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(x))
	for i := range x {
		if x[i] <= 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: x[i], Y: y[i]})
	}
	return xys
}

func addLine(p *plot.Plot, xys plotter.XYs, idx int) error {
	_, err := labeledLine(p, xys, idx)
	return err
}

func labeledLine(p *plot.Plot, xys plotter.XYs, idx int) (*plotter.Line, error) {
	if len(xys) == 0 {
		return nil, ErrNoCurves
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("render: building line: %w", err)
	}
	line.Color = plotutil.Color(idx)
	p.Add(line)
	return line, nil
}
