package render

import (
	"strconv"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-spice/spice"
)

// maxFourierBars bounds how many harmonics the bar chart shows.
const maxFourierBars = 10

// FourierBars renders parsed Fourier analysis output as a harmonic
// magnitude bar chart in dB.
func FourierBars(rep *spice.FourierReport, title string, opts ...Option) ([]byte, error) {
	cfg := applyOptions(opts)

	if rep == nil || len(rep.Harmonics) == 0 {
		return nil, ErrNoCurves
	}

	rows := rep.Harmonics
	if len(rows) > maxFourierBars {
		rows = rows[:maxFourierBars]
	}

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, h := range rows {
		values[i] = h.MagnitudeDB
		labels[i] = strconv.Itoa(h.N)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0

	p := newPlot(title, "Harmonic", "Magnitude (dB)")
	p.Add(bars)
	p.NominalX(labels...)

	return writeSVG(p, cfg)
}
