// Package render turns traces, reports and log sweeps into publication
// SVG figures.
//
// Figures use the article's fixed sizes: 8 by 3 inches by default, or
// 3.25 by 2.2 inches in IEEE column format via WithIEEESize. Output is
// deterministic for identical input, so figures can be diffed across
// simulation runs.
package render

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Option configures figure rendering.
type Option func(*config)

type config struct {
	width   vg.Length
	height  vg.Length
	xMin    float64
	xMax    float64
	hasXLim bool
}

func defaultConfig() config {
	return config{
		width:  8 * vg.Inch,
		height: 3 * vg.Inch,
	}
}

// WithIEEESize selects the single-column IEEE figure format.
func WithIEEESize() Option {
	return func(c *config) {
		c.width = 3.25 * vg.Inch
		c.height = 2.2 * vg.Inch
	}
}

// WithXLimit restricts the x axis to [min, max].
func WithXLimit(min, max float64) Option {
	return func(c *config) {
		c.xMin = min
		c.xMax = max
		c.hasXLim = true
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

func writeSVG(p *plot.Plot, cfg config) ([]byte, error) {
	if cfg.hasXLim {
		p.X.Min = cfg.xMin
		p.X.Max = cfg.xMax
	}

	c := vgsvg.New(cfg.width, cfg.height)
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render: writing svg: %w", err)
	}
	return buf.Bytes(), nil
}
