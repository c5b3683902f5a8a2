package qfactor

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by Extract.
var (
	ErrInsufficientData = errors.New("qfactor: need at least 3 samples")
	ErrNotMonotonic     = errors.New("qfactor: frequency grid not strictly increasing")
	ErrNoPassband       = errors.New("qfactor: no passband found")
)

// defaultDropDB is the band-edge criterion: half-power points.
const defaultDropDB = 3.0

// DefinitionPeakCentered tags reports whose Q uses the peak frequency as
// center, matching the article's tables. Textbook Q uses the geometric
// mean of the flanks; that value is reported too but never enters Q.
const DefinitionPeakCentered = "peak-centered"

// Report describes one extracted passband.
type Report struct {
	// CenterFreq is the peak frequency; the numerator of Q.
	CenterFreq float64
	// GeometricCenter is sqrt(FLow*FHigh), the textbook alternative.
	// Zero when either flank is missing.
	GeometricCenter float64
	// PeakDB is the magnitude at CenterFreq.
	PeakDB float64

	FLow       float64
	FHigh      float64
	FLowFound  bool
	FHighFound bool

	// Bandwidth and Q are zero unless both flanks were found.
	Bandwidth float64
	Q         float64

	// Definition names the center convention Q uses.
	Definition string
}

// FlankError reports a passband whose -3 dB edge could not be located on
// one or both sides within the data range. Partial carries whatever was
// found, so an asymmetric passband (e.g. a low-pass framed as a one-sided
// bandpass) still yields its usable edge.
type FlankError struct {
	Missing string // "low", "high" or "both"
	Partial Report
}

func (e *FlankError) Error() string {
	return fmt.Sprintf("qfactor: %s-side -3 dB flank not found within data range (peak %g Hz)",
		e.Missing, e.Partial.CenterFreq)
}

func (e *FlankError) Unwrap() error { return ErrNoPassband }

// Option configures Extract.
type Option func(*config)

type config struct {
	lo, hi float64
	drop   float64
}

// WithRange restricts the peak search to frequencies in [lo, hi].
// Flank scanning still runs over the full data range.
func WithRange(lo, hi float64) Option {
	return func(c *config) {
		c.lo = lo
		c.hi = hi
	}
}

// WithEdgeDrop overrides the band-edge criterion (default 3 dB below peak).
func WithEdgeDrop(db float64) Option {
	return func(c *config) {
		if db > 0 {
			c.drop = db
		}
	}
}

// Extract locates the passband of a magnitude curve.
//
// The peak is the maximum magnitude inside the search range; the flanks
// are the first crossings of peak-3 dB scanning outward, with the exact
// edge linearly interpolated between the bracketing samples. When a flank
// never crosses within the data, Extract returns the partial report along
// with a *FlankError (which matches ErrNoPassband): a one-sided curve must
// not produce a plausible-looking Q.
func Extract(freq, magDB []float64, opts ...Option) (Report, error) {
	cfg := config{lo: math.Inf(-1), hi: math.Inf(1), drop: defaultDropDB}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(freq) < 3 || len(magDB) != len(freq) {
		return Report{}, fmt.Errorf("%w: %d/%d", ErrInsufficientData, len(freq), len(magDB))
	}
	for i := 1; i < len(freq); i++ {
		if freq[i] <= freq[i-1] {
			return Report{}, fmt.Errorf("%w: sample %d", ErrNotMonotonic, i)
		}
	}

	lo, hi := searchWindow(freq, cfg.lo, cfg.hi)
	if hi-lo+1 < 3 {
		return Report{}, fmt.Errorf("%w: %d samples in search range", ErrInsufficientData, hi-lo+1)
	}

	peak := lo + floats.MaxIdx(magDB[lo:hi+1])
	target := magDB[peak] - cfg.drop

	rep := Report{
		CenterFreq: freq[peak],
		PeakDB:     magDB[peak],
		Definition: DefinitionPeakCentered,
	}

	rep.FLow, rep.FLowFound = scanLeft(freq, magDB, peak, target)
	rep.FHigh, rep.FHighFound = scanRight(freq, magDB, peak, target)

	if !rep.FLowFound || !rep.FHighFound {
		missing := "both"
		switch {
		case rep.FLowFound:
			missing = "high"
		case rep.FHighFound:
			missing = "low"
		}
		return rep, &FlankError{Missing: missing, Partial: rep}
	}

	rep.Bandwidth = rep.FHigh - rep.FLow
	rep.GeometricCenter = math.Sqrt(rep.FLow * rep.FHigh)
	rep.Q = rep.CenterFreq / rep.Bandwidth
	return rep, nil
}

// searchWindow returns the inclusive index range of freq within [lo, hi].
func searchWindow(freq []float64, lo, hi float64) (int, int) {
	i, j := 0, len(freq)-1
	for i <= j && freq[i] < lo {
		i++
	}
	for j >= i && freq[j] > hi {
		j--
	}
	if i > j {
		return 0, -1
	}
	return i, j
}

func scanLeft(freq, magDB []float64, peak int, target float64) (float64, bool) {
	i := peak
	for i > 0 && magDB[i] > target {
		i--
	}
	if magDB[i] > target {
		return 0, false // ran off the left edge still above target
	}
	return interpolateEdge(freq[i], magDB[i], freq[i+1], magDB[i+1], target), true
}

func scanRight(freq, magDB []float64, peak int, target float64) (float64, bool) {
	n := len(freq)
	i := peak
	for i < n-1 && magDB[i] > target {
		i++
	}
	if magDB[i] > target {
		return 0, false
	}
	return interpolateEdge(freq[i-1], magDB[i-1], freq[i], magDB[i], target), true
}

// interpolateEdge solves the crossing of target between two samples.
func interpolateEdge(x0, y0, x1, y1, target float64) float64 {
	if y1 == y0 {
		return x0
	}
	return x0 + (target-y0)*(x1-x0)/(y1-y0)
}
