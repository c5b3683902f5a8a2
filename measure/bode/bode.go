package bode

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spice/trace"
)

// Errors returned by bode functions.
var (
	ErrEmptyInput      = errors.New("bode: empty input")
	ErrLengthMismatch  = errors.New("bode: column lengths disagree")
	ErrGridMismatch    = errors.New("bode: frequency grids disagree")
	ErrZeroDenominator = errors.New("bode: zero-magnitude denominator sample")
)

// magFloor guards log10 against an exactly-zero numerator magnitude.
const magFloor = 1e-15

// GridError reports the first sample at which two frequency grids that
// should be identical diverge beyond the configured tolerance.
type GridError struct {
	Index int
	A, B  float64
}

func (e *GridError) Error() string {
	return fmt.Sprintf("bode: frequency grids disagree at sample %d: %g vs %g", e.Index, e.A, e.B)
}

func (e *GridError) Unwrap() error { return ErrGridMismatch }

// ZeroDenominatorError reports a denominator sample with exactly zero
// magnitude. Index and frequency locate the artifact in the sweep output.
type ZeroDenominatorError struct {
	Index int
	Freq  float64
}

func (e *ZeroDenominatorError) Error() string {
	return fmt.Sprintf("bode: zero-magnitude denominator at sample %d (%g Hz)", e.Index, e.Freq)
}

func (e *ZeroDenominatorError) Unwrap() error { return ErrZeroDenominator }

// Result holds Bode data over a shared frequency grid. It is immutable
// once computed; downstream renderers read it, nothing writes it.
type Result struct {
	Freq        []float64
	MagnitudeDB []float64
	PhaseDeg    []float64
}

// Option configures the reduction.
type Option func(*config)

type config struct {
	gridTol float64
}

// WithGridTolerance sets the relative per-sample tolerance for grid
// agreement. The default is 0: after cleaning, two sweeps of the same deck
// produce bit-identical grids, and anything else deserves a failure.
func WithGridTolerance(rel float64) Option {
	return func(c *config) {
		if rel >= 0 {
			c.gridTol = rel
		}
	}
}

// Quotient computes H = A/B per sample and reduces it to magnitude (dB)
// and unwrapped phase (degrees) over the shared frequency grid.
//
// The two grids must agree in length and, per sample, within the configured
// tolerance; otherwise a *GridError is returned. A denominator sample with
// exactly zero magnitude yields a *ZeroDenominatorError.
func Quotient(freqA, aRe, aIm, freqB, bRe, bIm []float64, opts ...Option) (Result, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := len(freqA)
	if n == 0 {
		return Result{}, ErrEmptyInput
	}
	if len(aRe) != n || len(aIm) != n {
		return Result{}, fmt.Errorf("%w: numerator %d/%d over grid %d", ErrLengthMismatch, len(aRe), len(aIm), n)
	}
	if len(freqB) != n {
		return Result{}, fmt.Errorf("%w: %d vs %d samples", ErrGridMismatch, n, len(freqB))
	}
	if len(bRe) != n || len(bIm) != n {
		return Result{}, fmt.Errorf("%w: denominator %d/%d over grid %d", ErrLengthMismatch, len(bRe), len(bIm), n)
	}

	for i := 0; i < n; i++ {
		if !gridAgrees(freqA[i], freqB[i], cfg.gridTol) {
			return Result{}, &GridError{Index: i, A: freqA[i], B: freqB[i]}
		}
	}

	magA := make([]float64, n)
	magB := make([]float64, n)
	vecmath.Magnitude(magA, aRe, aIm)
	vecmath.Magnitude(magB, bRe, bIm)

	magDB := make([]float64, n)
	phase := make([]float64, n)
	for i := 0; i < n; i++ {
		if magB[i] == 0 {
			return Result{}, &ZeroDenominatorError{Index: i, Freq: freqA[i]}
		}
		magDB[i] = 20 * math.Log10(math.Max(magA[i]/magB[i], magFloor))

		// arg(A/B) = atan2 of the ratio's parts; the positive divisor
		// |B|^2 cancels out of the quadrant.
		re := aRe[i]*bRe[i] + aIm[i]*bIm[i]
		im := aIm[i]*bRe[i] - aRe[i]*bIm[i]
		phase[i] = math.Atan2(im, re)
	}

	unwrapInPlace(phase)
	toDegrees(phase)

	return Result{
		Freq:        append([]float64(nil), freqA...),
		MagnitudeDB: magDB,
		PhaseDeg:    phase,
	}, nil
}

// FromParts reduces a single complex trace (no ratio) to Bode data.
// Used when the deck already wrote the quantity of interest, e.g. v(out)
// of a unit-input AC sweep.
func FromParts(freq, re, im []float64) (Result, error) {
	n := len(freq)
	if n == 0 {
		return Result{}, ErrEmptyInput
	}
	if len(re) != n || len(im) != n {
		return Result{}, fmt.Errorf("%w: %d/%d over grid %d", ErrLengthMismatch, len(re), len(im), n)
	}

	mag := make([]float64, n)
	vecmath.Magnitude(mag, re, im)

	magDB := make([]float64, n)
	phase := make([]float64, n)
	for i := 0; i < n; i++ {
		magDB[i] = 20 * math.Log10(math.Max(mag[i], magFloor))
		phase[i] = math.Atan2(im[i], re[i])
	}

	unwrapInPlace(phase)
	toDegrees(phase)

	return Result{
		Freq:        append([]float64(nil), freq...),
		MagnitudeDB: magDB,
		PhaseDeg:    phase,
	}, nil
}

// FromTraces binds the complex schema on two cleaned traces and computes
// their quotient.
func FromTraces(a, b *trace.Trace, s trace.ComplexSchema, opts ...Option) (Result, error) {
	aRe, aIm, err := s.Bind(a)
	if err != nil {
		return Result{}, err
	}
	bRe, bIm, err := s.Bind(b)
	if err != nil {
		return Result{}, err
	}
	return Quotient(a.X, aRe, aIm, b.X, bRe, bIm, opts...)
}

func gridAgrees(a, b, relTol float64) bool {
	if a == b {
		return true
	}
	if relTol == 0 {
		return false
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= relTol*scale
}

// unwrapInPlace removes +/-2*pi discontinuities so consecutive samples
// differ by less than pi unless the underlying step really is larger.
func unwrapInPlace(phase []float64) {
	offset := 0.0
	prev := phase[0]
	for i := 1; i < len(phase); i++ {
		d := phase[i] - prev
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		prev = phase[i]
		phase[i] += offset
	}
}

func toDegrees(phase []float64) {
	for i := range phase {
		phase[i] *= 180 / math.Pi
	}
}
