package render

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/plot/plotter"

	"github.com/cwbudde/algo-spice/dsp/window"
)

// ErrTooShort reports that too few samples were supplied for a spectrum.
var ErrTooShort = errors.New("render: need at least 4 samples for a spectrum")

// maxSpectrumSamples bounds the analysis block for very long transients.
const maxSpectrumSamples = 65536

// Spectrum renders the Hann-windowed magnitude spectrum of a sampled
// waveform in dBFS. The block is zero-padded to a power of two;
// WithXLimit narrows the frequency axis to the band of interest.
func Spectrum(samples []float64, sampleRate float64, title string, opts ...Option) ([]byte, error) {
	cfg := applyOptions(opts)

	if len(samples) < 4 {
		return nil, ErrTooShort
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("render: sample rate must be > 0: %f", sampleRate)
	}

	n := len(samples)
	if n > maxSpectrumSamples {
		n = maxSpectrumSamples
	}

	windowed := make([]float64, n)
	copy(windowed, samples[:n])
	window.Apply(window.TypeHann, windowed)

	fftSize := nextPowerOfTwo(n)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("render: creating FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range windowed {
		padded[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("render: forward FFT: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := 0; i < bins; i++ {
		re[i] = real(freq[i])
		im[i] = imag(freq[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	xys := make(plotter.XYs, bins)
	binWidth := sampleRate / float64(fftSize)
	for i := 0; i < bins; i++ {
		xys[i] = plotter.XY{
			X: float64(i) * binWidth,
			Y: 20 * math.Log10(mag[i]+1e-12),
		}
	}

	p := newPlot(title, "Frequency (Hz)", "Magnitude (dBFS)")
	if err := addLine(p, xys, 0); err != nil {
		return nil, err
	}

	return writeSVG(p, cfg)
}

func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
