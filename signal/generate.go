// Package signal synthesizes the idealized guitar waveforms that accompany
// simulated circuit output in rendered figures.
package signal

import (
	"fmt"
	"math"
)

// Generator creates deterministic signals from a shared sample rate.
type Generator struct {
	sampleRate float64
}

// NewGenerator creates a signal generator for the given sample rate in Hz.
func NewGenerator(sampleRate float64) (*Generator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("signal: sample rate must be > 0: %f", sampleRate)
	}
	return &Generator{sampleRate: sampleRate}, nil
}

// SampleRate returns the configured sample rate in Hz.
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// GuitarNote generates a plucked-note approximation: fundamental plus
// second and third harmonic, with a pick-attack envelope. The result is
// normalized to the given amplitude.
func (g *Generator) GuitarNote(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: note samples must be > 0: %d", samples)
	}
	if freqHz <= 0 {
		return nil, fmt.Errorf("signal: note frequency must be > 0: %f", freqHz)
	}

	out := make([]float64, samples)
	w := 2 * math.Pi * freqHz / g.sampleRate
	for i := range out {
		t := float64(i) / g.sampleRate
		phase := w * float64(i)
		v := math.Sin(phase) + 0.25*math.Sin(2*phase) + 0.15*math.Sin(3*phase)
		env := 1 - math.Exp(-50*t)
		out[i] = 0.6 * env * v
	}
	return Normalize(out, amplitude)
}

// TimeAxis returns sample instants in seconds for the given length.
func (g *Generator) TimeAxis(samples int) []float64 {
	out := make([]float64, samples)
	for i := range out {
		out[i] = float64(i) / g.sampleRate
	}
	return out
}

// Rectify returns the full-wave rectified signal, the frequency-doubling
// core of an octave-up fuzz.
func Rectify(data []float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = math.Abs(v)
	}
	return out
}

// Shape applies a static transfer curve: gain, then DC offset, then a
// symmetric hard clip at +/- clip.
func Shape(data []float64, gain, offset, clip float64) ([]float64, error) {
	if clip <= 0 {
		return nil, fmt.Errorf("signal: clip level must be > 0: %f", clip)
	}

	out := make([]float64, len(data))
	for i, v := range data {
		y := v*gain + offset
		if y > clip {
			y = clip
		} else if y < -clip {
			y = -clip
		}
		out[i] = y
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
