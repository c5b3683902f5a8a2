package bode

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spice/internal/testutil"
	"github.com/cwbudde/algo-spice/trace"
)

// phasorSweep builds A(f) = e^{j*theta(f)} over a log grid.
func phasorSweep(n int, theta func(i int) float64) (freq, re, im []float64) {
	freq = make([]float64, n)
	re = make([]float64, n)
	im = make([]float64, n)
	for i := 0; i < n; i++ {
		freq[i] = 10 * math.Pow(10, float64(i)/float64(n-1)*3) // 10 Hz .. 10 kHz
		re[i] = math.Cos(theta(i))
		im[i] = math.Sin(theta(i))
	}
	return freq, re, im
}

func TestQuotientConjugate(t *testing.T) {
	// B = conj(A): |A/B| = 1 everywhere, arg(A/B) = 2*arg(A).
	theta := func(i int) float64 { return 0.3 + 0.02*float64(i) }
	freq, re, im := phasorSweep(64, theta)

	negIm := make([]float64, len(im))
	for i, v := range im {
		negIm[i] = -v
	}

	res, err := Quotient(freq, re, im, freq, re, negIm)
	if err != nil {
		t.Fatal(err)
	}

	for i, db := range res.MagnitudeDB {
		if math.Abs(db) > 1e-9 {
			t.Fatalf("magnitude[%d] = %g dB, want 0 (|A|=|B|)", i, db)
		}
	}
	for i := range res.PhaseDeg {
		want := 2 * theta(i) * 180 / math.Pi
		if math.Abs(res.PhaseDeg[i]-want) > 1e-9 {
			t.Fatalf("phase[%d] = %g, want %g", i, res.PhaseDeg[i], want)
		}
	}
}

func TestQuotientZeroDenominator(t *testing.T) {
	freq := []float64{10, 100, 1000}
	one := []float64{1, 1, 1}
	bRe := []float64{1, 0, 1}
	bIm := []float64{0, 0, 0}

	_, err := Quotient(freq, one, bIm, freq, bRe, bIm)
	if !errors.Is(err, ErrZeroDenominator) {
		t.Fatalf("err = %v, want ErrZeroDenominator", err)
	}

	var zde *ZeroDenominatorError
	if !errors.As(err, &zde) {
		t.Fatal("error is not *ZeroDenominatorError")
	}
	if zde.Index != 1 || zde.Freq != 100 {
		t.Errorf("context = (%d, %g), want (1, 100)", zde.Index, zde.Freq)
	}
}

func TestQuotientGridMismatch(t *testing.T) {
	fA := []float64{10, 100, 1000}
	fB := []float64{10, 101, 1000}
	one := []float64{1, 1, 1}
	zero := []float64{0, 0, 0}

	_, err := Quotient(fA, one, zero, fB, one, zero)
	if !errors.Is(err, ErrGridMismatch) {
		t.Fatalf("err = %v, want ErrGridMismatch", err)
	}

	var ge *GridError
	if !errors.As(err, &ge) {
		t.Fatal("error is not *GridError")
	}
	if ge.Index != 1 {
		t.Errorf("Index = %d, want 1", ge.Index)
	}

	// The same grids pass under a loose relative tolerance.
	if _, err := Quotient(fA, one, zero, fB, one, zero, WithGridTolerance(0.05)); err != nil {
		t.Errorf("tolerant compare failed: %v", err)
	}
}

func TestQuotientLengthMismatch(t *testing.T) {
	freq := []float64{10, 100}
	_, err := Quotient(freq, []float64{1}, []float64{0, 0}, freq, []float64{1, 1}, []float64{0, 0})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestQuotientEmpty(t *testing.T) {
	_, err := Quotient(nil, nil, nil, nil, nil, nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}

func TestFromPartsMagnitude(t *testing.T) {
	freq := []float64{10, 100, 1000}
	re := []float64{1, 0.1, 0.01}
	im := []float64{0, 0, 0}

	res, err := FromParts(freq, re, im)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0, -20, -40}
	testutil.RequireSliceNearlyEqual(t, res.MagnitudeDB, want, 1e-9)
}

func TestPhaseUnwrapContinuity(t *testing.T) {
	// A phasor rotating through several full turns: raw atan2 wraps at
	// +/-180, the unwrapped phase must keep climbing monotonically.
	theta := func(i int) float64 { return float64(i) * 0.4 }
	freq, re, im := phasorSweep(128, theta)

	res, err := FromParts(freq, re, im)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(res.PhaseDeg); i++ {
		d := res.PhaseDeg[i] - res.PhaseDeg[i-1]
		if math.Abs(d-0.4*180/math.Pi) > 1e-6 {
			t.Fatalf("step %d = %g deg, want %g", i, d, 0.4*180/math.Pi)
		}
	}
}

func TestFromTraces(t *testing.T) {
	mk := func(re, im []float64) *trace.Trace {
		return &trace.Trace{
			XName: "frequency",
			X:     []float64{10, 100},
			Columns: []trace.Column{
				{Name: "re", Data: re},
				{Name: "im", Data: im},
			},
		}
	}
	a := mk([]float64{2, 2}, []float64{0, 0})
	b := mk([]float64{1, 1}, []float64{0, 0})

	res, err := FromTraces(a, b, trace.DefaultComplexSchema())
	if err != nil {
		t.Fatal(err)
	}

	wantDB := 20 * math.Log10(2)
	testutil.RequireSliceNearlyEqual(t, res.MagnitudeDB, []float64{wantDB, wantDB}, 1e-12)
}

func TestResultDoesNotAliasInput(t *testing.T) {
	freq := []float64{10, 100}
	re := []float64{1, 1}
	im := []float64{0, 0}

	res, err := FromParts(freq, re, im)
	if err != nil {
		t.Fatal(err)
	}

	freq[0] = 999
	if res.Freq[0] == 999 {
		t.Error("Result.Freq aliases the caller's slice")
	}
}
