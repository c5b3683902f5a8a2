package window

import (
	"math"
	"testing"
)

func TestGenerateSymmetric(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
	}{
		{"rectangular", TypeRectangular},
		{"hann", TypeHann},
		{"hamming", TypeHamming},
		{"blackman", TypeBlackman},
		{"flattop", TypeFlatTop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const n = 65
			w := Generate(tt.typ, n)
			if len(w) != n {
				t.Fatalf("len = %d, want %d", len(w), n)
			}

			// Symmetric form mirrors around the center sample.
			for i := 0; i < n/2; i++ {
				if math.Abs(w[i]-w[n-1-i]) > 1e-12 {
					t.Fatalf("asymmetric at %d: %v vs %v", i, w[i], w[n-1-i])
				}
			}

			// Center sample is the peak, close to unity for these types.
			if math.Abs(w[n/2]-1) > 0.01 {
				t.Errorf("center = %v, want ~1", w[n/2])
			}
		})
	}
}

func TestGenerateHannValues(t *testing.T) {
	w := Generate(TypeHann, 5)
	want := []float64{0, 0.5, 1, 0.5, 0}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Errorf("w[%d] = %v, want %v", i, w[i], want[i])
		}
	}
}

func TestGeneratePeriodic(t *testing.T) {
	// Periodic Hann of length n equals the first n samples of the
	// symmetric window of length n+1.
	const n = 32
	p := Generate(TypeHann, n, WithPeriodic())
	s := Generate(TypeHann, n+1)
	for i := 0; i < n; i++ {
		if math.Abs(p[i]-s[i]) > 1e-12 {
			t.Fatalf("sample %d: periodic %v, symmetric %v", i, p[i], s[i])
		}
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Errorf("Generate(0) = %v, want nil", w)
	}
	if w := Generate(TypeHann, -3); w != nil {
		t.Errorf("Generate(-3) = %v, want nil", w)
	}
}

func TestApply(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	Apply(TypeHann, buf)
	want := []float64{0, 1, 2, 1, 0}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestNamedConstructors(t *testing.T) {
	for _, tt := range []struct {
		name string
		fn   func(int, ...Option) ([]float64, error)
	}{
		{"hann", Hann},
		{"hamming", Hamming},
		{"blackman", Blackman},
		{"flattop", FlatTop},
	} {
		t.Run(tt.name, func(t *testing.T) {
			w, err := tt.fn(16)
			if err != nil {
				t.Fatal(err)
			}
			if len(w) != 16 {
				t.Fatalf("len = %d, want 16", len(w))
			}

			if _, err := tt.fn(0); err == nil {
				t.Error("size 0 accepted")
			}
		})
	}
}

func TestEquivalentNoiseBandwidth(t *testing.T) {
	// Periodic form converges to the tabulated ENBW for large n.
	tests := []struct {
		typ  Type
		want float64
	}{
		{TypeRectangular, 1.0},
		{TypeHann, 1.5},
		{TypeHamming, 1.3628},
		{TypeBlackman, 1.7268},
	}

	for _, tt := range tests {
		w := Generate(tt.typ, 4096, WithPeriodic())
		enbw, err := EquivalentNoiseBandwidth(w)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(enbw-tt.want) > 0.005 {
			t.Errorf("%s ENBW = %v, want %v", Info(tt.typ).Name, enbw, tt.want)
		}
	}

	if _, err := EquivalentNoiseBandwidth(nil); err == nil {
		t.Error("empty coefficients accepted")
	}
}

func TestCoherentGain(t *testing.T) {
	w := Generate(TypeHann, 4096, WithPeriodic())
	cg, err := CoherentGain(w)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cg-0.5) > 1e-3 {
		t.Errorf("Hann coherent gain = %v, want 0.5", cg)
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 2, 3}
	coeffs := []float64{0.5, 0.5, 0.5}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.5, 1, 1.5}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if samples[0] != 1 {
		t.Error("input modified")
	}

	if _, err := ApplyCoefficients(samples, coeffs[:2]); err == nil {
		t.Error("length mismatch accepted")
	}

	if err := ApplyCoefficientsInPlace(samples, coeffs); err != nil {
		t.Fatal(err)
	}
	if samples[0] != 0.5 {
		t.Errorf("in-place samples[0] = %v, want 0.5", samples[0])
	}
}
