package signal

import (
	"math"
	"testing"
)

func TestNewGenerator(t *testing.T) {
	if _, err := NewGenerator(0); err == nil {
		t.Error("sample rate 0 accepted")
	}
	if _, err := NewGenerator(-44100); err == nil {
		t.Error("negative sample rate accepted")
	}

	g, err := NewGenerator(48000)
	if err != nil {
		t.Fatal(err)
	}
	if g.SampleRate() != 48000 {
		t.Errorf("SampleRate = %v, want 48000", g.SampleRate())
	}
}

func TestSine(t *testing.T) {
	g, err := NewGenerator(1000)
	if err != nil {
		t.Fatal(err)
	}

	x, err := g.Sine(250, 1, 5)
	if err != nil {
		t.Fatal(err)
	}

	// Quarter-rate sine cycles 0, 1, 0, -1, 0.
	want := []float64{0, 1, 0, -1, 0}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-12 {
			t.Errorf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}

	if _, err := g.Sine(250, 1, 0); err == nil {
		t.Error("zero samples accepted")
	}
}

func TestGuitarNote(t *testing.T) {
	g, err := NewGenerator(44100)
	if err != nil {
		t.Fatal(err)
	}

	x, err := g.GuitarNote(110, 1, 8192)
	if err != nil {
		t.Fatal(err)
	}
	if len(x) != 8192 {
		t.Fatalf("len = %d, want 8192", len(x))
	}

	// Normalized to unit peak.
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-1) > 1e-12 {
		t.Errorf("peak = %v, want 1", peak)
	}

	// Attack envelope keeps the first millisecond quieter than steady state.
	earlyPeak := 0.0
	for _, v := range x[:44] {
		if a := math.Abs(v); a > earlyPeak {
			earlyPeak = a
		}
	}
	if earlyPeak >= 0.95 {
		t.Errorf("early peak = %v, want attack below steady state", earlyPeak)
	}

	if _, err := g.GuitarNote(0, 1, 16); err == nil {
		t.Error("zero frequency accepted")
	}
	if _, err := g.GuitarNote(110, 1, 0); err == nil {
		t.Error("zero samples accepted")
	}
}

func TestTimeAxis(t *testing.T) {
	g, err := NewGenerator(1000)
	if err != nil {
		t.Fatal(err)
	}

	ts := g.TimeAxis(4)
	want := []float64{0, 0.001, 0.002, 0.003}
	for i := range want {
		if math.Abs(ts[i]-want[i]) > 1e-15 {
			t.Errorf("ts[%d] = %v, want %v", i, ts[i], want[i])
		}
	}
}

func TestRectify(t *testing.T) {
	out := Rectify([]float64{-1, -0.5, 0, 0.5, 1})
	want := []float64{1, 0.5, 0, 0.5, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestShape(t *testing.T) {
	in := []float64{-1, -0.25, 0, 0.25, 1}

	out, err := Shape(in, 2, -0.2, 1.2)
	if err != nil {
		t.Fatal(err)
	}

	// gain 2, offset -0.2, clip at 1.2.
	want := []float64{-1.2, -0.7, -0.2, 0.3, 1.2}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if in[0] != -1 {
		t.Error("input modified")
	}

	if _, err := Shape(in, 2, 0, 0); err == nil {
		t.Error("zero clip accepted")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-0.5, 0.25, 1}, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{-0.4, 0.2, 0.8}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}

	// Silence stays silence.
	out, err = Normalize([]float64{0, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("silence normalized to %v", out)
	}

	if _, err := Normalize(nil, 1); err == nil {
		t.Error("empty input accepted")
	}
	if _, err := Normalize([]float64{1}, -1); err == nil {
		t.Error("negative target accepted")
	}
}
