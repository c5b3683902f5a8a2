package trace

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func makeTrace(x []float64, y []float64) *Trace {
	return &Trace{
		XName:   "frequency",
		X:       x,
		Columns: []Column{{Name: "v", Data: y}},
	}
}

func TestCleanSortsAscending(t *testing.T) {
	tr := makeTrace(
		[]float64{100, 10, 1000, 1},
		[]float64{2, 1, 3, 0},
	)

	out, err := Clean(tr)
	if err != nil {
		t.Fatal(err)
	}

	wantX := []float64{1, 10, 100, 1000}
	wantY := []float64{0, 1, 2, 3}
	if !reflect.DeepEqual(out.X, wantX) {
		t.Errorf("X = %v, want %v", out.X, wantX)
	}
	if !reflect.DeepEqual(out.Columns[0].Data, wantY) {
		t.Errorf("v = %v, want %v", out.Columns[0].Data, wantY)
	}
}

func TestCleanStrictlyIncreasing(t *testing.T) {
	tr := makeTrace(
		[]float64{10, 20, 20, 5, 10, 30},
		[]float64{1, 2, 3, 4, 5, 6},
	)

	out, err := Clean(tr)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < out.Len(); i++ {
		if out.X[i] <= out.X[i-1] {
			t.Fatalf("X not strictly increasing at %d: %v", i, out.X)
		}
	}
	if !IsClean(out) {
		t.Error("IsClean(cleaned) = false")
	}
}

func TestCleanLastSeenWins(t *testing.T) {
	// Two sweep blocks overlap at x=20 and x=10; the later rows supersede.
	tr := makeTrace(
		[]float64{10, 20, 10, 20, 30},
		[]float64{1, 2, 11, 22, 3},
	)

	out, err := Clean(tr)
	if err != nil {
		t.Fatal(err)
	}

	wantX := []float64{10, 20, 30}
	wantY := []float64{11, 22, 3}
	if !reflect.DeepEqual(out.X, wantX) {
		t.Errorf("X = %v, want %v", out.X, wantX)
	}
	if !reflect.DeepEqual(out.Columns[0].Data, wantY) {
		t.Errorf("v = %v, want %v (last block must win)", out.Columns[0].Data, wantY)
	}
}

func TestCleanIdempotent(t *testing.T) {
	tr := makeTrace(
		[]float64{30, 10, 20, 10},
		[]float64{3, 1, 2, 4},
	)

	once, err := Clean(tr)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Clean(once)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Clean not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestCleanDropsNonFinite(t *testing.T) {
	tr := makeTrace(
		[]float64{math.NaN(), 10, math.Inf(1), 20},
		[]float64{9, 1, 9, 2},
	)

	out, err := Clean(tr)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 2 {
		t.Errorf("Len = %d, want 2", out.Len())
	}
}

func TestCleanPositiveX(t *testing.T) {
	tr := makeTrace(
		[]float64{0, -5, 10, 20},
		[]float64{9, 9, 1, 2},
	)

	out, err := Clean(tr, WithPositiveX())
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 2 || out.X[0] != 10 {
		t.Errorf("X = %v, want [10 20]", out.X)
	}
}

func TestCleanInsufficientData(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
	}{
		{"single sample", []float64{10}},
		{"all duplicates", []float64{10, 10, 10}},
		{"all non-finite", []float64{math.NaN(), math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := make([]float64, len(tt.x))
			_, err := Clean(makeTrace(tt.x, y))
			if !errors.Is(err, ErrInsufficientData) {
				t.Errorf("err = %v, want ErrInsufficientData", err)
			}
		})
	}
}

func TestCleanLeavesInputUntouched(t *testing.T) {
	x := []float64{20, 10}
	tr := makeTrace(x, []float64{2, 1})

	if _, err := Clean(tr); err != nil {
		t.Fatal(err)
	}
	if x[0] != 20 {
		t.Error("Clean mutated its input")
	}
}
