package trace

import (
	"errors"
	"testing"
)

func TestBindingResolution(t *testing.T) {
	tr := &Trace{
		XName: "frequency",
		X:     []float64{10, 20},
		Columns: []Column{
			{Name: "Real(v(out))", Data: []float64{1, 2}},
			{Name: "im", Data: []float64{3, 4}},
		},
	}

	tests := []struct {
		name    string
		binding Binding
		want    float64 // first element of the bound column
		wantErr bool
	}{
		{"exact", Binding{Name: "im"}, 3, false},
		{"case-insensitive", Binding{Name: "IM"}, 3, false},
		{"alias", Binding{Name: "re", Aliases: []string{"real(v(out))"}}, 1, false},
		{"missing", Binding{Name: "re", Aliases: []string{"nope"}}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.binding.Bind(tr)
			if tt.wantErr {
				if !errors.Is(err, ErrColumnMissing) {
					t.Errorf("err = %v, want ErrColumnMissing", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if data[0] != tt.want {
				t.Errorf("bound[0] = %v, want %v", data[0], tt.want)
			}
		})
	}
}

func TestComplexSchemaBind(t *testing.T) {
	tr := &Trace{
		XName: "frequency",
		X:     []float64{10, 20},
		Columns: []Column{
			{Name: "real(v(out))", Data: []float64{1, 2}},
			{Name: "imag(v(out))", Data: []float64{-1, -2}},
		},
	}

	re, im, err := DefaultComplexSchema().Bind(tr)
	if err != nil {
		t.Fatal(err)
	}
	if re[1] != 2 || im[1] != -2 {
		t.Errorf("bound (%v, %v), want (2, -2)", re[1], im[1])
	}
}

func TestComplexSchemaBindMissingPart(t *testing.T) {
	tr := &Trace{
		XName:   "frequency",
		X:       []float64{10, 20},
		Columns: []Column{{Name: "re", Data: []float64{1, 2}}},
	}

	_, _, err := ComplexSchema{
		Re: Binding{Name: "re"},
		Im: Binding{Name: "im"},
	}.Bind(tr)
	if !errors.Is(err, ErrColumnMissing) {
		t.Errorf("err = %v, want ErrColumnMissing", err)
	}
}
