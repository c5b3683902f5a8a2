package trace

// Binding names one column role and the spellings it may appear under.
// Resolution is exact first, then case-insensitive, then the aliases in
// order — once, at bind time. Downstream code works on the returned slices
// and never repeats the lookup.
type Binding struct {
	Name    string
	Aliases []string
}

// Bind resolves the binding against tr and returns the column data.
func (b Binding) Bind(tr *Trace) ([]float64, error) {
	col, err := tr.Column(b.Name)
	if err == nil {
		return col.Data, nil
	}
	for _, alt := range b.Aliases {
		if col, altErr := tr.Column(alt); altErr == nil {
			return col.Data, nil
		}
	}
	return nil, err
}

// ComplexSchema binds the real/imaginary column pair of a complex trace.
type ComplexSchema struct {
	Re Binding
	Im Binding
}

// Bind resolves both parts against tr.
func (s ComplexSchema) Bind(tr *Trace) (re, im []float64, err error) {
	re, err = s.Re.Bind(tr)
	if err != nil {
		return nil, nil, err
	}
	im, err = s.Im.Bind(tr)
	if err != nil {
		return nil, nil, err
	}
	return re, im, nil
}

// DefaultComplexSchema matches the column names the article's AC decks
// emit for v(out), including the wrdata spellings older control files used.
func DefaultComplexSchema() ComplexSchema {
	return ComplexSchema{
		Re: Binding{Name: "re", Aliases: []string{"real(v(out))", "re:re", "real"}},
		Im: Binding{Name: "im", Aliases: []string{"imag(v(out))", "im:im", "imag"}},
	}
}
