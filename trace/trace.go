package trace

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by trace functions.
var (
	ErrEmptyInput       = errors.New("trace: empty input")
	ErrFormat           = errors.New("trace: malformed input")
	ErrColumnMissing    = errors.New("trace: column not found")
	ErrInsufficientData = errors.New("trace: fewer than 2 distinct samples")
	ErrNoXColumn        = errors.New("trace: no independent-variable column")
)

// Column is one named signal column of a trace.
type Column struct {
	Name string
	Data []float64
}

// Trace holds one independent-variable column plus the remaining named
// columns of a parsed simulator table. All columns have equal length.
//
// After Clean, X is strictly increasing with no duplicates. A Trace is
// handed between pipeline stages by value semantics: stages that change it
// (Clean) return a new Trace and leave the input untouched.
type Trace struct {
	// Source is the file the trace was read from, for error context.
	// Empty for traces built in memory.
	Source string

	// XName names the independent-variable column (e.g. "frequency", "time").
	XName string

	// X is the independent variable in Hz or seconds.
	X []float64

	// Columns are the remaining named columns, in file order.
	Columns []Column
}

// Len returns the number of samples.
func (t *Trace) Len() int { return len(t.X) }

// Names returns the column names in file order, excluding the x column.
func (t *Trace) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column. The match is exact first, then
// case-insensitive. Returns ErrColumnMissing listing the available names
// when nothing matches.
func (t *Trace) Column(name string) (*Column, error) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], nil
		}
	}
	lower := strings.ToLower(name)
	for i := range t.Columns {
		if strings.ToLower(t.Columns[i].Name) == lower {
			return &t.Columns[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s (have %v)", ErrColumnMissing, name, t.describe(), t.Names())
}

// Clone returns a deep copy.
func (t *Trace) Clone() *Trace {
	out := &Trace{
		Source:  t.Source,
		XName:   t.XName,
		X:       append([]float64(nil), t.X...),
		Columns: make([]Column, len(t.Columns)),
	}
	for i, c := range t.Columns {
		out.Columns[i] = Column{Name: c.Name, Data: append([]float64(nil), c.Data...)}
	}
	return out
}

func (t *Trace) describe() string {
	if t.Source != "" {
		return t.Source
	}
	return "trace"
}
