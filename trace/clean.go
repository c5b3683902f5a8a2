package trace

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// CleanOption configures Clean.
type CleanOption func(*cleanConfig)

type cleanConfig struct {
	positiveX bool
}

// WithPositiveX drops rows whose x value is not strictly positive, on top
// of the non-finite rows Clean always drops. AC sweeps plotted on a log
// axis need this; time-domain traces must not use it (t=0 is a sample).
func WithPositiveX() CleanOption {
	return func(c *cleanConfig) { c.positiveX = true }
}

// Clean returns a copy of tr sorted ascending by x with duplicate x values
// collapsed. Where the same x appears more than once — repeated sweep
// blocks writing overlapping ranges — the last-seen row wins, since a later
// block supersedes earlier ones. Rows with NaN or Inf x are dropped.
//
// Returns ErrInsufficientData when fewer than 2 distinct x values remain.
// Cleaning an already-clean trace is the identity.
func Clean(tr *Trace, opts ...CleanOption) (*Trace, error) {
	cfg := cleanConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	// Rows that survive the validity filter, in file order.
	kept := make([]int, 0, len(tr.X))
	for i, x := range tr.X {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		if cfg.positiveX && x <= 0 {
			continue
		}
		kept = append(kept, i)
	}

	sorted := make([]float64, len(kept))
	for i, row := range kept {
		sorted[i] = tr.X[row]
	}
	perm := make([]int, len(sorted))
	floats.Argsort(sorted, perm)

	// Collapse runs of equal x. Argsort is not stable, so last-seen is
	// resolved by original row number, not by sorted position.
	selected := make([]int, 0, len(kept))
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		best := kept[perm[i]]
		for k := i + 1; k < j; k++ {
			if row := kept[perm[k]]; row > best {
				best = row
			}
		}
		selected = append(selected, best)
		i = j
	}

	if len(selected) < 2 {
		return nil, fmt.Errorf("%w: %s has %d usable samples", ErrInsufficientData, tr.describe(), len(selected))
	}

	out := &Trace{
		Source:  tr.Source,
		XName:   tr.XName,
		X:       make([]float64, len(selected)),
		Columns: make([]Column, len(tr.Columns)),
	}
	for j, c := range tr.Columns {
		out.Columns[j] = Column{Name: c.Name, Data: make([]float64, len(selected))}
	}
	for i, row := range selected {
		out.X[i] = tr.X[row]
		for j := range tr.Columns {
			out.Columns[j].Data[i] = tr.Columns[j].Data[row]
		}
	}
	return out, nil
}

// IsClean reports whether x is already strictly increasing.
func IsClean(tr *Trace) bool {
	for i := 1; i < len(tr.X); i++ {
		if tr.X[i] <= tr.X[i-1] {
			return false
		}
	}
	return true
}
