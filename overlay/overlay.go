// Package overlay aligns several labeled sweep files for joint rendering,
// e.g. the same wah circuit at six potentiometer positions. Traces are
// loaded and cleaned independently and keep their own sample grids; one
// unreadable file must not block the figure for the rest.
package overlay

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-spice/trace"
)

// Input names one overlay member. An empty Label defaults to the file
// name stem.
type Input struct {
	Path  string
	Label string
}

// Entry is one successfully loaded member.
type Entry struct {
	Label string
	Trace *trace.Trace
}

// Set holds the loaded members in input order; that order defines the
// legend and plot order downstream.
type Set struct {
	Entries []Entry
}

// Labels returns the member labels in order.
func (s *Set) Labels() []string {
	out := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.Label
	}
	return out
}

// Failure records one input that could not be loaded.
type Failure struct {
	Path  string
	Label string
	Err   error
}

// PartialError reports the inputs that failed while others succeeded.
// The accompanying Set still carries every member that loaded.
type PartialError struct {
	Failures []Failure
}

func (e *PartialError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "overlay: %d input(s) failed:", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  %s (%s): %v", f.Path, f.Label, f.Err)
	}
	return b.String()
}

// Option configures Merge.
type Option func(*config)

type config struct {
	readOpts  []trace.Option
	cleanOpts []trace.CleanOption
}

// WithReadOptions passes loader options through to every input.
func WithReadOptions(opts ...trace.Option) Option {
	return func(c *config) { c.readOpts = opts }
}

// WithCleanOptions passes cleaner options through to every input.
func WithCleanOptions(opts ...trace.CleanOption) Option {
	return func(c *config) { c.cleanOpts = opts }
}

// Merge loads and cleans each input independently and collects them into
// a Set, preserving input order. Failed inputs are gathered into a
// *PartialError returned alongside the Set of survivors; err is nil only
// when every input loaded.
func Merge(inputs []Input, opts ...Option) (*Set, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := &Set{}
	var failures []Failure

	for _, in := range inputs {
		label := in.Label
		if label == "" {
			label = stem(in.Path)
		}

		tr, err := trace.ReadFile(in.Path, cfg.readOpts...)
		if err == nil {
			tr, err = trace.Clean(tr, cfg.cleanOpts...)
		}
		if err != nil {
			failures = append(failures, Failure{Path: in.Path, Label: label, Err: err})
			continue
		}
		set.Entries = append(set.Entries, Entry{Label: label, Trace: tr})
	}

	if len(failures) > 0 {
		return set, &PartialError{Failures: failures}
	}
	return set, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
