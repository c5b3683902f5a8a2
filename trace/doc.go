// Package trace loads and normalizes tabular simulator output.
//
// The external circuit simulator (ngspice in batch mode) writes sweep
// results as whitespace-separated ASCII tables, optionally preceded by a
// header row naming the columns. Repeated "wrdata" calls append whole
// header+data blocks to the same file, rows may be ragged, header names may
// repeat, and comment or banner lines can appear anywhere. This package
// parses that format into typed columns and restores the one invariant the
// rest of the pipeline relies on: a strictly increasing independent
// variable with no duplicate samples.
//
// # Usage
//
// Load a file, clean it, and bind the columns you care about:
//
//	tr, _ := trace.ReadFile("out/data/wah_R47k.dat")
//	tr, _ = trace.Clean(tr, trace.WithPositiveX())
//	re, im, _ := trace.DefaultComplexSchema().Bind(tr)
//
// Column roles (independent variable, real part, imaginary part, plain
// signal) are bound once through a Schema; later stages work on indexed
// slices, never on column-name lookups.
package trace
