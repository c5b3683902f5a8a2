// Package qfactor locates the passband of a magnitude-vs-frequency curve
// and reports center frequency, -3 dB bandwidth and Q.
//
// The Q definition deliberately follows the article's figures, not the
// textbook: Q = f_peak / (f_high - f_low), centered on the peak frequency.
// The geometric mean sqrt(f_low * f_high) is computed alongside so the two
// conventions can be compared, and Report.Definition names which one the Q
// value uses.
//
// Flank edges are linearly interpolated between the bracketing samples
// rather than snapped to the grid, which keeps the reported bandwidth
// honest at the coarse sample densities AC sweeps are run at.
package qfactor
