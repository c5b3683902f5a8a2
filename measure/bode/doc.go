// Package bode reduces complex-valued frequency sweeps to Bode data:
// magnitude in dB and unwrapped phase in degrees.
//
// The central operation is the quotient of two complex traces sharing a
// frequency grid, H(f) = A(f)/B(f) — a transfer function from v(out)/v(in),
// or an impedance from v/i. A zero-magnitude denominator sample is reported
// as a typed failure rather than clamped: it almost always means the
// simulation deck wrote a dead vector, and a silently patched curve would
// hide that.
//
//	res, err := bode.Quotient(f, vRe, vIm, f, iRe, iIm)
//	// res.MagnitudeDB, res.PhaseDeg share res.Freq
package bode
