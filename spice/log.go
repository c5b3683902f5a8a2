package spice

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrNoFourierBlock reports that no matching Fourier analysis block
	// was found in the log.
	ErrNoFourierBlock = errors.New("spice: no fourier block in log")
	// ErrNoTempData reports that no complete stepped-temperature record
	// was found in the log.
	ErrNoTempData = errors.New("spice: no temperature records in log")
)

// Harmonic is one row of a Fourier analysis table.
type Harmonic struct {
	N           int
	Magnitude   float64
	MagnitudeDB float64
	PhaseDeg    float64
}

// FourierReport holds one parsed "Fourier components of ..." block.
type FourierReport struct {
	Node        string
	Fundamental float64
	Harmonics   []Harmonic
}

var (
	fourierFreqPat = regexp.MustCompile(`at frequency\s*([-\d.eE+]+)`)
	fourierRowPat  = regexp.MustCompile(`^\s*(\d+)\s+([-\d.eE+]+)\s+([-\d.eE+]+)\s+([-\d.eE+]+)`)
)

// ParseFourierLog scans a simulator log for Fourier analysis output.
// If node is non-empty, only the block whose header mentions that node
// is captured; otherwise the first block wins. The block ends at the
// first blank line after its rows.
func ParseFourierLog(r io.Reader, node string) (*FourierReport, error) {
	rep := &FourierReport{Node: node}
	capture := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()

		if strings.Contains(line, "Fourier components of") {
			if node != "" && !strings.Contains(strings.ToLower(line), strings.ToLower(node)) {
				capture = false
				continue
			}
			if m := fourierFreqPat.FindStringSubmatch(line); m != nil {
				if f, err := strconv.ParseFloat(m[1], 64); err == nil {
					rep.Fundamental = f
				}
			}
			capture = true
			continue
		}

		if !capture {
			continue
		}

		if m := fourierRowPat.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			mag, _ := strconv.ParseFloat(m[2], 64)
			db, _ := strconv.ParseFloat(m[3], 64)
			ph, _ := strconv.ParseFloat(m[4], 64)
			rep.Harmonics = append(rep.Harmonics, Harmonic{
				N:           n,
				Magnitude:   mag,
				MagnitudeDB: db,
				PhaseDeg:    ph,
			})
		} else if strings.TrimSpace(line) == "" && len(rep.Harmonics) > 0 {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("spice: reading log: %w", err)
	}

	if len(rep.Harmonics) == 0 {
		return nil, ErrNoFourierBlock
	}
	return rep, nil
}

// BiasSeries is one measured quantity across the temperature sweep.
type BiasSeries struct {
	Node   string
	Values []float64
}

// TempBias holds operating points echoed by a .step temp control block.
type TempBias struct {
	TempC  []float64
	Series []BiasSeries
}

var tempPat = regexp.MustCompile(`Temperature\s*=\s*([-\d.eE+]+)`)

// ParseTempBiasLog scans a simulator log for stepped-temperature
// operating points. Each "Temperature = x" line opens a record; echoed
// "node = value" lines fill it. Only records carrying every requested
// node are kept, so all returned series share TempC's length.
func ParseTempBiasLog(r io.Reader, nodes []string) (*TempBias, error) {
	if len(nodes) == 0 {
		return nil, errors.New("spice: no nodes requested")
	}

	nodePats := make([]*regexp.Regexp, len(nodes))
	for i, n := range nodes {
		nodePats[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(n) + `\s*=\s*([-\d.eE+]+)`)
	}

	out := &TempBias{Series: make([]BiasSeries, len(nodes))}
	for i, n := range nodes {
		out.Series[i].Node = n
	}

	var (
		curTemp float64
		curVals = make([]*float64, len(nodes))
		open    bool
	)

	flush := func() {
		if !open {
			return
		}
		for _, v := range curVals {
			if v == nil {
				return
			}
		}
		out.TempC = append(out.TempC, curTemp)
		for i, v := range curVals {
			out.Series[i].Values = append(out.Series[i].Values, *v)
		}
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()

		if m := tempPat.FindStringSubmatch(line); m != nil {
			if t, err := strconv.ParseFloat(m[1], 64); err == nil {
				flush()
				curTemp = t
				curVals = make([]*float64, len(nodes))
				open = true
			}
			continue
		}

		for i, pat := range nodePats {
			if m := pat.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					val := v
					curVals[i] = &val
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("spice: reading log: %w", err)
	}
	flush()

	if len(out.TempC) == 0 {
		return nil, ErrNoTempData
	}
	return out, nil
}
