package trace

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Option configures reading.
type Option func(*readConfig)

type readConfig struct {
	xName  string
	source string
}

// WithXColumn names the independent-variable column explicitly instead of
// relying on auto-detection ("time", "frequency", "freq").
func WithXColumn(name string) Option {
	return func(c *readConfig) { c.xName = name }
}

// WithSource attaches a source name used in error messages when reading
// from a stream.
func WithSource(name string) Option {
	return func(c *readConfig) { c.source = name }
}

// commentPrefixes marks lines the simulator emits that carry no data.
var commentPrefixes = []string{"*", ";", "."}

// bannerPrefixes marks rawfile banner lines that slip into wrdata output.
var bannerPrefixes = []string{"no.", "title", "plotname", "flags"}

// ReadFile parses a wrdata file into a Trace.
func ReadFile(path string, opts ...Option) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	defer f.Close()

	opts = append(opts, WithSource(path))
	return Read(f, opts...)
}

// Read parses whitespace-separated numeric rows from r.
//
// The first retained line is a header iff any of its tokens is non-numeric.
// Repeated copies of the header (block boundaries from consecutive wrdata
// calls) are dropped and their data rows concatenated; any other
// non-numeric row past the header is an ErrFormat failure that names the
// offending line and token. Duplicate header names get _1, _2... suffixes;
// the first occurrence keeps the bare name. Ragged rows are padded with NaN
// or trimmed to the header width.
func Read(r io.Reader, opts ...Option) (*Trace, error) {
	cfg := readConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	src := cfg.source
	if src == "" {
		src = "<stream>"
	}

	var (
		header []string
		rows   [][]float64
		width  int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || skipLine(line) {
			continue
		}

		toks := strings.Fields(line)

		if header == nil && len(rows) == 0 {
			// First retained line decides the layout.
			if row, ok := parseRow(toks); ok {
				width = len(row)
				rows = append(rows, row)
			} else {
				header = toks
				width = len(toks)
			}
			continue
		}

		row, ok := parseRow(toks)
		if !ok {
			if header != nil && sameHeader(header, toks) {
				continue // next wrdata block, same layout
			}
			return nil, fmt.Errorf("%w: %s line %d: non-numeric row %q", ErrFormat, src, lineNo, line)
		}
		rows = append(rows, fitRow(row, width))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: read %s: %w", src, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, src)
	}

	names := columnNames(header, width)
	names, rows = stripIndexColumn(names, rows)

	return assemble(src, cfg.xName, names, rows)
}

func skipLine(line string) bool {
	for _, p := range commentPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	lower := strings.ToLower(line)
	for _, p := range bannerPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// parseRow converts tokens to floats. Reports ok=false when any token is
// not numeric ("nan" counts as numeric).
func parseRow(toks []string) ([]float64, bool) {
	row := make([]float64, len(toks))
	for i, tok := range toks {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, false
		}
		row[i] = v
	}
	return row, true
}

func sameHeader(header, toks []string) bool {
	if len(header) != len(toks) {
		return false
	}
	for i := range header {
		if !strings.EqualFold(header[i], toks[i]) {
			return false
		}
	}
	return true
}

func fitRow(row []float64, width int) []float64 {
	if len(row) == width {
		return row
	}
	if len(row) > width {
		return row[:width]
	}
	out := make([]float64, width)
	copy(out, row)
	for i := len(row); i < width; i++ {
		out[i] = math.NaN()
	}
	return out
}

// columnNames resolves header tokens into unique column names, or
// synthesizes col0..colN for headerless files.
func columnNames(header []string, width int) []string {
	if header == nil {
		names := make([]string, width)
		for i := range names {
			names[i] = fmt.Sprintf("col%d", i)
		}
		return names
	}

	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		n, dup := seen[name]
		if dup {
			seen[name] = n + 1
			names[i] = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 0
			names[i] = name
		}
	}
	return names
}

// stripIndexColumn drops a leading Index/No. counter column when the
// header declares one.
func stripIndexColumn(names []string, rows [][]float64) ([]string, [][]float64) {
	if len(names) == 0 {
		return names, rows
	}
	first := strings.ToLower(names[0])
	if first != "index" && first != "no." {
		return names, rows
	}
	for i, row := range rows {
		if len(row) > 0 {
			rows[i] = row[1:]
		}
	}
	return names[1:], rows
}

func assemble(src, xName string, names []string, rows [][]float64) (*Trace, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, src)
	}

	cols := make([]Column, len(names))
	for j := range cols {
		data := make([]float64, len(rows))
		for i, row := range rows {
			if j < len(row) {
				data[i] = row[j]
			} else {
				data[i] = math.NaN()
			}
		}
		cols[j] = Column{Name: names[j], Data: data}
	}

	xIdx, err := pickX(src, xName, cols)
	if err != nil {
		return nil, err
	}

	tr := &Trace{
		Source: src,
		XName:  cols[xIdx].Name,
		X:      cols[xIdx].Data,
	}
	for j, c := range cols {
		if j != xIdx {
			tr.Columns = append(tr.Columns, c)
		}
	}
	return tr, nil
}

// pickX chooses the independent-variable column: the explicitly requested
// name, else "time", else a frequency column holding at least one finite
// positive value (sweeps can emit an all-zero duplicate frequency column),
// else the first column.
func pickX(src, xName string, cols []Column) (int, error) {
	if xName != "" {
		lower := strings.ToLower(xName)
		for j, c := range cols {
			if strings.ToLower(c.Name) == lower {
				return j, nil
			}
		}
		return 0, fmt.Errorf("%w: x column %q in %s", ErrColumnMissing, xName, src)
	}

	for j, c := range cols {
		if strings.ToLower(c.Name) == "time" {
			return j, nil
		}
	}

	firstFreq := -1
	for j, c := range cols {
		lower := strings.ToLower(c.Name)
		if lower == "freq" || strings.HasPrefix(lower, "frequency") {
			if firstFreq < 0 {
				firstFreq = j
			}
			if hasPositive(c.Data) {
				return j, nil
			}
		}
	}
	if firstFreq >= 0 {
		return firstFreq, nil
	}
	return 0, nil
}

func hasPositive(data []float64) bool {
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 {
			return true
		}
	}
	return false
}
