package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spice/measure/bode"
	"github.com/cwbudde/algo-spice/measure/qfactor"
	"github.com/cwbudde/algo-spice/overlay"
	"github.com/cwbudde/algo-spice/trace"
)

var (
	qtableOut      string
	qtableReCol    string
	qtableImCol    string
	qtableEdgeDrop float64
)

var qtableCmd = &cobra.Command{
	Use:   "qtable <path[:label]> [path[:label]...]",
	Short: "Compute resonance f0, bandwidth and Q across labeled sweeps",
	Long: `Extract the resonant peak, -3 dB band edges, bandwidth and Q factor
from each labeled AC sweep and emit one CSV row per input. Sweeps whose
passband runs off the measured grid report the flank that was found and
leave the rest blank.

Examples:
  spicefig qtable out/wah_R6k.dat:6 out/wah_R12k.dat:12 --out q.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQTable,
}

func init() {
	rootCmd.AddCommand(qtableCmd)

	qtableCmd.Flags().StringVar(&qtableOut, "out", "", "CSV output file (default: stdout)")
	qtableCmd.Flags().StringVar(&qtableReCol, "re", "", "real part column")
	qtableCmd.Flags().StringVar(&qtableImCol, "im", "", "imaginary part column")
	qtableCmd.Flags().Float64Var(&qtableEdgeDrop, "edge-drop", 3,
		"band edge level below the peak in dB")
}

type qRow struct {
	label  string
	report qfactor.Report
	lowOK  bool
	highOK bool
}

func runQTable(cmd *cobra.Command, args []string) error {
	set, mergeErr := overlay.Merge(parseInputs(args),
		overlay.WithCleanOptions(trace.WithPositiveX()))

	var pe *overlay.PartialError
	if mergeErr != nil && !errors.As(mergeErr, &pe) {
		return mergeErr
	}
	if pe != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), pe.Error())
	}

	schema := complexSchema(qtableReCol, qtableImCol)

	var rows []qRow
	failed := 0
	for _, entry := range set.Entries {
		row, err := extractQ(entry, schema)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %v\n", entry.Label, err)
			failed++
			continue
		}
		rows = append(rows, row)
	}

	sortRows(rows)

	out := cmd.OutOrStdout()
	if qtableOut != "" {
		f, err := os.Create(qtableOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := writeQTable(out, rows); err != nil {
		return err
	}

	if pe != nil || failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", len(args)-len(rows), len(args))
	}
	return nil
}

func extractQ(entry overlay.Entry, schema trace.ComplexSchema) (qRow, error) {
	re, im, err := schema.Bind(entry.Trace)
	if err != nil {
		return qRow{}, err
	}

	res, err := bode.FromParts(entry.Trace.X, re, im)
	if err != nil {
		return qRow{}, err
	}

	report, err := qfactor.Extract(res.Freq, res.MagnitudeDB,
		qfactor.WithEdgeDrop(qtableEdgeDrop))
	if err != nil {
		// A one-sided passband still yields a usable partial report.
		var fe *qfactor.FlankError
		if errors.As(err, &fe) {
			return qRow{
				label:  entry.Label,
				report: fe.Partial,
				lowOK:  fe.Partial.FLowFound,
				highOK: fe.Partial.FHighFound,
			}, nil
		}
		return qRow{}, err
	}

	return qRow{label: entry.Label, report: report, lowOK: true, highOK: true}, nil
}

// sortRows orders by numeric label when every label parses as a number,
// keeping input order otherwise.
func sortRows(rows []qRow) {
	nums := make(map[string]float64, len(rows))
	for _, r := range rows {
		v, err := strconv.ParseFloat(r.label, 64)
		if err != nil {
			return
		}
		nums[r.label] = v
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return nums[rows[i].label] < nums[rows[j].label]
	})
}

func writeQTable(w io.Writer, rows []qRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"position", "f0_hz", "flo_-3dB_hz", "fhi_-3dB_hz", "bw_hz", "Q"}); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{
			r.label,
			fmt.Sprintf("%.2f", r.report.CenterFreq),
			"", "", "", "",
		}
		if r.lowOK {
			rec[2] = fmt.Sprintf("%.2f", r.report.FLow)
		}
		if r.highOK {
			rec[3] = fmt.Sprintf("%.2f", r.report.FHigh)
		}
		if r.lowOK && r.highOK {
			rec[4] = fmt.Sprintf("%.2f", r.report.Bandwidth)
			rec[5] = fmt.Sprintf("%.2f", r.report.Q)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
