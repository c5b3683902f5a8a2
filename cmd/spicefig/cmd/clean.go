package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spice/trace"
)

var (
	cleanOut       string
	cleanXCol      string
	cleanPositiveX bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <data-file>",
	Short: "Normalize a WRDATA file into one sorted, deduplicated table",
	Long: `Parse a WRDATA file, collapse repeated sweep blocks, sort by the
independent variable and drop duplicate samples. The result is written
as a single whitespace table with a header row.

Examples:
  spicefig clean out/wah.dat --out out/wah_clean.dat
  spicefig clean out/sweep.dat --x frequency --positive-x`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVar(&cleanOut, "out", "", "output file (default: stdout)")
	cleanCmd.Flags().StringVar(&cleanXCol, "x", "", "independent variable column")
	cleanCmd.Flags().BoolVar(&cleanPositiveX, "positive-x", false,
		"drop rows with non-positive x")
}

func runClean(cmd *cobra.Command, args []string) error {
	var readOpts []trace.Option
	if cleanXCol != "" {
		readOpts = append(readOpts, trace.WithXColumn(cleanXCol))
	}

	tr, err := trace.ReadFile(args[0], readOpts...)
	if err != nil {
		return err
	}

	var cleanOpts []trace.CleanOption
	if cleanPositiveX {
		cleanOpts = append(cleanOpts, trace.WithPositiveX())
	}

	cleaned, err := trace.Clean(tr, cleanOpts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cleanOut != "" {
		f, err := os.Create(cleanOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return writeTable(out, cleaned)
}

// writeTable emits a trace as a whitespace table with a header row.
func writeTable(w io.Writer, tr *trace.Trace) error {
	bw := bufio.NewWriter(w)

	header := append([]string{tr.XName}, tr.Names()...)
	if _, err := fmt.Fprintln(bw, strings.Join(header, " ")); err != nil {
		return err
	}

	for i := range tr.X {
		fields := make([]string, 0, len(tr.Columns)+1)
		fields = append(fields, strconv.FormatFloat(tr.X[i], 'g', -1, 64))
		for _, col := range tr.Columns {
			fields = append(fields, strconv.FormatFloat(col.Data[i], 'g', -1, 64))
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, " ")); err != nil {
			return err
		}
	}

	return bw.Flush()
}
