package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spice/render"
	"github.com/cwbudde/algo-spice/trace"
)

var (
	spectrumTitle string
	spectrumOut   string
	spectrumCol   string
	spectrumRate  float64
	spectrumFMax  float64
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum <data-file>",
	Short: "Render the magnitude spectrum of a transient column",
	Long: `Window one transient column and render its FFT magnitude in dBFS.
The sample rate is derived from the trace's time axis unless --sr is
given.

Examples:
  spicefig spectrum out/octavia.dat --col "v(out)" --fmax 5000`,
	Args: cobra.ExactArgs(1),
	RunE: runSpectrum,
}

func init() {
	rootCmd.AddCommand(spectrumCmd)

	spectrumCmd.Flags().StringVar(&spectrumTitle, "title", "", "figure title")
	spectrumCmd.Flags().StringVar(&spectrumOut, "out", "spectrum.svg", "output file")
	spectrumCmd.Flags().StringVar(&spectrumCol, "col", "", "signal column (default: first)")
	spectrumCmd.Flags().Float64Var(&spectrumRate, "sr", 0, "sample rate in Hz (default: from time axis)")
	spectrumCmd.Flags().Float64Var(&spectrumFMax, "fmax", 0, "upper frequency limit in Hz")
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	tr, err := trace.ReadFile(args[0])
	if err != nil {
		return err
	}
	tr, err = trace.Clean(tr)
	if err != nil {
		return err
	}

	var data []float64
	if spectrumCol != "" {
		col, err := tr.Column(spectrumCol)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		data = col.Data
	} else {
		if len(tr.Columns) == 0 {
			return fmt.Errorf("%s: no signal columns", args[0])
		}
		data = tr.Columns[0].Data
	}

	rate := spectrumRate
	if rate == 0 {
		rate, err = sampleRateOf(tr)
		if err != nil {
			return err
		}
	}

	opts := figureOptions()
	if spectrumFMax > 0 {
		opts = append(opts, render.WithXLimit(0, spectrumFMax))
	}

	svg, err := render.Spectrum(data, rate, spectrumTitle, opts...)
	if err != nil {
		return err
	}
	return writeOutput(spectrumOut, svg)
}

// sampleRateOf derives the sample rate from a uniform time axis.
func sampleRateOf(tr *trace.Trace) (float64, error) {
	if tr.Len() < 2 {
		return 0, errors.New("cannot derive sample rate: need at least 2 samples")
	}
	dt := (tr.X[tr.Len()-1] - tr.X[0]) / float64(tr.Len()-1)
	if dt <= 0 {
		return 0, errors.New("cannot derive sample rate: time axis is not increasing")
	}
	return 1 / dt, nil
}
