package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spice/measure/bode"
	"github.com/cwbudde/algo-spice/render"
	"github.com/cwbudde/algo-spice/trace"
)

var (
	bodeTitle    string
	bodeOutMag   string
	bodeOutPhase string
	bodeReCol    string
	bodeImCol    string
	bodeXCol     string
)

var bodeCmd = &cobra.Command{
	Use:   "bode <data-file> [denominator-file]",
	Short: "Render magnitude and phase from an AC sweep",
	Long: `Render a Bode plot from complex AC sweep data. With one file the
trace's re/im columns are plotted directly; with two files the response
is the complex quotient A/B of the pair, sample by sample.

Examples:
  spicefig bode out/wah.dat --title "Wah" --out-mag mag.svg --out-phase ph.svg
  spicefig bode out/vout.dat out/vin.dat --out-mag mag.svg --out-phase ph.svg`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBode,
}

func init() {
	rootCmd.AddCommand(bodeCmd)

	bodeCmd.Flags().StringVar(&bodeTitle, "title", "", "figure title")
	bodeCmd.Flags().StringVar(&bodeOutMag, "out-mag", "mag.svg", "magnitude output file")
	bodeCmd.Flags().StringVar(&bodeOutPhase, "out-phase", "phase.svg", "phase output file")
	bodeCmd.Flags().StringVar(&bodeReCol, "re", "", "real part column")
	bodeCmd.Flags().StringVar(&bodeImCol, "im", "", "imaginary part column")
	bodeCmd.Flags().StringVar(&bodeXCol, "x", "", "frequency column")
}

func runBode(cmd *cobra.Command, args []string) error {
	schema := complexSchema(bodeReCol, bodeImCol)

	a, err := loadCleanSweep(args[0])
	if err != nil {
		return err
	}

	var res bode.Result
	if len(args) == 2 {
		b, err := loadCleanSweep(args[1])
		if err != nil {
			return err
		}
		res, err = bode.FromTraces(a, b, schema)
		if err != nil {
			return err
		}
	} else {
		re, im, err := schema.Bind(a)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		res, err = bode.FromParts(a.X, re, im)
		if err != nil {
			return err
		}
	}

	magSVG, phaseSVG, err := render.Bode(res, bodeTitle, figureOptions()...)
	if err != nil {
		return err
	}
	if err := writeOutput(bodeOutMag, magSVG); err != nil {
		return err
	}
	return writeOutput(bodeOutPhase, phaseSVG)
}

// loadCleanSweep reads a WRDATA file and normalizes it to a monotonic
// positive frequency grid.
func loadCleanSweep(path string) (*trace.Trace, error) {
	var readOpts []trace.Option
	if bodeXCol != "" {
		readOpts = append(readOpts, trace.WithXColumn(bodeXCol))
	}

	tr, err := trace.ReadFile(path, readOpts...)
	if err != nil {
		return nil, err
	}
	return trace.Clean(tr, trace.WithPositiveX())
}

// figureOptions maps the global figure flags onto render options.
func figureOptions() []render.Option {
	var opts []render.Option
	if ieee {
		opts = append(opts, render.WithIEEESize())
	}
	return opts
}
