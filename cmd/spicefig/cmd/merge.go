package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spice/overlay"
	"github.com/cwbudde/algo-spice/render"
	"github.com/cwbudde/algo-spice/trace"
)

var (
	mergeTitle    string
	mergeOutMag   string
	mergeOutPhase string
	mergeReCol    string
	mergeImCol    string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <path[:label]> [path[:label]...]",
	Short: "Render overlaid Bode curves from labeled sweeps",
	Long: `Merge labeled AC sweeps into one magnitude and one phase figure,
one curve per input. A label missing from path:label defaults to the
filename stem. Inputs that fail to load are reported and skipped; the
surviving curves are still rendered.

Examples:
  spicefig merge out/wah_R6k.dat:6k out/wah_R12k.dat:12k --title "Wah sweep"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(&mergeTitle, "title", "", "figure title")
	mergeCmd.Flags().StringVar(&mergeOutMag, "out-mag", "mag.svg", "magnitude output file")
	mergeCmd.Flags().StringVar(&mergeOutPhase, "out-phase", "phase.svg", "phase output file")
	mergeCmd.Flags().StringVar(&mergeReCol, "re", "", "real part column")
	mergeCmd.Flags().StringVar(&mergeImCol, "im", "", "imaginary part column")
}

func runMerge(cmd *cobra.Command, args []string) error {
	set, mergeErr := overlay.Merge(parseInputs(args),
		overlay.WithCleanOptions(trace.WithPositiveX()))

	var pe *overlay.PartialError
	if mergeErr != nil && !errors.As(mergeErr, &pe) {
		return mergeErr
	}
	if pe != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), pe.Error())
	}

	if len(set.Entries) > 0 {
		schema := complexSchema(mergeReCol, mergeImCol)
		magSVG, phaseSVG, err := render.OverlayBode(*set, schema, mergeTitle, figureOptions()...)
		if err != nil {
			return err
		}
		if err := writeOutput(mergeOutMag, magSVG); err != nil {
			return err
		}
		if err := writeOutput(mergeOutPhase, phaseSVG); err != nil {
			return err
		}
	}

	if pe != nil {
		return fmt.Errorf("%d of %d inputs failed", len(pe.Failures), len(args))
	}
	return nil
}
