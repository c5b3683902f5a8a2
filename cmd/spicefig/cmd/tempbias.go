package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spice/render"
	"github.com/cwbudde/algo-spice/spice"
)

var (
	tempBiasTitle string
	tempBiasOut   string
	tempBiasNodes []string
)

var tempBiasCmd = &cobra.Command{
	Use:   "tempbias <log-file>",
	Short: "Render bias drift versus temperature from a stepped log",
	Long: `Parse the operating points a .step temp control block echoes into
the simulator log and render the bias voltages against temperature.

Examples:
  spicefig tempbias out/ff_ge_temp.log --title "Fuzz Face bias vs temperature"`,
	Args: cobra.ExactArgs(1),
	RunE: runTempBias,
}

func init() {
	rootCmd.AddCommand(tempBiasCmd)

	tempBiasCmd.Flags().StringVar(&tempBiasTitle, "title", "", "figure title")
	tempBiasCmd.Flags().StringVar(&tempBiasOut, "out", "tempbias.svg", "output file")
	tempBiasCmd.Flags().StringSliceVar(&tempBiasNodes, "nodes",
		[]string{"v(c2)", "v(b1)"}, "echoed node names to plot")
}

func runTempBias(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	tb, err := spice.ParseTempBiasLog(f, tempBiasNodes)
	if err != nil {
		return err
	}

	svg, err := render.TempBias(tb, tempBiasTitle, figureOptions()...)
	if err != nil {
		return err
	}
	return writeOutput(tempBiasOut, svg)
}
