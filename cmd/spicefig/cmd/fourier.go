package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spice/render"
	"github.com/cwbudde/algo-spice/spice"
)

var (
	fourierTitle string
	fourierOut   string
	fourierNode  string
)

var fourierCmd = &cobra.Command{
	Use:   "fourier <log-file>",
	Short: "Render harmonic magnitudes from a Fourier analysis log",
	Long: `Parse the "Fourier components of ..." block in a simulator log and
render the harmonic magnitudes as a bar chart.

Examples:
  spicefig fourier out/octavia.log --node v(out) --out harmonics.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runFourier,
}

func init() {
	rootCmd.AddCommand(fourierCmd)

	fourierCmd.Flags().StringVar(&fourierTitle, "title", "", "figure title")
	fourierCmd.Flags().StringVar(&fourierOut, "out", "harmonics.svg", "output file")
	fourierCmd.Flags().StringVar(&fourierNode, "node", "", "only the block for this node")
}

func runFourier(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rep, err := spice.ParseFourierLog(f, fourierNode)
	if err != nil {
		return err
	}

	svg, err := render.FourierBars(rep, fourierTitle, figureOptions()...)
	if err != nil {
		return err
	}
	return writeOutput(fourierOut, svg)
}
