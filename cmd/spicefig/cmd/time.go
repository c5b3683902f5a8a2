package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spice/render"
	"github.com/cwbudde/algo-spice/trace"
)

var (
	timeTitle string
	timeOut   string
	timeCols  []string
	timeXCol  string
)

var timeCmd = &cobra.Command{
	Use:   "time <data-file>",
	Short: "Render time-domain waveforms",
	Long: `Render transient simulation columns as an overlay figure with a
millisecond time axis. Without --cols every signal column is plotted.

Examples:
  spicefig time out/octavia.dat --cols "v(in),v(out)" --title "Octavia"`,
	Args: cobra.ExactArgs(1),
	RunE: runTime,
}

func init() {
	rootCmd.AddCommand(timeCmd)

	timeCmd.Flags().StringVar(&timeTitle, "title", "", "figure title")
	timeCmd.Flags().StringVar(&timeOut, "out", "time.svg", "output file")
	timeCmd.Flags().StringSliceVar(&timeCols, "cols", nil, "columns to plot (default: all)")
	timeCmd.Flags().StringVar(&timeXCol, "x", "", "time column")
}

func runTime(cmd *cobra.Command, args []string) error {
	var readOpts []trace.Option
	if timeXCol != "" {
		readOpts = append(readOpts, trace.WithXColumn(timeXCol))
	}

	tr, err := trace.ReadFile(args[0], readOpts...)
	if err != nil {
		return err
	}
	tr, err = trace.Clean(tr)
	if err != nil {
		return err
	}

	svg, err := render.TimeSeries(tr, timeCols, timeTitle, figureOptions()...)
	if err != nil {
		return err
	}
	return writeOutput(timeOut, svg)
}
