package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spice/render"
	"github.com/cwbudde/algo-spice/signal"
	"github.com/cwbudde/algo-spice/trace"
)

var (
	idealTitle  string
	idealOut    string
	idealFreq   float64
	idealRate   float64
	idealMillis float64
	idealGain   float64
	idealOffset float64
	idealClip   float64
)

var idealCmd = &cobra.Command{
	Use:   "ideal",
	Short: "Render the idealized octave-fuzz waveform chain",
	Long: `Synthesize a plucked guitar note, push it through the idealized
octave-fuzz transfer (gain, bias offset, clip, full-wave rectify) and
render input and output together. The figure sits next to the simulated
circuit's transient output in the article.

Examples:
  spicefig ideal --freq 110 --out octavia_ideal.svg`,
	Args: cobra.NoArgs,
	RunE: runIdeal,
}

func init() {
	rootCmd.AddCommand(idealCmd)

	idealCmd.Flags().StringVar(&idealTitle, "title", "Idealized octave fuzz", "figure title")
	idealCmd.Flags().StringVar(&idealOut, "out", "ideal.svg", "output file")
	idealCmd.Flags().Float64Var(&idealFreq, "freq", 110, "note fundamental in Hz")
	idealCmd.Flags().Float64Var(&idealRate, "sr", 44100, "sample rate in Hz")
	idealCmd.Flags().Float64Var(&idealMillis, "ms", 40, "rendered duration in milliseconds")
	idealCmd.Flags().Float64Var(&idealGain, "gain", 2, "pre-clip gain")
	idealCmd.Flags().Float64Var(&idealOffset, "offset", -0.2, "bias offset")
	idealCmd.Flags().Float64Var(&idealClip, "clip", 1.2, "symmetric clip level")
}

func runIdeal(cmd *cobra.Command, args []string) error {
	gen, err := signal.NewGenerator(idealRate)
	if err != nil {
		return err
	}

	samples := int(idealRate * idealMillis / 1e3)
	note, err := gen.GuitarNote(idealFreq, 1, samples)
	if err != nil {
		return err
	}

	shaped, err := signal.Shape(note, idealGain, idealOffset, idealClip)
	if err != nil {
		return err
	}
	out, err := signal.Normalize(signal.Rectify(shaped), 1)
	if err != nil {
		return err
	}

	tr := &trace.Trace{
		XName: "time",
		X:     gen.TimeAxis(samples),
		Columns: []trace.Column{
			{Name: "v(in)", Data: note},
			{Name: "v(out)", Data: out},
		},
	}

	svg, err := render.TimeSeries(tr, nil, idealTitle, figureOptions()...)
	if err != nil {
		return err
	}
	return writeOutput(idealOut, svg)
}
