package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-spice/overlay"
	"github.com/cwbudde/algo-spice/trace"
)

var (
	// Global flags
	verbose bool
	ieee    bool
)

var rootCmd = &cobra.Command{
	Use:   "spicefig",
	Short: "Figures and tables from circuit simulator output",
	Long: `spicefig turns ngspice WRDATA files and logs into publication SVG
figures: Bode plots, labeled overlays, Q-factor tables, time-domain and
spectrum views, harmonic bar charts and bias-vs-temperature sweeps.

Examples:
  spicefig bode out/wah.dat --title "Wah" --out-mag mag.svg --out-phase ph.svg
  spicefig merge out/wah_R6k.dat:6k out/wah_R12k.dat:12k --out-mag mag.svg --out-phase ph.svg
  spicefig qtable out/wah_*.dat --out q.csv
  spicefig fourier out/octavia.log --node v(out) --out harmonics.svg`,
	Version: "0.3.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&ieee, "ieee", false, "IEEE single-column figure size")
}

// newLogger builds the command logger; quiet unless --verbose.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// parseInputs turns PATH[:LABEL] arguments into overlay inputs. A
// missing label defaults to the filename stem at merge time.
func parseInputs(args []string) []overlay.Input {
	inputs := make([]overlay.Input, len(args))
	for i, arg := range args {
		path, label, _ := strings.Cut(arg, ":")
		inputs[i] = overlay.Input{Path: path, Label: label}
	}
	return inputs
}

// complexSchema builds the re/im column schema from flag overrides.
func complexSchema(reCol, imCol string) trace.ComplexSchema {
	s := trace.DefaultComplexSchema()
	if reCol != "" {
		s.Re.Name = reCol
	}
	if imCol != "" {
		s.Im.Name = imCol
	}
	return s
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", path, len(data))
	}
	return nil
}
