package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-spice/pipeline"
	"github.com/cwbudde/algo-spice/spice"
)

var (
	runBinary  string
	runWorkdir string
	runData    []string
)

var runCmd = &cobra.Command{
	Use:   "run <deck.cir> [deck.cir...]",
	Short: "Run simulation decks in batch mode",
	Long: `Run one or more simulator decks. Each deck is an independent job:
a failing simulation is reported but never stops the rest of the batch.

Examples:
  spicefig run circuits/wah.cir --data out/wah.dat
  spicefig run circuits/*.cir`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runBinary, "binary", spice.DefaultBinary,
		"simulator executable")
	runCmd.Flags().StringVar(&runWorkdir, "workdir", "",
		"working directory (default: each deck's directory)")
	runCmd.Flags().StringSliceVar(&runData, "data", nil,
		"expected data file per deck (default: <deck stem>.dat)")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	runner := spice.NewExecRunner(
		spice.WithBinary(runBinary),
		spice.WithLogger(logger),
	)
	batch, err := pipeline.NewBatch(runner, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	jobs := make([]pipeline.Job, len(args))
	for i, deckPath := range args {
		dataPath := strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath)) + ".dat"
		if i < len(runData) {
			dataPath = runData[i]
		}
		jobs[i] = pipeline.Job{
			Name: filepath.Base(deckPath),
			Deck: spice.Deck{
				Path:     deckPath,
				Workdir:  runWorkdir,
				DataPath: dataPath,
			},
		}
	}

	statuses := batch.Run(cmd.Context(), jobs)
	for _, s := range statuses {
		if s.Failed() {
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %v\n", s.Name, s.Err)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "OK   %s -> %s\n", s.Name, s.Result.DataPath)
		}
	}

	if n := pipeline.FailedCount(statuses); n > 0 {
		logger.Warn("batch finished with failures", zap.Int("failed", n))
		return fmt.Errorf("%d of %d decks failed", n, len(statuses))
	}
	return nil
}
