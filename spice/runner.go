package spice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultBinary is the simulator executable used when none is configured.
const DefaultBinary = "ngspice"

// logTailLines bounds how much simulator log is attached to a RunError.
const logTailLines = 20

var (
	// ErrNoOutput reports that the simulator exited without producing
	// the declared data file, or produced an empty one.
	ErrNoOutput = errors.New("spice: simulation produced no output data")
)

// Deck describes one simulation: the control script to execute and the
// data file its wrdata statements are expected to write.
type Deck struct {
	// Path is the deck file handed to the simulator.
	Path string
	// Workdir is the directory the simulator runs in. Empty means the
	// deck's directory.
	Workdir string
	// DataPath is where the deck writes its tabular output. Relative
	// paths are resolved against Workdir.
	DataPath string
}

// Result holds the artifacts of a completed simulation.
type Result struct {
	// DataPath is the tabular output file, verified non-empty.
	DataPath string
	// LogPath captures the simulator's diagnostic output.
	LogPath string
}

// Runner executes a simulation deck. Implementations must not run
// downstream stages on failure.
type Runner interface {
	Run(ctx context.Context, deck Deck) (Result, error)
}

// RunError reports a failed simulation together with the tail of its log.
type RunError struct {
	Deck    string
	LogTail string
	Err     error
}

func (e *RunError) Error() string {
	if e.LogTail == "" {
		return fmt.Sprintf("spice: deck %s failed: %v", e.Deck, e.Err)
	}
	return fmt.Sprintf("spice: deck %s failed: %v\nlog tail:\n%s", e.Deck, e.Err, e.LogTail)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ExecOption configures an ExecRunner.
type ExecOption func(*ExecRunner)

// WithBinary overrides the simulator executable.
func WithBinary(path string) ExecOption {
	return func(r *ExecRunner) {
		if path != "" {
			r.binary = path
		}
	}
}

// WithLogger attaches a logger for run diagnostics.
func WithLogger(l *zap.Logger) ExecOption {
	return func(r *ExecRunner) {
		if l != nil {
			r.log = l
		}
	}
}

// ExecRunner runs decks through an ngspice binary in batch mode.
type ExecRunner struct {
	binary string
	log    *zap.Logger
}

// NewExecRunner creates a runner using the ngspice binary on PATH unless
// overridden.
func NewExecRunner(opts ...ExecOption) *ExecRunner {
	r := &ExecRunner{
		binary: DefaultBinary,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run executes the deck in batch mode and verifies its data output. The
// simulator log is written next to the deck. A missing or empty data
// file is a hard failure carrying the log tail.
func (r *ExecRunner) Run(ctx context.Context, deck Deck) (Result, error) {
	if deck.Path == "" {
		return Result{}, &RunError{Deck: deck.Path, Err: errors.New("spice: deck path is empty")}
	}

	workdir := deck.Workdir
	if workdir == "" {
		workdir = filepath.Dir(deck.Path)
	}

	stem := strings.TrimSuffix(filepath.Base(deck.Path), filepath.Ext(deck.Path))
	logPath := filepath.Join(workdir, stem+".log")

	cmd := exec.CommandContext(ctx, r.binary, "-b", deck.Path, "-o", logPath)
	cmd.Dir = workdir

	r.log.Info("running simulation",
		zap.String("deck", deck.Path),
		zap.String("binary", r.binary),
		zap.String("log", logPath))

	if err := cmd.Run(); err != nil {
		return Result{}, &RunError{
			Deck:    deck.Path,
			LogTail: tailFile(logPath, logTailLines),
			Err:     err,
		}
	}

	dataPath := deck.DataPath
	if dataPath != "" && !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(workdir, dataPath)
	}

	info, err := os.Stat(dataPath)
	if err != nil || info.Size() == 0 {
		return Result{}, &RunError{
			Deck:    deck.Path,
			LogTail: tailFile(logPath, logTailLines),
			Err:     ErrNoOutput,
		}
	}

	r.log.Info("simulation complete",
		zap.String("deck", deck.Path),
		zap.Int64("data_bytes", info.Size()))

	return Result{DataPath: dataPath, LogPath: logPath}, nil
}

// tailFile returns the last n lines of path, or empty if unreadable.
func tailFile(path string, n int) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
