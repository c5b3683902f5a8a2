// Package pipeline runs batches of independent simulation jobs.
//
// Each job pairs a deck with a post-processing step. Jobs execute
// sequentially and are isolated from each other: one circuit failing to
// simulate or render never stops the rest of the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-spice/spice"
)

// Job is one unit of batch work: simulate a deck, then hand the
// artifacts to Process.
type Job struct {
	// Name identifies the job in logs and statuses.
	Name string
	// Deck is the simulation to run.
	Deck spice.Deck
	// Process consumes the simulation artifacts. Nil means run-only.
	Process func(spice.Result) error
}

// Status reports the outcome of one job.
type Status struct {
	Name   string
	Result spice.Result
	Err    error
}

// Failed reports whether the job ended in error.
func (s Status) Failed() bool {
	return s.Err != nil
}

// Option configures a Batch.
type Option func(*Batch)

// WithLogger attaches a logger for per-job progress.
func WithLogger(l *zap.Logger) Option {
	return func(b *Batch) {
		if l != nil {
			b.log = l
		}
	}
}

// Batch executes jobs against a shared runner.
type Batch struct {
	runner spice.Runner
	log    *zap.Logger
}

// NewBatch creates a batch executor around the given runner.
func NewBatch(runner spice.Runner, opts ...Option) (*Batch, error) {
	if runner == nil {
		return nil, errors.New("pipeline: runner must not be nil")
	}

	b := &Batch{runner: runner, log: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// Run executes every job in order and returns one status per job, in
// job order. A failed simulation skips that job's Process step; the next
// job still runs. Context cancellation stops the batch, marking the
// remaining jobs with the context error.
func (b *Batch) Run(ctx context.Context, jobs []Job) []Status {
	statuses := make([]Status, len(jobs))

	for i, job := range jobs {
		statuses[i].Name = job.Name

		if err := ctx.Err(); err != nil {
			statuses[i].Err = err
			continue
		}

		b.log.Info("job starting", zap.String("job", job.Name), zap.String("deck", job.Deck.Path))

		res, err := b.runner.Run(ctx, job.Deck)
		if err != nil {
			statuses[i].Err = fmt.Errorf("pipeline: job %s: %w", job.Name, err)
			b.log.Warn("job failed", zap.String("job", job.Name), zap.Error(err))
			continue
		}
		statuses[i].Result = res

		if job.Process != nil {
			if err := job.Process(res); err != nil {
				statuses[i].Err = fmt.Errorf("pipeline: job %s: %w", job.Name, err)
				b.log.Warn("job post-processing failed", zap.String("job", job.Name), zap.Error(err))
				continue
			}
		}

		b.log.Info("job complete", zap.String("job", job.Name), zap.String("data", res.DataPath))
	}

	return statuses
}

// FailedCount returns how many statuses carry an error.
func FailedCount(statuses []Status) int {
	n := 0
	for _, s := range statuses {
		if s.Failed() {
			n++
		}
	}
	return n
}
