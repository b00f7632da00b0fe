// Package scheduler wires up the cron job that periodically reruns the
// cleaning job, and the optional file watch that reruns it when the input
// CSV changes.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/obahii/data-cleaning/internal/runner"
)

// Runner executes one cleaning job.
type Runner interface {
	Run(ctx context.Context, job runner.Job) (*runner.Summary, error)
}

// Scheduler wraps robfig/cron and manages the cleaning loop.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	job    runner.Job
	spec   string // cron spec, e.g. "@every 6h"
	log    *zap.Logger

	wg sync.WaitGroup
}

// New creates a Scheduler that runs job on spec.
func New(r Runner, job runner.Job, spec string, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	cl := cronLogger{log.Sugar()}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner: r,
		job:    job,
		spec:   spec,
		log:    log,
	}
}

// Start registers the job and starts the scheduler. Also runs one clean
// immediately so the output exists without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.trigger(ctx, "cron") }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info("cron started", zap.String("spec", s.spec))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.trigger(ctx, "startup")
	}()
	return nil
}

// Stop shuts the scheduler down and waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info("cron stopped")
}

// trigger runs the job once. Failures are logged; the next tick retries.
func (s *Scheduler) trigger(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	log := s.log.With(zap.String("trigger", reason))
	log.Info("clean cycle started")

	sum, err := s.runner.Run(ctx, s.job)
	if err != nil {
		log.Error("clean cycle failed", zap.Error(err))
		return
	}
	log.Info("clean cycle complete",
		zap.String("run_id", sum.RunID),
		zap.Int("output_rows", sum.OutputRows))
}

// cronLogger routes robfig/cron's own logging through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
