// Package runner executes complete cleaning runs: load the input CSV, run
// the cleaning pipeline, write the cleaned CSV, then hand the results to the
// optional sinks.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obahii/data-cleaning/internal/audit"
	"github.com/obahii/data-cleaning/internal/cleaner"
	"github.com/obahii/data-cleaning/internal/model"
	"github.com/obahii/data-cleaning/internal/notify"
	"github.com/obahii/data-cleaning/internal/store"
	"github.com/obahii/data-cleaning/internal/table"
)

// Step names for the I/O around the pipeline.
const (
	StepLoad = "loading CSV file"
	StepSave = "saving cleaned data to CSV"
)

// Trail records the corrections of a run.
type Trail interface {
	Record(ctx context.Context, run audit.Run, corrections []cleaner.Correction) error
}

// Sink stores a cleaned table.
type Sink interface {
	Save(ctx context.Context, run store.RunRow, tbl *model.Table) error
}

// Notifier announces a finished run.
type Notifier interface {
	Publish(ctx context.Context, ev notify.Event) error
}

// Job names the input and output files of one run.
type Job struct {
	Input  string
	Output string
}

// Summary describes a finished run.
type Summary struct {
	RunID      string
	Job        Job
	StartedAt  time.Time
	FinishedAt time.Time

	InputRows   int
	OutputRows  int
	Dropped     int
	Corrections int
	Anomalies   map[string]int
}

// Worker runs cleaning jobs. Runs are serialised: a second Run waits for
// the first to finish.
type Worker struct {
	log      *zap.Logger
	trail    Trail
	sink     Sink
	notifier Notifier
	now      func() time.Time

	mu sync.Mutex
}

// Option configures a Worker.
type Option func(*Worker)

// WithTrail records corrections in t after every run.
func WithTrail(t Trail) Option { return func(w *Worker) { w.trail = t } }

// WithSink stores every cleaned table in s.
func WithSink(s Sink) Option { return func(w *Worker) { w.sink = s } }

// WithNotifier announces every run through n.
func WithNotifier(n Notifier) Option { return func(w *Worker) { w.notifier = n } }

// NewWorker constructs a Worker.
func NewWorker(log *zap.Logger, opts ...Option) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Worker{log: log, now: time.Now}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run executes one cleaning run. Load, pipeline and save failures are
// returned and leave no output; sink failures are logged and ignored.
func (w *Worker) Run(ctx context.Context, job Job) (*Summary, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	sum := &Summary{RunID: uuid.NewString(), Job: job, StartedAt: w.now()}
	log := w.log.With(zap.String("run_id", sum.RunID))
	log.Info("run started", zap.String("input", job.Input), zap.String("output", job.Output))

	log.Info("step started", zap.String("step", StepLoad))
	tbl, err := table.Load(job.Input)
	if err != nil {
		log.Error("step failed", zap.String("step", StepLoad), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", StepLoad, err)
	}
	log.Info("step succeeded", zap.String("step", StepLoad), zap.Int("rows", tbl.Len()))

	res, err := cleaner.NewPipeline(log).Run(ctx, tbl)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}

	log.Info("step started", zap.String("step", StepSave))
	if err := table.Save(job.Output, tbl); err != nil {
		log.Error("step failed", zap.String("step", StepSave), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", StepSave, err)
	}
	log.Info("step succeeded", zap.String("step", StepSave), zap.String("output", job.Output))

	sum.FinishedAt = w.now()
	sum.InputRows = res.InputRows
	sum.OutputRows = res.OutputRows
	sum.Dropped = res.Dropped
	sum.Corrections = len(res.Corrections)
	sum.Anomalies = res.Anomalies

	w.persist(ctx, log, sum, tbl, res.Corrections)

	log.Info("run complete",
		zap.Int("input_rows", sum.InputRows),
		zap.Int("output_rows", sum.OutputRows),
		zap.Int("dropped", sum.Dropped),
		zap.Duration("took", sum.FinishedAt.Sub(sum.StartedAt)))
	return sum, nil
}

// persist hands the run to every configured sink (non-fatal).
func (w *Worker) persist(ctx context.Context, log *zap.Logger, sum *Summary, tbl *model.Table, corrections []cleaner.Correction) {
	if w.trail != nil {
		run := audit.Run{
			ID:         sum.RunID,
			StartedAt:  sum.StartedAt,
			InputPath:  sum.Job.Input,
			InputRows:  sum.InputRows,
			OutputRows: sum.OutputRows,
			Dropped:    sum.Dropped,
		}
		if err := w.trail.Record(ctx, run, corrections); err != nil {
			log.Warn("audit trail write failed", zap.Error(err))
		}
	}

	if w.sink != nil {
		row := store.RunRow{
			ID:          sum.RunID,
			StartedAt:   sum.StartedAt,
			FinishedAt:  sum.FinishedAt,
			InputRows:   sum.InputRows,
			OutputRows:  sum.OutputRows,
			Dropped:     sum.Dropped,
			Corrections: sum.Corrections,
		}
		if err := w.sink.Save(ctx, row, tbl); err != nil {
			log.Warn("postgres sink write failed", zap.Error(err))
		}
	}

	if w.notifier != nil {
		ev := notify.Event{
			RunID:       sum.RunID,
			Input:       sum.Job.Input,
			Output:      sum.Job.Output,
			InputRows:   sum.InputRows,
			OutputRows:  sum.OutputRows,
			Dropped:     sum.Dropped,
			Corrections: sum.Corrections,
			Anomalies:   sum.Anomalies,
			FinishedAt:  sum.FinishedAt,
		}
		if err := w.notifier.Publish(ctx, ev); err != nil {
			log.Warn("publish run event failed", zap.Error(err))
		}
	}
}
