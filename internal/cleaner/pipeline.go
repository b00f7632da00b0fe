package cleaner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/obahii/data-cleaning/internal/model"
)

// Step names, as they appear in the run log.
const (
	StepCorrect  = "correcting anomalies"
	StepFill     = "interpolating created timestamps"
	StepDerive   = "deriving ville from cin"
	StepComplete = "removing incomplete rows"
)

// Result summarises one pipeline run.
type Result struct {
	InputRows  int
	OutputRows int

	// Anomalies counts invalid values per field before correction.
	Anomalies   map[string]int
	Corrections []Correction

	Interpolated int
	Unresolved   int

	CitiesResolved int
	CitiesMissing  int

	Dropped int
}

// Pipeline runs the cleaning passes over a table.
type Pipeline struct {
	log *zap.Logger
}

// NewPipeline returns a Pipeline logging to log.
func NewPipeline(log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{log: log}
}

// Run cleans tbl in place. tbl must carry every column of model.Columns.
// The context is checked between passes only; a pass is never interrupted.
func (p *Pipeline) Run(ctx context.Context, tbl *model.Table) (*Result, error) {
	if missing := missingColumns(tbl); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrMissingColumns, strings.Join(missing, ", "))
	}

	res := &Result{InputRows: tbl.Len()}

	steps := []struct {
		name string
		run  func()
	}{
		{StepCorrect, func() {
			res.Anomalies, res.Corrections = CorrectRows(tbl, p.log)
		}},
		{StepFill, func() {
			res.Interpolated, res.Unresolved = FillTimestamps(tbl)
		}},
		{StepDerive, func() {
			res.CitiesResolved, res.CitiesMissing = DeriveCity(tbl)
		}},
		{StepComplete, func() {
			res.Dropped = DropIncomplete(tbl)
		}},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			p.log.Error("step failed", zap.String("step", s.name), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		p.log.Info("step started", zap.String("step", s.name))
		s.run()
		p.log.Info("step succeeded", zap.String("step", s.name))
	}

	res.OutputRows = tbl.Len()
	p.log.Info("pipeline complete",
		zap.Int("input_rows", res.InputRows),
		zap.Int("output_rows", res.OutputRows),
		zap.Int("corrections", len(res.Corrections)),
		zap.Int("dropped", res.Dropped))
	return res, nil
}

func missingColumns(tbl *model.Table) []string {
	var missing []string
	for _, c := range model.Columns {
		if _, ok := tbl.ColumnIndex(c); !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
