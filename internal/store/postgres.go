// Package store persists cleaned applicant tables to PostgreSQL.
//
// Each run replaces nothing: rows are appended to applicants_clean under the
// run's ID, and a cleaning_runs row records the run summary. Both writes
// share one transaction.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obahii/data-cleaning/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS cleaning_runs (
	run_id      TEXT PRIMARY KEY,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	input_rows  INTEGER NOT NULL,
	output_rows INTEGER NOT NULL,
	dropped     INTEGER NOT NULL,
	corrections INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS applicants_clean (
	run_id            TEXT NOT NULL REFERENCES cleaning_runs(run_id),
	row_index         INTEGER NOT NULL,
	nom               TEXT NOT NULL,
	prenom            TEXT NOT NULL,
	date_naissance    DATE NOT NULL,
	cin               TEXT NOT NULL,
	tel               TEXT NOT NULL,
	email             TEXT NOT NULL,
	diplome           TEXT NOT NULL,
	etablissment      TEXT NOT NULL,
	formation         TEXT NOT NULL,
	lettre_motivation TEXT NOT NULL,
	etat              SMALLINT NOT NULL,
	viewed            SMALLINT NOT NULL,
	contacte          SMALLINT NOT NULL,
	inscrit           SMALLINT NOT NULL,
	created           TIMESTAMP NOT NULL,
	ville             TEXT NOT NULL,
	PRIMARY KEY (run_id, row_index)
)`

// RunRow is the cleaning_runs record of one run.
type RunRow struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	InputRows   int
	OutputRows  int
	Dropped     int
	Corrections int
}

// Sink writes cleaned tables to Postgres.
type Sink struct {
	pool *pgxpool.Pool
}

// NewSink returns a Sink over pool.
func NewSink(pool *pgxpool.Pool) *Sink {
	return &Sink{pool: pool}
}

// EnsureSchema creates the sink tables when they do not exist.
func (s *Sink) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Save inserts run and every record of tbl, which must be a cleaned table
// (no nulls, canonical columns).
func (s *Sink) Save(ctx context.Context, run RunRow, tbl *model.Table) error {
	rows, err := copyRows(tbl)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO cleaning_runs (run_id, started_at, finished_at, input_rows, output_rows, dropped, corrections)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.StartedAt, run.FinishedAt, run.InputRows, run.OutputRows, run.Dropped, run.Corrections,
	); err != nil {
		return fmt.Errorf("insert cleaning_runs: %w", err)
	}

	for _, r := range rows {
		r[0] = run.ID
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"applicants_clean"}, copyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy applicants_clean: %w", err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copy applicants_clean: wrote %d of %d rows", n, len(rows))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// copyColumns is run_id, row_index, then the table columns in order.
var copyColumns = append([]string{"run_id", "row_index"}, model.Columns...)

// copyRows converts tbl to COPY rows. The run_id slot is left for Save.
func copyRows(tbl *model.Table) ([][]any, error) {
	out := make([][]any, 0, tbl.Len())
	for i, rec := range tbl.Records {
		row := make([]any, 0, len(copyColumns))
		row = append(row, "", int32(i))
		for j, col := range tbl.Columns {
			v, err := columnValue(col, rec[j])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			row = append(row, v)
		}
		out = append(out, row)
	}
	return out, nil
}

// columnValue maps a cleaned value to the Go type pgx encodes for col.
func columnValue(col string, v model.Value) (any, error) {
	if v.IsNull() {
		return nil, fmt.Errorf("%s: null in cleaned table", col)
	}
	switch col {
	case model.ColBirthDate:
		t, err := time.Parse(model.DateInputLayout, v.Text())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", col, err)
		}
		return t, nil
	case model.ColCreated:
		if t, ok := v.Timestamp(); ok {
			return t, nil
		}
		t, err := time.Parse(model.TimestampInputLayout, v.Text())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", col, err)
		}
		return t, nil
	case model.ColStatus, model.ColViewed, model.ColContacted, model.ColEnrolled:
		s := v.Text()
		if len(s) != 1 || s[0] < '0' || s[0] > '9' {
			return nil, fmt.Errorf("%s: %q is not a digit flag", col, s)
		}
		return int16(s[0] - '0'), nil
	}
	return v.Text(), nil
}
