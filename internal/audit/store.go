// Package audit keeps the correction trail of every cleaning run in a local
// SQLite database, so the original value of any corrected field can be
// recovered after the cleaned table has replaced it.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/obahii/data-cleaning/internal/cleaner"
	"github.com/obahii/data-cleaning/internal/model"
)

// Run is the per-run header stored next to its corrections.
type Run struct {
	ID         string
	StartedAt  time.Time
	InputPath  string
	InputRows  int
	OutputRows int
	Dropped    int
}

// Store is the SQLite-backed correction trail.
type Store struct {
	db *sql.DB
}

// Open creates or opens the trail at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id      TEXT PRIMARY KEY,
		started_at  TEXT NOT NULL,
		input_path  TEXT NOT NULL,
		input_rows  INTEGER NOT NULL,
		output_rows INTEGER NOT NULL,
		dropped     INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS corrections (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id    TEXT NOT NULL REFERENCES runs(run_id),
		field     TEXT NOT NULL,
		row_index INTEGER NOT NULL,
		old_kind  TEXT NOT NULL,
		old_value TEXT,
		new_kind  TEXT NOT NULL,
		new_value TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_corrections_run ON corrections(run_id, field, row_index);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Record stores run and its corrections in one transaction.
func (s *Store) Record(ctx context.Context, run Run, corrections []cleaner.Correction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, input_path, input_rows, output_rows, dropped)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.InputPath,
		run.InputRows, run.OutputRows, run.Dropped,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO corrections (run_id, field, row_index, old_kind, old_value, new_kind, new_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare correction insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range corrections {
		if _, err := stmt.ExecContext(ctx,
			run.ID, c.Field, c.Row,
			c.Old.Kind().String(), nullable(c.Old),
			c.New.Kind().String(), nullable(c.New),
		); err != nil {
			return fmt.Errorf("insert correction %s[%d]: %w", c.Field, c.Row, err)
		}
	}

	return tx.Commit()
}

// Corrections returns the trail of one run in field, row order.
func (s *Store) Corrections(ctx context.Context, runID string) ([]cleaner.Correction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT field, row_index, old_kind, old_value, new_kind, new_value
		 FROM corrections WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query corrections: %w", err)
	}
	defer rows.Close()

	var out []cleaner.Correction
	for rows.Next() {
		var (
			c                  cleaner.Correction
			oldKind, newKind   string
			oldValue, newValue sql.NullString
		)
		if err := rows.Scan(&c.Field, &c.Row, &oldKind, &oldValue, &newKind, &newValue); err != nil {
			return nil, fmt.Errorf("scan correction: %w", err)
		}
		if c.Old, err = decode(oldKind, oldValue); err != nil {
			return nil, err
		}
		if c.New, err = decode(newKind, newValue); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullable(v model.Value) any {
	if v.IsNull() {
		return nil
	}
	return v.Text()
}

func decode(kind string, s sql.NullString) (model.Value, error) {
	if !s.Valid {
		return model.Null(), nil
	}
	switch kind {
	case model.KindString.String():
		return model.String(s.String), nil
	case model.KindNumber.String():
		f, err := strconv.ParseFloat(s.String, 64)
		if err != nil {
			return model.Value{}, fmt.Errorf("decode number %q: %w", s.String, err)
		}
		return model.Number(f), nil
	case model.KindTime.String():
		t, err := time.Parse(model.TimestampLayout, s.String)
		if err != nil {
			return model.Value{}, fmt.Errorf("decode time %q: %w", s.String, err)
		}
		return model.Time(t), nil
	}
	return model.Null(), nil
}
