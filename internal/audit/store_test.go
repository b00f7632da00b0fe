package audit_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obahii/data-cleaning/internal/audit"
	"github.com/obahii/data-cleaning/internal/cleaner"
	"github.com/obahii/data-cleaning/internal/model"
)

func openStore(t *testing.T) *audit.Store {
	t.Helper()
	s, err := audit.Open(filepath.Join(t.TempDir(), "trail", "corrections.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecord_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	created := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	corrections := []cleaner.Correction{
		{Field: "tel", Row: 0, Old: model.String("612345678"), New: model.String("+212612345678")},
		{Field: "cin", Row: 3, Old: model.String("a1b2"), New: model.Null()},
		{Field: "tel", Row: 4, Old: model.Number(612345678), New: model.String("+212612345678")},
		{Field: "created", Row: 5, Old: model.Time(created), New: model.Null()},
	}
	run := audit.Run{ID: "run-1", StartedAt: time.Now(), InputPath: "data.csv", InputRows: 6, OutputRows: 2, Dropped: 4}

	require.NoError(t, s.Record(ctx, run, corrections))

	got, err := s.Corrections(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, corrections, got)

	none, err := s.Corrections(ctx, "run-2")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecord_DuplicateRunRollsBack(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	run := audit.Run{ID: "dup", StartedAt: time.Now()}
	one := []cleaner.Correction{{Field: "etat", Row: 1, Old: model.String("x"), New: model.String("0")}}

	require.NoError(t, s.Record(ctx, run, one))
	require.Error(t, s.Record(ctx, run, one))

	got, err := s.Corrections(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
