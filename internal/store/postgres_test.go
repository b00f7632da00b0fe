package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obahii/data-cleaning/internal/db"
	"github.com/obahii/data-cleaning/internal/model"
)

func cleanedTable(t *testing.T) *model.Table {
	t.Helper()
	tbl := model.NewTable(model.Columns)
	rec := model.Record{
		model.String("Alami"), model.String("Sara"), model.String("1999-04-12"),
		model.String("A123456"), model.String("+212612345678"), model.String("sara@gmail.com"),
		model.String("bac+3"), model.String("ENSA"), model.String("Data"), model.String("Motivée"),
		model.String("1"), model.String("0"), model.String("1"), model.String("0"),
		model.Time(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)), model.String("Rabat"),
	}
	require.NoError(t, tbl.Append(rec))
	return tbl
}

func TestCopyRows(t *testing.T) {
	rows, err := copyRows(cleanedTable(t))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	require.Len(t, r, len(copyColumns))
	assert.Equal(t, int32(0), r[1])
	assert.Equal(t, "Alami", r[2])
	assert.Equal(t, time.Date(1999, 4, 12, 0, 0, 0, 0, time.UTC), r[4])
	assert.Equal(t, int16(1), r[12])
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), r[16])
	assert.Equal(t, "Rabat", r[17])
}

func TestCopyRows_RejectsNull(t *testing.T) {
	tbl := cleanedTable(t)
	tbl.Set(0, model.ColEmail, model.Null())

	_, err := copyRows(tbl)
	assert.ErrorContains(t, err, "email")
}

func TestColumnValue_UnpaddedDates(t *testing.T) {
	got, err := columnValue(model.ColBirthDate, model.String("1999-4-2"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(1999, 4, 2, 0, 0, 0, 0, time.UTC), got)

	got, err = columnValue(model.ColCreated, model.String("2023-1-2 8:05:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 2, 8, 5, 0, 0, time.UTC), got)
}

func TestColumnValue_BadFlag(t *testing.T) {
	_, err := columnValue(model.ColStatus, model.String("12"))
	assert.Error(t, err)
}

// TestSink_Save runs against a real database when TEST_DATABASE_URL is set.
func TestSink_Save(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	sink := NewSink(pool)
	require.NoError(t, sink.EnsureSchema(ctx))

	id := uuid.NewString()
	now := time.Now().UTC()
	require.NoError(t, sink.Save(ctx, RunRow{ID: id, StartedAt: now, FinishedAt: now, InputRows: 1, OutputRows: 1}, cleanedTable(t)))

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM applicants_clean WHERE run_id = $1`, id).Scan(&n))
	assert.Equal(t, 1, n)
}
