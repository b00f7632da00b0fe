// Package model defines the shared data structures for the cleaning service.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Column names of the applicants table, in canonical output order.
const (
	ColLastName   = "nom"
	ColFirstName  = "prenom"
	ColBirthDate  = "date_naissance"
	ColCIN        = "cin"
	ColPhone      = "tel"
	ColEmail      = "email"
	ColDiploma    = "diplome"
	ColSchool     = "etablissment"
	ColProgram    = "formation"
	ColMotivation = "lettre_motivation"
	ColStatus     = "etat"
	ColViewed     = "viewed"
	ColContacted  = "contacte"
	ColEnrolled   = "inscrit"
	ColCreated    = "created"
	ColCity       = "ville"
)

// Columns is the fixed field set every Record carries after load.
var Columns = []string{
	ColLastName, ColFirstName, ColBirthDate, ColCIN, ColPhone, ColEmail,
	ColDiploma, ColSchool, ColProgram, ColMotivation, ColStatus, ColViewed,
	ColContacted, ColEnrolled, ColCreated, ColCity,
}

// ErrMissingColumns is returned when a table lacks one of Columns.
var ErrMissingColumns = errors.New("missing required columns")

// TimestampLayout is the wire format of the created column.
const TimestampLayout = "2006-01-02 15:04:05"

// Input layouts. Month, day and time fields may drop their leading zero
// ("2001-2-3", "2023-01-01 8:30:00"); the year needs all four digits.
const (
	DateInputLayout      = "2006-1-2"
	TimestampInputLayout = "2006-1-2 15:4:5"
)

// Kind tags the dynamic type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is one scalar cell: a string, a number, a timestamp, or null.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	ts   time.Time
}

// Null returns the missing value.
func Null() Value { return Value{} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps f.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Time wraps t.
func Time(t time.Time) Value { return Value{kind: KindTime, ts: t} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload and whether v holds a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the numeric payload and whether v holds a number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Timestamp returns the time payload and whether v holds a timestamp.
func (v Value) Timestamp() (time.Time, bool) { return v.ts, v.kind == KindTime }

// Equal reports whether v and o hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindTime:
		return v.ts.Equal(o.ts)
	}
	return true
}

// Text renders v for CSV output. Null renders as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.ts.Format(TimestampLayout)
	}
	return ""
}

// String implements fmt.Stringer for log output.
func (v Value) String() string {
	if v.kind == KindNull {
		return "<null>"
	}
	return v.Text()
}

// Record is one applicant, positionally aligned with Table.Columns.
type Record []Value

// HasNull reports whether any field of r is missing.
func (r Record) HasNull() bool {
	for _, v := range r {
		if v.IsNull() {
			return true
		}
	}
	return false
}

// Table is an ordered sequence of Records sharing one column set.
// Row identity is the slice index for the duration of a run.
type Table struct {
	Columns []string
	Records []Record

	index map[string]int
}

// NewTable returns an empty table over columns.
func NewTable(columns []string) *Table {
	cols := append([]string(nil), columns...)
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	return &Table{Columns: cols, index: idx}
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// ColumnIndex returns the position of col.
func (t *Table) ColumnIndex(col string) (int, bool) {
	i, ok := t.index[col]
	return i, ok
}

// Append adds r, which must have one value per column.
func (t *Table) Append(r Record) error {
	if len(r) != len(t.Columns) {
		return fmt.Errorf("record has %d values, table has %d columns", len(r), len(t.Columns))
	}
	t.Records = append(t.Records, r)
	return nil
}

// Get returns the value at (row, col). Unknown columns read as null.
func (t *Table) Get(row int, col string) Value {
	i, ok := t.index[col]
	if !ok {
		return Null()
	}
	return t.Records[row][i]
}

// Set stores v at (row, col). Unknown columns are ignored.
func (t *Table) Set(row int, col string, v Value) {
	if i, ok := t.index[col]; ok {
		t.Records[row][i] = v
	}
}

// Column returns a copy of every value in col, in row order.
func (t *Table) Column(col string) []Value {
	i, ok := t.index[col]
	if !ok {
		return nil
	}
	out := make([]Value, len(t.Records))
	for r, rec := range t.Records {
		out[r] = rec[i]
	}
	return out
}
