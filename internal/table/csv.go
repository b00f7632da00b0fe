// Package table reads and writes applicant tables as CSV.
//
// Load keeps only the known columns, in canonical order, and fails when one
// of them is absent. Cells holding one of the usual null markers load as
// null; Write renders null as an empty cell.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/obahii/data-cleaning/internal/model"
)

// nullMarkers are the cell contents read as a missing value.
var nullMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsNullMarker reports whether cell denotes a missing value.
func IsNullMarker(cell string) bool {
	_, ok := nullMarkers[cell]
	return ok
}

// Read parses CSV from r into a table restricted to model.Columns.
func Read(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	src := make([]int, len(model.Columns))
	var missing []string
	for i, c := range model.Columns {
		p, ok := pos[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		src[i] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrMissingColumns, strings.Join(missing, ", "))
	}

	tbl := model.NewTable(model.Columns)
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		rec := make(model.Record, len(src))
		for i, p := range src {
			if p >= len(fields) || IsNullMarker(fields[p]) {
				rec[i] = model.Null()
				continue
			}
			rec[i] = model.String(fields[p])
		}
		if err := tbl.Append(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
	}
	return tbl, nil
}

// Write renders tbl as CSV, header first.
func Write(w io.Writer, tbl *model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tbl.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	line := make([]string, len(tbl.Columns))
	for i, rec := range tbl.Records {
		for j, v := range rec {
			line[j] = v.Text()
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads the CSV file at path.
func Load(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tbl, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tbl, nil
}

// Save writes tbl to path through a temporary file renamed into place, so
// a failed write never leaves a truncated output behind.
func Save(path string, tbl *model.Table) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := Write(tmp, tbl); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
