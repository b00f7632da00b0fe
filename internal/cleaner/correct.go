// Package cleaner implements the cleaning passes applied to an applicants
// table, in order:
//
//	CorrectRows → FillTimestamps → DeriveCity → DropIncomplete
//
// Every pass mutates the table it is given. None of them can be undone;
// the corrections returned by CorrectRows are the only record of the
// original values.
package cleaner

import (
	"go.uber.org/zap"

	"github.com/obahii/data-cleaning/internal/model"
	"github.com/obahii/data-cleaning/internal/rules"
)

// Correction records one stored value replaced by CorrectRows.
type Correction struct {
	Field string
	Row   int
	Old   model.Value
	New   model.Value
}

// CorrectRows validates every ruled column of tbl and replaces each invalid
// value with its correction. Valid values are never passed to the rule's
// Correct. Columns without a rule are left alone.
//
// It returns the number of invalid values per field and every replacement
// that changed the stored value.
func CorrectRows(tbl *model.Table, log *zap.Logger) (map[string]int, []Correction) {
	anomalies := make(map[string]int)
	var corrections []Correction

	for _, field := range tbl.Columns {
		rule, ok := rules.For(field)
		if !ok {
			continue
		}
		col, _ := tbl.ColumnIndex(field)

		var invalid []int
		for i, rec := range tbl.Records {
			if !rule.Validate(rec[col]) {
				invalid = append(invalid, i)
			}
		}
		if len(invalid) == 0 {
			log.Info("no anomalies detected", zap.String("field", field))
			continue
		}

		anomalies[field] = len(invalid)
		log.Info("anomalies detected, applying correction",
			zap.String("field", field),
			zap.Stringer("rule", rule.Kind()),
			zap.Int("count", len(invalid)))

		for _, i := range invalid {
			old := tbl.Records[i][col]
			log.Warn("anomaly detected",
				zap.String("field", field),
				zap.Int("row", i),
				zap.Stringer("value", old))

			fixed := rule.Correct(old)
			tbl.Records[i][col] = fixed
			if !old.Equal(fixed) {
				corrections = append(corrections, Correction{Field: field, Row: i, Old: old, New: fixed})
				log.Info("value corrected",
					zap.String("field", field),
					zap.Int("row", i),
					zap.Stringer("old", old),
					zap.Stringer("new", fixed))
			}
		}
		log.Info("anomalies corrected", zap.String("field", field))
	}

	return anomalies, corrections
}
