package cleaner

import "github.com/obahii/data-cleaning/internal/model"

// DropIncomplete removes every record holding at least one null and
// compacts the rest, so row indices restart from zero. It returns the
// number of records removed.
func DropIncomplete(tbl *model.Table) int {
	kept := tbl.Records[:0]
	for _, rec := range tbl.Records {
		if !rec.HasNull() {
			kept = append(kept, rec)
		}
	}
	dropped := len(tbl.Records) - len(kept)
	for i := len(kept); i < len(tbl.Records); i++ {
		tbl.Records[i] = nil
	}
	tbl.Records = kept
	return dropped
}
