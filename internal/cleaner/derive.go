package cleaner

import (
	"github.com/obahii/data-cleaning/internal/cin"
	"github.com/obahii/data-cleaning/internal/model"
)

// DeriveCity overwrites the ville column of every record with the city
// resolved from its cin, including values that were already set. Records
// whose cin does not resolve get a null city.
func DeriveCity(tbl *model.Table) (resolved, missing int) {
	idCol, ok := tbl.ColumnIndex(model.ColCIN)
	if !ok {
		return 0, 0
	}
	cityCol, ok := tbl.ColumnIndex(model.ColCity)
	if !ok {
		return 0, 0
	}
	for _, rec := range tbl.Records {
		city := cin.City(rec[idCol])
		rec[cityCol] = city
		if city.IsNull() {
			missing++
		} else {
			resolved++
		}
	}
	return resolved, missing
}
