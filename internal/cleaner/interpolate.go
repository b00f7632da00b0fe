package cleaner

import (
	"math"
	"strings"
	"time"

	"github.com/obahii/data-cleaning/internal/model"
)

// timestampLayouts are tried in order when reading the created column.
var timestampLayouts = []string{
	model.TimestampLayout,
	model.TimestampInputLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04",
	model.DateInputLayout,
}

// ParseTimestamp reads v as a point in time. Nulls, numbers and unparseable
// strings report false.
func ParseTimestamp(v model.Value) (time.Time, bool) {
	if t, ok := v.Timestamp(); ok {
		return t, true
	}
	s, ok := v.Str()
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Interpolate fills every missing point lying between two known points by
// linear interpolation over the slice index. Points before the first or
// after the last known point stay missing. known is updated in place.
func Interpolate(ts []time.Time, known []bool) (filled int) {
	prev := -1
	for i := range ts {
		if !known[i] {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			span := float64(ts[i].Sub(ts[prev]))
			for j := prev + 1; j < i; j++ {
				frac := float64(j-prev) / float64(i-prev)
				ts[j] = ts[prev].Add(time.Duration(math.Round(span * frac)))
				known[j] = true
				filled++
			}
		}
		prev = i
	}
	return filled
}

// FillTimestamps parses the created column, interpolates its gaps and
// rounds every timestamp with RoundSecond. Entries that cannot be
// anchored on both sides are set to null.
func FillTimestamps(tbl *model.Table) (filled, unresolved int) {
	col, ok := tbl.ColumnIndex(model.ColCreated)
	if !ok {
		return 0, 0
	}

	n := tbl.Len()
	ts := make([]time.Time, n)
	known := make([]bool, n)
	for i, rec := range tbl.Records {
		ts[i], known[i] = ParseTimestamp(rec[col])
	}

	filled = Interpolate(ts, known)

	for i, rec := range tbl.Records {
		if !known[i] {
			rec[col] = model.Null()
			unresolved++
			continue
		}
		rec[col] = model.Time(RoundSecond(ts[i]))
	}
	return filled, unresolved
}

// RoundSecond rounds t to the nearest second. Exact half seconds go to the
// even second, so 00:00:02.5 becomes 00:00:02 and 00:00:03.5 00:00:04.
func RoundSecond(t time.Time) time.Time {
	down := t.Truncate(time.Second)
	switch rem := t.Sub(down); {
	case rem < time.Second/2:
		return down
	case rem > time.Second/2:
		return down.Add(time.Second)
	}
	if down.Unix()&1 == 0 {
		return down
	}
	return down.Add(time.Second)
}
