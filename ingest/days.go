package ingest

import (
	"iter"
	"time"

	"github.com/sig-0/mxnrates/types"
)

// Days yields every calendar date from start to end, both inclusive.
// Nothing is yielded if end is before start
func Days(start, end time.Time) iter.Seq[time.Time] {
	var (
		from = types.Date(start)
		to   = types.Date(end)
	)

	return func(yield func(time.Time) bool) {
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			if !yield(day) {
				return
			}
		}
	}
}

// Today returns the current calendar date in Mexico City
func Today() time.Time {
	return types.Date(time.Now().In(mexicoCityLocation()))
}

func mexicoCityLocation() *time.Location {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err == nil {
		return loc
	}

	return time.FixedZone("CST", -6*60*60)
}
