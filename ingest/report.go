package ingest

import (
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sig-0/mxnrates/series"
	"github.com/sig-0/mxnrates/types"
)

// DayResult is the outcome of a single day's ingest.
// Err is set if the day failed, otherwise Split holds the day's values
type DayResult struct {
	Date    time.Time           `json:"date"`
	Err     error               `json:"-"`
	URL     string              `json:"url"`
	Records []*types.BankRecord `json:"-"`
	Split   series.DailySplit   `json:"-"`
}

// Failed returns true if the day could not be ingested
func (d *DayResult) Failed() bool {
	return d.Err != nil
}

// Report is the outcome of a backfill run, one result per attempted day
type Report struct {
	Started  time.Time    `json:"started"`
	Finished time.Time    `json:"finished"`
	Results  []*DayResult `json:"-"`
	RunID    xid.ID       `json:"run_id"`
}

// Succeeded returns the successful day results, in run order
func (r *Report) Succeeded() []*DayResult {
	out := make([]*DayResult, 0, len(r.Results))

	for _, res := range r.Results {
		if !res.Failed() {
			out = append(out, res)
		}
	}

	return out
}

// Failed returns the failed day results, in run order
func (r *Report) Failed() []*DayResult {
	var out []*DayResult

	for _, res := range r.Results {
		if res.Failed() {
			out = append(out, res)
		}
	}

	return out
}

// Splits returns the daily splits of the successful days, in run order
func (r *Report) Splits() []series.DailySplit {
	succeeded := r.Succeeded()

	out := make([]series.DailySplit, 0, len(succeeded))
	for _, res := range succeeded {
		out = append(out, res.Split)
	}

	return out
}

// DayError is returned when a day fails and the run is aborted
type DayError struct {
	Date time.Time
	Err  error
}

func (e *DayError) Error() string {
	return fmt.Sprintf("unable to ingest %s: %s", e.Date.Format(time.DateOnly), e.Err)
}

func (e *DayError) Unwrap() error {
	return e.Err
}
