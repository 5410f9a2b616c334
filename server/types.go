package server

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sig-0/mxnrates/series"
	"github.com/sig-0/mxnrates/types"
)

type SeriesSummary struct {
	From     *time.Time     `json:"from"`
	To       *time.Time     `json:"to"`
	Category types.Category `json:"category"`
	Banks    []string       `json:"banks"`
	Rows     int            `json:"rows"`
}

type SeriesResponse struct {
	Base    types.Currency  `json:"base"`
	Target  types.Currency  `json:"target"`
	Results []SeriesSummary `json:"results"`
}

type TableResponse struct {
	Category types.Category `json:"category"`
	Banks    []string       `json:"banks"`
	Rows     []series.Row   `json:"rows"`
}

// NumericRow is a table row with values parsed as decimals.
// Unparseable values are null
type NumericRow struct {
	Date   time.Time                   `json:"date"`
	Values map[string]*decimal.Decimal `json:"values"`
}

type NumericTableResponse struct {
	Category types.Category `json:"category"`
	Banks    []string       `json:"banks"`
	Rows     []NumericRow   `json:"rows"`
}

type FailedDay struct {
	Date  time.Time `json:"date"`
	URL   string    `json:"url"`
	Error string    `json:"error"`
}

type ReportResponse struct {
	Started  time.Time   `json:"started"`
	Finished time.Time   `json:"finished"`
	RunID    string      `json:"run_id"`
	Failed   []FailedDay `json:"failed"`
	Days     int         `json:"days"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
