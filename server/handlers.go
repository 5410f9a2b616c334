package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sig-0/mxnrates/provider/currencies"
	"github.com/sig-0/mxnrates/series"
	"github.com/sig-0/mxnrates/types"
)

var (
	errInvalidCategory = errors.New("invalid category (must be compra, venta or otro)")
	errInvalidFormat   = errors.New("invalid format (must be json or csv)")
	errInvalidNumeric  = errors.New("invalid numeric flag")
	errMissingReport   = errors.New("no backfill report available")
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

func (s *Server) Series(w http.ResponseWriter, _ *http.Request) {
	resp := &SeriesResponse{
		Base:    currencies.USD,
		Target:  currencies.MXN,
		Results: make([]SeriesSummary, 0, len(types.Categories)),
	}

	for _, category := range types.Categories {
		table := s.tables.Table(category)

		summary := SeriesSummary{
			Category: category,
			Rows:     table.Len(),
			Banks:    table.Banks(),
		}

		if dates := table.Dates(); len(dates) > 0 {
			summary.From = &dates[0]
			summary.To = &dates[len(dates)-1]
		}

		resp.Results = append(resp.Results, summary)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) Table(w http.ResponseWriter, r *http.Request) {
	var (
		categoryParam = chi.URLParam(r, "category")

		formatParam  = r.URL.Query().Get("format")
		numericParam = r.URL.Query().Get("numeric")
	)

	// Parse the category
	category, err := parseCategory(categoryParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the output format
	format, err := parseFormat(formatParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the numeric flag (JSON only)
	numeric, err := parseNumeric(numericParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	table := s.tables.Table(category)

	if format == formatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)

		if err := table.WriteCSV(w); err != nil {
			s.logger.Debug(
				"unable to write table",
				"category", category.String(),
				"err", err,
			)
		}

		return
	}

	if numeric {
		writeJSON(w, http.StatusOK, &NumericTableResponse{
			Category: category,
			Banks:    table.Banks(),
			Rows:     numericRows(table),
		})

		return
	}

	writeJSON(w, http.StatusOK, &TableResponse{
		Category: category,
		Banks:    table.Banks(),
		Rows:     table.Rows(),
	})
}

func (s *Server) Report(w http.ResponseWriter, _ *http.Request) {
	if s.report == nil {
		writeError(w, http.StatusNotFound, errMissingReport)

		return
	}

	failed := s.report.Failed()

	resp := &ReportResponse{
		RunID:    s.report.RunID.String(),
		Started:  s.report.Started,
		Finished: s.report.Finished,
		Days:     len(s.report.Results),
		Failed:   make([]FailedDay, 0, len(failed)),
	}

	for _, res := range failed {
		resp.Failed = append(resp.Failed, FailedDay{
			Date:  res.Date,
			URL:   res.URL,
			Error: res.Err.Error(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// numericRows converts the table rows to decimals.
// Values that are not numbers (e.g. placeholders) are kept as null
func numericRows(table *series.Table) []NumericRow {
	var (
		dates = table.Dates()
		banks = table.Banks()
		rows  = make([]NumericRow, 0, len(dates))
	)

	for i, date := range dates {
		row := NumericRow{
			Date:   date,
			Values: make(map[string]*decimal.Decimal, len(banks)),
		}

		for _, bank := range banks {
			d, ok, err := table.Decimal(i, bank)
			if !ok {
				continue
			}

			if err != nil {
				row.Values[bank] = nil

				continue
			}

			row.Values[bank] = &d
		}

		rows = append(rows, row)
	}

	return rows
}

func parseCategory(v string) (types.Category, error) {
	c := types.Category(strings.ToLower(strings.TrimSpace(v)))
	if !c.Valid() {
		return "", errInvalidCategory
	}

	return c, nil
}

func parseFormat(v string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(v)); f {
	case "", formatJSON:
		return formatJSON, nil
	case formatCSV:
		return formatCSV, nil
	default:
		return "", errInvalidFormat
	}
}

func parseNumeric(v string) (bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errInvalidNumeric
	}

	return b, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
