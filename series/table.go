package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"

	"github.com/sig-0/mxnrates/types"
)

// IndexColumn is the date index column name, always the first CSV column
const IndexColumn = "date"

// cellPrefix marks every reported cell, so that no source text
// (e.g. "NaN") can be read back by the frame as NA
const cellPrefix = "="

// Table is a date-indexed, bank-columned table of a single category's rates.
// Cells are kept as the source text, absent cells are NA.
// The date index is held beside the frame, which only holds bank columns
type Table struct {
	frame    dataframe.DataFrame
	dates    []time.Time
	category types.Category
}

// Row is a single table row, with absent banks omitted
type Row struct {
	Date   time.Time         `json:"date"`
	Values map[string]string `json:"values"`
}

// Category returns the table's rate category
func (t *Table) Category() types.Category {
	return t.category
}

// Len returns the number of rows (days) in the table
func (t *Table) Len() int {
	return len(t.dates)
}

// Banks returns the bank columns, in order of first appearance
func (t *Table) Banks() []string {
	if t.Len() == 0 {
		return nil
	}

	return t.frame.Names()
}

// Dates returns the row dates, in row order
func (t *Table) Dates() []time.Time {
	return slices.Clone(t.dates)
}

// Value returns the bank's value at the given row, if reported
func (t *Table) Value(row int, bank string) (string, bool) {
	if row < 0 || row >= t.Len() {
		return "", false
	}

	if !slices.Contains(t.Banks(), bank) {
		return "", false
	}

	return cellValue(t.frame.Col(bank).Elem(row))
}

// Decimal parses the bank's value at the given row as a decimal.
// Thousands separators are dropped
func (t *Table) Decimal(row int, bank string) (decimal.Decimal, bool, error) {
	v, ok := t.Value(row, bank)
	if !ok {
		return decimal.Zero, false, nil
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", ""))
	if err != nil {
		return decimal.Zero, true, fmt.Errorf("unable to parse rate %q: %w", v, err)
	}

	return d, true, nil
}

// Rows returns the table rows, in row order
func (t *Table) Rows() []Row {
	var (
		banks = t.Banks()
		rows  = make([]Row, 0, t.Len())
	)

	for i, date := range t.dates {
		row := Row{
			Date:   date,
			Values: make(map[string]string, len(banks)),
		}

		for _, bank := range banks {
			if v, ok := t.Value(i, bank); ok {
				row.Values[bank] = v
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// WriteCSV writes the table as CSV, with a header row.
// Absent cells are written empty
func (t *Table) WriteCSV(w io.Writer) error {
	var (
		cw    = csv.NewWriter(w)
		banks = t.Banks()
	)

	header := append([]string{IndexColumn}, banks...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %w", err)
	}

	for i, date := range t.dates {
		record := make([]string, 0, len(header))
		record = append(record, date.Format(time.DateOnly))

		for _, bank := range banks {
			v, _ := t.Value(i, bank)

			record = append(record, v)
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("unable to write row %d: %w", i, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// cellValue returns the source text of a stored cell, if reported
func cellValue(elem series.Element) (string, bool) {
	if elem.IsNA() {
		return "", false
	}

	return strings.CutPrefix(elem.String(), cellPrefix)
}

// rowFrame builds a single-row frame from a day's bank values,
// returning the day's date. Banks are ordered lexically
func rowFrame(
	category types.Category,
	values map[string]Entry,
) (time.Time, dataframe.DataFrame, error) {
	banks := make([]string, 0, len(values))
	for bank := range values {
		banks = append(banks, bank)
	}

	slices.Sort(banks)

	date := values[banks[0]].Date

	columns := make([]series.Series, 0, len(banks))

	for _, bank := range banks {
		entry := values[bank]

		if !types.SameDate(entry.Date, date) {
			return time.Time{}, dataframe.DataFrame{}, &InconsistentDateError{
				Category: category,
				Bank:     bank,
				Want:     date,
				Got:      entry.Date,
			}
		}

		columns = append(columns, series.New([]string{cellPrefix + entry.Value}, series.String, bank))
	}

	frame := dataframe.New(columns...)

	return types.Date(date), frame, frame.Err
}

// concat stacks the frames in order, over the union of their columns.
// Columns keep their first-appearance order, missing cells are NA
func concat(frames []dataframe.DataFrame) (dataframe.DataFrame, error) {
	if len(frames) == 0 {
		return dataframe.DataFrame{}, nil
	}

	var (
		names []string
		seen  = make(map[string]struct{})
		total int
	)

	// Gather the column union
	for _, frame := range frames {
		if frame.Err != nil {
			return dataframe.DataFrame{}, frame.Err
		}

		for _, name := range frame.Names() {
			if _, ok := seen[name]; ok {
				continue
			}

			seen[name] = struct{}{}
			names = append(names, name)
		}

		total += frame.Nrow()
	}

	values := make(map[string][]interface{}, len(names))
	for _, name := range names {
		values[name] = make([]interface{}, 0, total)
	}

	// Copy the cells, leaving NA where a frame lacks the column
	for _, frame := range frames {
		present := frame.Names()

		for _, name := range names {
			if !slices.Contains(present, name) {
				for i := 0; i < frame.Nrow(); i++ {
					values[name] = append(values[name], nil)
				}

				continue
			}

			col := frame.Col(name)

			for i := 0; i < frame.Nrow(); i++ {
				elem := col.Elem(i)
				if elem.IsNA() {
					values[name] = append(values[name], nil)

					continue
				}

				values[name] = append(values[name], elem.String())
			}
		}
	}

	columns := make([]series.Series, 0, len(names))
	for _, name := range names {
		columns = append(columns, series.New(values[name], series.String, name))
	}

	out := dataframe.New(columns...)

	return out, out.Err
}
