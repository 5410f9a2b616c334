package series

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/sig-0/mxnrates/types"
)

// InconsistentDateError is returned when a day's category values
// carry more than one date
type InconsistentDateError struct {
	Want     time.Time
	Got      time.Time
	Category types.Category
	Bank     string
}

func (e *InconsistentDateError) Error() string {
	return fmt.Sprintf(
		"inconsistent %s date for bank %q: expected %s, got %s",
		e.Category,
		e.Bank,
		e.Want.Format(time.DateOnly),
		e.Got.Format(time.DateOnly),
	)
}

// Set holds the assembled table of every category
type Set struct {
	Compra *Table
	Venta  *Table
	Otro   *Table
}

// Table returns the table for the given category, nil if unknown
func (s *Set) Table(c types.Category) *Table {
	switch c {
	case types.CategoryCompra:
		return s.Compra
	case types.CategoryVenta:
		return s.Venta
	case types.CategoryOtro:
		return s.Otro
	default:
		return nil
	}
}

// Assemble builds the per-category tables from the daily splits.
// Rows follow the input order; a day with no values for a category
// adds no row to that category's table
func Assemble(splits []DailySplit) (*Set, error) {
	tables := make(map[types.Category]*Table, len(types.Categories))

	for _, category := range types.Categories {
		table, err := assembleCategory(category, splits)
		if err != nil {
			return nil, fmt.Errorf("unable to assemble %s table: %w", category, err)
		}

		tables[category] = table
	}

	return &Set{
		Compra: tables[types.CategoryCompra],
		Venta:  tables[types.CategoryVenta],
		Otro:   tables[types.CategoryOtro],
	}, nil
}

func assembleCategory(category types.Category, splits []DailySplit) (*Table, error) {
	var (
		frames = make([]dataframe.DataFrame, 0, len(splits))
		dates  = make([]time.Time, 0, len(splits))
	)

	for _, split := range splits {
		values := split.Map(category)
		if len(values) == 0 {
			continue
		}

		date, frame, err := rowFrame(category, values)
		if err != nil {
			return nil, err
		}

		frames = append(frames, frame)
		dates = append(dates, date)
	}

	frame, err := concat(frames)
	if err != nil {
		return nil, err
	}

	return &Table{
		frame:    frame,
		dates:    dates,
		category: category,
	}, nil
}
