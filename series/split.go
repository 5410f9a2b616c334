package series

import (
	"time"

	"github.com/sig-0/mxnrates/types"
)

// Entry is the value a bank reported for a category on a given day
type Entry struct {
	Date  time.Time
	Value string
}

// DailySplit holds a single day's bank values, per category
type DailySplit struct {
	Compra map[string]Entry
	Venta  map[string]Entry
	Otro   map[string]Entry
}

// NewDailySplit creates an empty daily split
func NewDailySplit() DailySplit {
	return DailySplit{
		Compra: make(map[string]Entry),
		Venta:  make(map[string]Entry),
		Otro:   make(map[string]Entry),
	}
}

// Map returns the bank values for the given category
func (d DailySplit) Map(c types.Category) map[string]Entry {
	switch c {
	case types.CategoryCompra:
		return d.Compra
	case types.CategoryVenta:
		return d.Venta
	case types.CategoryOtro:
		return d.Otro
	default:
		return nil
	}
}

// Empty returns true if no bank reported any category
func (d DailySplit) Empty() bool {
	return len(d.Compra) == 0 && len(d.Venta) == 0 && len(d.Otro) == 0
}

// Split partitions a day's records into per-category bank values.
// A bank listed twice on the same day keeps its last occurrence
func Split(records []*types.BankRecord) DailySplit {
	split := NewDailySplit()

	for _, record := range records {
		if record == nil || record.Values == nil {
			continue
		}

		for _, category := range types.Categories {
			value, ok := record.Values.Get(category)
			if !ok {
				continue
			}

			split.Map(category)[record.Bank] = Entry{
				Date:  record.Date,
				Value: value,
			}
		}
	}

	return split
}

// Duplicates returns the bank names listed more than once,
// in order of their second appearance
func Duplicates(records []*types.BankRecord) []string {
	var (
		seen       = make(map[string]struct{}, len(records))
		reported   = make(map[string]struct{})
		duplicates []string
	)

	for _, record := range records {
		if record == nil {
			continue
		}

		if _, ok := seen[record.Bank]; !ok {
			seen[record.Bank] = struct{}{}

			continue
		}

		if _, ok := reported[record.Bank]; ok {
			continue
		}

		reported[record.Bank] = struct{}{}
		duplicates = append(duplicates, record.Bank)
	}

	return duplicates
}
