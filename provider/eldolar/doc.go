// Package eldolar provides the USD/MXN bank quotes provider for eldolar.info.
//
// # Source
//
// URL: https://www.eldolar.info/es-MX/mexico/dia/YYYYMMDD
// One page per calendar day.
//
// Each page renders a single table of bank quotes. Every body row belongs
// to one bank; the bank name is read from the title attribute of the span
// in the first cell, not from the visible text.
//
// # Row shapes
//
// The quote category is inferred from the number of cells in the row:
//
//	4 cells      -> otro   = last cell
//	other counts -> compra = second-to-last cell, venta = last cell
//
// This mirrors the current page layout and is not a semantic
// classification; values are kept as the rendered text.
//
// # Errors
//
//   - FetchError: the page could not be retrieved (transport error or non-2xx)
//   - MissingTableError: the page has no table body
//   - MalformedRowError: a row lacks the bank title or enough cells
//
// Any error fails the whole day, no partial records are returned.
package eldolar
