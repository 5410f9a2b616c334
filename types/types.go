package types

import "time"

type Currency string

func (c Currency) String() string {
	return string(c)
}

// Category is the rate category a bank value is reported under
type Category string

const (
	CategoryCompra Category = "compra" // buy rate
	CategoryVenta  Category = "venta"  // sell rate
	CategoryOtro   Category = "otro"   // single, undifferentiated rate
)

// Categories lists every category, in output order
var Categories = []Category{
	CategoryCompra,
	CategoryVenta,
	CategoryOtro,
}

func (c Category) String() string {
	return string(c)
}

// Valid returns true if the category is known
func (c Category) Valid() bool {
	switch c {
	case CategoryCompra, CategoryVenta, CategoryOtro:
		return true
	default:
		return false
	}
}

// Values are the rate values decoded from a single bank row.
// It is either Single or BuySell
type Values interface {
	// Get returns the value for the given category, if present
	Get(Category) (string, bool)

	isValues()
}

// Single is a row that carries one undifferentiated rate
type Single struct {
	Otro string `json:"otro"`
}

func (s Single) Get(c Category) (string, bool) {
	if c == CategoryOtro {
		return s.Otro, true
	}

	return "", false
}

func (Single) isValues() {}

// BuySell is a row that carries separate buy and sell rates
type BuySell struct {
	Compra string `json:"compra"`
	Venta  string `json:"venta"`
}

func (b BuySell) Get(c Category) (string, bool) {
	switch c {
	case CategoryCompra:
		return b.Compra, true
	case CategoryVenta:
		return b.Venta, true
	default:
		return "", false
	}
}

func (BuySell) isValues() {}

// BankRecord is a single bank's quote for a single day
type BankRecord struct {
	Date   time.Time `json:"date"`
	Values Values    `json:"values"`
	Bank   string    `json:"bank"`
}

// Date returns the UTC midnight of the given time's calendar date
func Date(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate returns true if both times fall on the same calendar date
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
