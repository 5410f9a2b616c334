package eldolar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/mxnrates/types"
)

var testDate = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

// bankRow renders a body row whose first cell carries the bank title
func bankRow(bank string, values ...string) string {
	var b strings.Builder

	b.WriteString(`<tr><td><span title="` + bank + `">` + bank + `</span></td>`)

	for _, v := range values {
		b.WriteString("<td>" + v + "</td>")
	}

	b.WriteString("</tr>")

	return b.String()
}

// page wraps the given rows in a full quotes page
func page(rows ...string) string {
	return `<html><body>
<table class="table">
<thead><tr><th>Banco</th><th>Compra</th><th>Venta</th></tr></thead>
<tbody>` + strings.Join(rows, "\n") + `</tbody>
</table>
</body></html>`
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("buy and sell row", func(t *testing.T) {
		t.Parallel()

		records, err := Extract(
			strings.NewReader(page(bankRow("BancoX", "19.10", "19.50"))),
			testDate,
		)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, "BancoX", records[0].Bank)
		assert.Equal(t, testDate, records[0].Date)
		assert.Equal(t, types.BuySell{Compra: "19.10", Venta: "19.50"}, records[0].Values)
	})

	t.Run("single value row", func(t *testing.T) {
		t.Parallel()

		records, err := Extract(
			strings.NewReader(page(bankRow("BancoX", "—", "19.40", "19.45"))),
			testDate,
		)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, types.Single{Otro: "19.45"}, records[0].Values)

		_, ok := records[0].Values.Get(types.CategoryCompra)
		assert.False(t, ok)
	})

	t.Run("wide row uses the last two cells", func(t *testing.T) {
		t.Parallel()

		records, err := Extract(
			strings.NewReader(page(bankRow("BancoY", "a", "b", "c", "18.90", "19.30"))),
			testDate,
		)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, types.BuySell{Compra: "18.90", Venta: "19.30"}, records[0].Values)
	})

	t.Run("bank name comes from the title", func(t *testing.T) {
		t.Parallel()

		row := `<tr><td><img src="logo.png"><span title="Banco Azteca">Azteca</span></td>` +
			`<td>19.00</td><td>19.60</td></tr>`

		records, err := Extract(strings.NewReader(page(row)), testDate)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, "Banco Azteca", records[0].Bank)
	})

	t.Run("cell text is stripped and joined", func(t *testing.T) {
		t.Parallel()

		row := bankRow("BancoX", "\n  19.10 <small> MXN </small>\n", " 19.50 ")

		records, err := Extract(strings.NewReader(page(row)), testDate)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, types.BuySell{Compra: "19.10MXN", Venta: "19.50"}, records[0].Values)
	})

	t.Run("rows keep page order", func(t *testing.T) {
		t.Parallel()

		records, err := Extract(
			strings.NewReader(page(
				bankRow("Banorte", "19.00", "19.70"),
				bankRow("Afirme", "—", "19.20", "19.25"),
				bankRow("BBVA", "19.05", "19.65"),
			)),
			testDate,
		)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, "Banorte", records[0].Bank)
		assert.Equal(t, "Afirme", records[1].Bank)
		assert.Equal(t, "BBVA", records[2].Bank)
	})

	t.Run("date is normalized", func(t *testing.T) {
		t.Parallel()

		at := time.Date(2024, time.March, 5, 17, 45, 0, 0, time.UTC)

		records, err := Extract(strings.NewReader(page(bankRow("BancoX", "1", "2"))), at)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, testDate, records[0].Date)
	})

	t.Run("empty table body", func(t *testing.T) {
		t.Parallel()

		records, err := Extract(strings.NewReader(page()), testDate)
		require.NoError(t, err)

		assert.Empty(t, records)
	})

	t.Run("missing table", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(
			strings.NewReader("<html><body><p>Sin datos</p></body></html>"),
			testDate,
		)

		var missingErr *MissingTableError

		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, testDate, missingErr.Date)
	})

	t.Run("table without body", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(
			strings.NewReader(
				`<table><tr><td><span title="BancoX">X</span></td><td>19.10</td><td>19.50</td></tr></table>`,
			),
			testDate,
		)

		var missingErr *MissingTableError

		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, testDate, missingErr.Date)
	})

	t.Run("nested table rows are skipped", func(t *testing.T) {
		t.Parallel()

		records, err := Extract(
			strings.NewReader(page(
				`<tr><td><span title="BancoX">X</span>`+
					`<table><tbody><tr><td>nota</td></tr></tbody></table></td>`+
					`<td>19.10</td><td>19.50</td></tr>`,
			)),
			testDate,
		)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, "BancoX", records[0].Bank)
		assert.Equal(t, types.BuySell{Compra: "19.10", Venta: "19.50"}, records[0].Values)
	})

	t.Run("missing bank title", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(
			strings.NewReader(page(
				bankRow("BancoX", "19.10", "19.50"),
				"<tr><td>Banco</td><td>Compra</td><td>Venta</td></tr>",
			)),
			testDate,
		)

		var rowErr *MalformedRowError

		require.ErrorAs(t, err, &rowErr)
		assert.Equal(t, 1, rowErr.Row)
	})

	t.Run("header cells only", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(
			strings.NewReader(page("<tr><th>Banco</th><th>Compra</th></tr>")),
			testDate,
		)

		var rowErr *MalformedRowError

		assert.ErrorAs(t, err, &rowErr)
	})

	t.Run("too few cells", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(strings.NewReader(page(bankRow("BancoX"))), testDate)

		var rowErr *MalformedRowError

		require.ErrorAs(t, err, &rowErr)
		assert.Equal(t, 0, rowErr.Row)
	})
}

func TestDecodeRow(t *testing.T) {
	t.Parallel()

	testTable := []struct {
		expected types.Values
		name     string
		cells    []string
	}{
		{
			name:     "three cells",
			cells:    []string{"X", "19.10", "19.50"},
			expected: types.BuySell{Compra: "19.10", Venta: "19.50"},
		},
		{
			name:     "four cells",
			cells:    []string{"X", "—", "19.40", "19.45"},
			expected: types.Single{Otro: "19.45"},
		},
		{
			name:     "two cells",
			cells:    []string{"19.10", "19.50"},
			expected: types.BuySell{Compra: "19.10", Venta: "19.50"},
		},
		{
			name:     "five cells",
			cells:    []string{"X", "a", "b", "19.10", "19.50"},
			expected: types.BuySell{Compra: "19.10", Venta: "19.50"},
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			values, err := decodeRow(testCase.cells)
			require.NoError(t, err)

			assert.Equal(t, testCase.expected, values)
		})
	}

	t.Run("single cell", func(t *testing.T) {
		t.Parallel()

		_, err := decodeRow([]string{"X"})

		assert.Error(t, err)
	})
}
