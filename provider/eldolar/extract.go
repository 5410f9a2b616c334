package eldolar

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/sig-0/mxnrates/types"
)

// singleValueCells is the row length the page uses for banks
// that publish a single rate
const singleValueCells = 4

// Extract parses the day page and returns a record per row of its
// first table body. Any undecodable row fails the whole page
func Extract(r io.Reader, date time.Time) ([]*types.BankRecord, error) {
	date = types.Date(date)

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read page: %w", err)
	}

	// The parser inserts a tbody into any table that lacks one,
	// so its presence is checked on the markup itself
	found, err := hasTableBody(raw)
	if err != nil {
		return nil, fmt.Errorf("unable to tokenize html: %w", err)
	}

	if !found {
		return nil, &MissingTableError{Date: date}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unable to parse html: %w", err)
	}

	return extractDocument(doc, date)
}

// hasTableBody returns true if the markup holds a tbody start tag
func hasTableBody(raw []byte) (bool, error) {
	z := html.NewTokenizer(bytes.NewReader(raw))

	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return false, nil
			}

			return false, z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Tbody {
				return true, nil
			}
		}
	}
}

// extractDocument returns a record per direct row of the document's
// first table body, reading only the row's own cells
func extractDocument(doc *goquery.Document, date time.Time) ([]*types.BankRecord, error) {
	tbody := doc.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, &MissingTableError{Date: date}
	}

	var (
		rows    = tbody.ChildrenFiltered("tr")
		records = make([]*types.BankRecord, 0, rows.Length())
		rowErr  error
	)

	rows.EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() == 0 {
			rowErr = &MalformedRowError{Date: date, Row: i, Reason: "no cells"}

			return false
		}

		// The bank identity lives in the title of the first cell's span,
		// the visible text is display formatting only
		bank, ok := cells.First().Find("span[title]").First().Attr("title")
		if !ok || strings.TrimSpace(bank) == "" {
			rowErr = &MalformedRowError{Date: date, Row: i, Reason: "missing bank title"}

			return false
		}

		values := make([]string, 0, cells.Length())

		cells.Each(func(_ int, td *goquery.Selection) {
			values = append(values, strippedText(td))
		})

		decoded, err := decodeRow(values)
		if err != nil {
			rowErr = &MalformedRowError{Date: date, Row: i, Reason: err.Error()}

			return false
		}

		records = append(records, &types.BankRecord{
			Date:   date,
			Bank:   bank,
			Values: decoded,
		})

		return true
	})

	if rowErr != nil {
		return nil, rowErr
	}

	return records, nil
}

// decodeRow maps a row's cell values to its rate values, by row length:
// 4 cells carry a single rate in the last cell, any other length
// carries buy and sell in the last two cells
func decodeRow(cells []string) (types.Values, error) {
	n := len(cells)

	if n == singleValueCells {
		return types.Single{Otro: cells[n-1]}, nil
	}

	if n < 2 {
		return nil, fmt.Errorf("expected at least 2 cells, got %d", n)
	}

	return types.BuySell{
		Compra: cells[n-2],
		Venta:  cells[n-1],
	}, nil
}

// strippedText joins every trimmed text node under the selection
func strippedText(sel *goquery.Selection) string {
	var (
		b    strings.Builder
		walk func(n *html.Node)
	)

	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))

			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return b.String()
}
