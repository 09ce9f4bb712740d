// Package view turns a ledger into what the page and the terminal show: one
// row per record plus the formatted total. Views are rebuilt in full after
// every mutation.
package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tracker/internal/core"
)

// DefaultCurrency is the glyph shown next to amounts.
const DefaultCurrency = "₹"

// Formatter prints amounts with two decimals using the number conventions of
// a locale.
type Formatter struct {
	printer  *message.Printer
	currency string
}

func NewFormatter(tag language.Tag, currency string) Formatter {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Formatter{printer: message.NewPrinter(tag), currency: currency}
}

// Number formats m with exactly two decimals, e.g. "12.99".
func (f Formatter) Number(m core.Money) string {
	return f.printer.Sprintf("%.2f", m.Float64())
}

// Amount formats m with the currency glyph, e.g. "₹ 12.99".
func (f Formatter) Amount(m core.Money) string {
	return f.currency + " " + f.Number(m)
}

func (f Formatter) Currency() string {
	return f.currency
}

// Row is one rendered expense. Index is the record's position at render time;
// ID stays valid across re-renders within a session.
type Row struct {
	Index  int
	ID     string
	Name   string
	Amount string
}

// Ledger is the view model of the list and the total.
type Ledger struct {
	Rows     []Row
	Total    string
	Currency string
	Count    int
}

// List rebuilds the rows from the ledger in ledger order.
func List(l *core.Ledger, f Formatter) []Row {
	recs := l.Records()
	rows := make([]Row, 0, len(recs))
	for i, e := range recs {
		rows = append(rows, Row{
			Index:  i,
			ID:     e.ID,
			Name:   e.Name,
			Amount: f.Amount(e.Amount),
		})
	}
	return rows
}

// Total formats the ledger total with two decimals.
func Total(l *core.Ledger, f Formatter) string {
	return f.Number(l.Total())
}

// Build returns the complete view model for a ledger.
func Build(l *core.Ledger, f Formatter) Ledger {
	return Ledger{
		Rows:     List(l, f),
		Total:    Total(l, f),
		Currency: f.Currency(),
		Count:    l.Len(),
	}
}
