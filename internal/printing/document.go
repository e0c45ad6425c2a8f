package printing

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

// Document is what gets printed: either a saved record or the form as it
// currently stands.
type Document struct {
	Header   invoice.Header
	Items    []invoice.LineItem
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

func FromRecord(r invoice.Record) Document {
	return Document{
		Header:   r.Header(),
		Items:    r.Items,
		Subtotal: r.Subtotal,
		Total:    r.Total,
	}
}

func FromForm(h invoice.Header, l invoice.Ledger) Document {
	return Document{
		Header:   h,
		Items:    l.Items(),
		Subtotal: l.Subtotal(),
		Total:    l.Total(),
	}
}
