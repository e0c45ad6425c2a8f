package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrIndexOutOfRange = errors.New("line item index out of range")
	ErrUnknownField    = errors.New("unknown line item field")
)

// LineItem is one row of an invoice. It has no identity beyond its position in a Ledger.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
}

// NewLineItem returns the item a fresh row starts with.
func NewLineItem() LineItem {
	return LineItem{Quantity: 1, UnitPrice: decimal.Zero}
}

// LineTotal is quantity times unit price.
func LineTotal(item LineItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
}

// Field names an editable LineItem attribute.
type Field string

const (
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldUnitPrice   Field = "unitPrice"
)

// ParseField maps a field name to a Field. "price" is accepted for unitPrice
// because that is the key used in stored invoices.
func ParseField(s string) (Field, error) {
	switch strings.TrimSpace(s) {
	case string(FieldDescription):
		return FieldDescription, nil
	case string(FieldQuantity), "qty":
		return FieldQuantity, nil
	case string(FieldUnitPrice), "price", "unit_price":
		return FieldUnitPrice, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Header holds the non-item fields of the invoice form.
type Header struct {
	Number          string
	Date            Date
	Customer        string
	CustomerAddress string
	Notes           string
}

// NewHeader returns an empty header dated on the day of now.
func NewHeader(now time.Time) Header {
	return Header{Date: DateOf(now)}
}

// Record is a saved invoice. It is never modified after Build returns it.
type Record struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	Date            Date            `json:"date"`
	Customer        string          `json:"customer"`
	CustomerAddress string          `json:"customerAddress,omitempty"`
	Items           []LineItem      `json:"items"`
	Notes           string          `json:"notes,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Header returns the form fields the record was built from.
func (r Record) Header() Header {
	return Header{
		Number:          r.Number,
		Date:            r.Date,
		Customer:        r.Customer,
		CustomerAddress: r.CustomerAddress,
		Notes:           r.Notes,
	}
}
