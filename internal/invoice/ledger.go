package invoice

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Ledger is the ordered list of line items on the invoice being authored.
// Commands never modify the receiver; they return the next Ledger.
type Ledger struct {
	items []LineItem
}

// NewLedger returns the ledger a new form starts with: one default item.
func NewLedger() Ledger {
	return Ledger{items: []LineItem{NewLineItem()}}
}

// LedgerOf builds a ledger holding a copy of items.
func LedgerOf(items ...LineItem) Ledger {
	return Ledger{items: slices.Clone(items)}
}

func (l Ledger) Len() int {
	return len(l.items)
}

// Items returns a copy of the current items.
func (l Ledger) Items() []LineItem {
	return slices.Clone(l.items)
}

// Item returns the item at index.
func (l Ledger) Item(index int) (LineItem, error) {
	if err := l.checkIndex(index); err != nil {
		return LineItem{}, err
	}

	return l.items[index], nil
}

func (l Ledger) AddItem() Ledger {
	items := make([]LineItem, len(l.items), len(l.items)+1)
	copy(items, l.items)

	return Ledger{items: append(items, NewLineItem())}
}

func (l Ledger) RemoveItem(index int) (Ledger, error) {
	if err := l.checkIndex(index); err != nil {
		return l, err
	}

	items := make([]LineItem, 0, len(l.items)-1)
	items = append(items, l.items[:index]...)
	items = append(items, l.items[index+1:]...)

	return Ledger{items: items}, nil
}

// UpdateItem replaces one field of the item at index. Quantity and unit price
// are taken from raw text input and coerced; see CoerceQuantity and CoercePrice.
func (l Ledger) UpdateItem(index int, field Field, value string) (Ledger, error) {
	if err := l.checkIndex(index); err != nil {
		return l, err
	}

	items := l.Items()
	item := &items[index]

	switch field {
	case FieldDescription:
		item.Description = value
	case FieldQuantity:
		item.Quantity = CoerceQuantity(value)
	case FieldUnitPrice:
		item.UnitPrice = CoercePrice(value)
	default:
		return l, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	return Ledger{items: items}, nil
}

func (l Ledger) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range l.items {
		sum = sum.Add(LineTotal(item))
	}

	return sum
}

// Total equals Subtotal; invoices carry no tax or discount.
func (l Ledger) Total() decimal.Decimal {
	return l.Subtotal()
}

func (l Ledger) checkIndex(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(l.items))
	}

	return nil
}
