package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

// inputText holds a form value that clients may send as a JSON string or number.
// It is kept as text so it goes through the same coercion as typed input.
type inputText string

func (t *inputText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*t = inputText(s)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*t = inputText(data)
	default:
		return fmt.Errorf("expected string or number, got %s", data)
	}

	return nil
}

type itemRequest struct {
	Description string     `json:"description"`
	Quantity    *inputText `json:"quantity"`
	UnitPrice   *inputText `json:"unit_price"`
}

type formRequest struct {
	Number          string        `json:"number"`
	Date            invoice.Date  `json:"date"`
	Customer        string        `json:"customer"`
	CustomerAddress string        `json:"customer_address"`
	Notes           string        `json:"notes"`
	Items           []itemRequest `json:"items"`
}

// header falls back to today's date when the client sent none.
func (f formRequest) header(now time.Time) invoice.Header {
	h := invoice.NewHeader(now)
	if !f.Date.IsZero() {
		h.Date = f.Date
	}

	h.Number = f.Number
	h.Customer = f.Customer
	h.CustomerAddress = f.CustomerAddress
	h.Notes = f.Notes

	return h
}

// ledger replays the posted items onto an empty ledger. Missing quantity and
// price keep the new-item defaults.
func ledgerFrom(items []itemRequest) (invoice.Ledger, error) {
	ledger := invoice.LedgerOf()

	for i, it := range items {
		ledger = ledger.AddItem()

		updates := []struct {
			field invoice.Field
			value *inputText
		}{
			{invoice.FieldDescription, new(inputText(it.Description))},
			{invoice.FieldQuantity, it.Quantity},
			{invoice.FieldUnitPrice, it.UnitPrice},
		}

		for _, u := range updates {
			if u.value == nil {
				continue
			}

			next, err := ledger.UpdateItem(i, u.field, string(*u.value))
			if err != nil {
				return invoice.Ledger{}, err
			}

			ledger = next
		}
	}

	return ledger, nil
}

type lineResponse struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type totalsResponse struct {
	Items    []lineResponse  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

func toTotalsResponse(l invoice.Ledger) totalsResponse {
	items := l.Items()

	resp := totalsResponse{
		Items:    make([]lineResponse, len(items)),
		Subtotal: l.Subtotal(),
		Total:    l.Total(),
	}

	for i, it := range items {
		resp.Items[i] = lineResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   invoice.LineTotal(it),
		}
	}

	return resp
}
