package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/faktur/internal/encoding"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

// DefaultKey is the storage key the saved invoices live under.
const DefaultKey = "invoices"

var (
	ErrNotFound    = errors.New("invoice not found")
	ErrStoreFailed = errors.New("storing invoice history failed")
)

// Decode parses a stored history. Empty input is an empty history.
func Decode(r io.Reader) ([]invoice.Record, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []invoice.Record{}, nil
	}

	var records []invoice.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	if records == nil {
		records = []invoice.Record{}
	}

	return records, nil
}

// Encode serializes a history as a JSON array.
func Encode(records []invoice.Record) ([]byte, error) {
	if records == nil {
		records = []invoice.Record{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}

	return data, nil
}
