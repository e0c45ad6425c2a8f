package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

// Memory is a process-local history backend.
type Memory struct {
	mu       sync.Mutex
	records  []invoice.Record
	StoreErr error
}

func NewMemory(records ...invoice.Record) *Memory {
	return &Memory{records: slices.Clone(records)}
}

func (m *Memory) Load(_ context.Context) ([]invoice.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.records == nil {
		return []invoice.Record{}, nil
	}

	return slices.Clone(m.records), nil
}

func (m *Memory) Store(_ context.Context, records []invoice.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.StoreErr != nil {
		return m.StoreErr
	}

	m.records = slices.Clone(records)

	return nil
}
