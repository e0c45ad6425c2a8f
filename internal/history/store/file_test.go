package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/history/store"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

func sampleRecords() []invoice.Record {
	date, _ := invoice.ParseDate("2024-01-01")

	return []invoice.Record{
		{
			Number:   "001",
			Date:     date,
			Customer: "Budi",
			Items: []invoice.LineItem{
				{Description: "Shirt", Quantity: 2, UnitPrice: decimal.NewFromInt(50000)},
			},
			Subtotal: decimal.NewFromInt(100000),
			Total:    decimal.NewFromInt(100000),
		},
	}
}

func TestFile_LoadAbsent(t *testing.T) {
	s := store.NewFile(t.TempDir(), history.DefaultKey)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFile_StoreThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := store.NewFile(dir, history.DefaultKey)

	require.NoError(t, s.Store(context.Background(), sampleRecords()))
	assert.Equal(t, filepath.Join(dir, "invoices.json"), s.Path())

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Budi", got[0].Customer)
	assert.Equal(t, "2024-01-01", got[0].Date.String())
	assert.True(t, decimal.NewFromInt(100000).Equal(got[0].Total))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFile_LoadMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "invoices.json"), []byte("{not json"), 0o644))

	_, err := store.NewFile(dir, history.DefaultKey).Load(context.Background())
	assert.Error(t, err)
}

func TestFile_LoadMalformedThroughServiceIsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "invoices.json"), []byte("{not json"), 0o644))

	svc := history.NewService(store.NewFile(dir, history.DefaultKey), nil)
	assert.Empty(t, svc.Load(context.Background()))
}

func TestFile_LoadWithBOM(t *testing.T) {
	dir := t.TempDir()
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`[{"number":"001","customer":"Budi"}]`)...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "invoices.json"), content, 0o644))

	got, err := store.NewFile(dir, history.DefaultKey).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Budi", got[0].Customer)
}

func TestMemory(t *testing.T) {
	m := store.NewMemory()

	got, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	records := sampleRecords()
	require.NoError(t, m.Store(context.Background(), records))

	records[0].Customer = "changed"

	got, err = m.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Budi", got[0].Customer)
}
