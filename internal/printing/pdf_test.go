package printing

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

func sampleDoc() Document {
	date, _ := invoice.ParseDate("2024-11-22")
	ledger := invoice.LedgerOf(
		invoice.LineItem{Description: "Kaos Polos Hitam", Quantity: 2, UnitPrice: decimal.NewFromInt(50000)},
		invoice.LineItem{Description: "Mug", Quantity: 1, UnitPrice: decimal.NewFromInt(25000)},
	)

	return FromForm(invoice.Header{
		Number:          "0000001/K21/241122",
		Date:            date,
		Customer:        "Budi",
		CustomerAddress: "Jl. Sudirman 1\nPekanbaru",
		Notes:           "Ambil Sabtu",
	}, ledger)
}

func TestRenderer_WritePDF(t *testing.T) {
	r := NewRenderer(DefaultProfile())
	r.compress = false

	var buf bytes.Buffer
	require.NoError(t, r.WritePDF(&buf, sampleDoc()))

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	for _, want := range []string{
		"Kaos21 Pekanbaru",
		"INVOICE",
		"Budi",
		"0000001/K21/241122",
		"22/11/2024",
		"Kaos Polos Hitam",
		"Rp 100.000",
		"Rp 125.000",
		"Ambil Sabtu",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderer_WritePDFCompressed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(DefaultProfile()).WritePDF(&buf, FromRecord(invoice.Record{})))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestFromRecord(t *testing.T) {
	rec := invoice.NewBuilder().Build(sampleDoc().Header, invoice.LedgerOf(sampleDoc().Items...))
	doc := FromRecord(rec)

	assert.Equal(t, "Budi", doc.Header.Customer)
	assert.Len(t, doc.Items, 2)
	assert.True(t, decimal.NewFromInt(125000).Equal(doc.Total))
}

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), p)

	path := filepath.Join(t.TempDir(), "company.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Toko Maju
phone: 0812-0000-0000
bank:
  - BCA 123456789 a.n. Toko Maju
`), 0o644))

	p, err = LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Toko Maju", p.Name)
	assert.Equal(t, "0812-0000-0000", p.Phone)
	assert.Equal(t, []string{"BCA 123456789 a.n. Toko Maju"}, p.Bank)
	assert.Equal(t, DefaultProfile().PaymentNote, p.PaymentNote)

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
