package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/faktur/internal/export"
	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/history/store"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

func record(number, date, customer string, total int64) invoice.Record {
	d, _ := invoice.ParseDate(date)

	return invoice.Record{
		Number:   number,
		Date:     d,
		Customer: customer,
		Subtotal: decimal.NewFromInt(total),
		Total:    decimal.NewFromInt(total),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	err := export.WriteCSV(&buf, []invoice.Record{record("001", "2024-01-01", "Budi", 125000)})
	require.NoError(t, err)

	assert.Equal(t,
		"Nomor Invoice,Tanggal,Customer,Total\r\n"+
			"001,2024-01-01,Budi,\"Rp 125.000\"\r\n",
		buf.String(),
	)
}

func TestWriteCSV_Quoting(t *testing.T) {
	var buf bytes.Buffer

	err := export.WriteCSV(&buf, []invoice.Record{
		record("002", "2024-02-03", `Toko "Maju", Jaya`, 2500000),
		record("003", "2024-02-04", "", 0),
	})
	require.NoError(t, err)

	assert.Equal(t,
		"Nomor Invoice,Tanggal,Customer,Total\r\n"+
			"002,2024-02-03,\"Toko \"\"Maju\"\", Jaya\",\"Rp 2.500.000\"\r\n"+
			"003,2024-02-04,,\"Rp 0\"\r\n",
		buf.String(),
	)
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.WriteCSV(&buf, nil))
	assert.Equal(t, "Nomor Invoice,Tanggal,Customer,Total\r\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer

	err := export.WriteXLSX(&buf, []invoice.Record{
		record("001", "2024-01-01", "Budi", 125000),
		record("002", "2024-01-02", "Sari", 40000),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Nomor Invoice", "Tanggal", "Customer", "Total"}, rows[0])
	assert.Equal(t, []string{"001", "2024-01-01", "Budi", "Rp 125.000"}, rows[1])
	assert.Equal(t, []string{"002", "2024-01-02", "Sari", "Rp 40.000"}, rows[2])
}

func TestService_ToFile(t *testing.T) {
	repo := store.NewMemory(record("001", "2024-01-01", "Budi", 125000))
	hist := history.NewService(repo, nil)
	hist.Load(context.Background())

	svc := export.NewService(hist)
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := svc.ToFile(context.Background(), export.FormatCSV, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoices.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `001,2024-01-01,Budi,"Rp 125.000"`)

	path, err = svc.ToFile(context.Background(), export.FormatXLSX, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoices.xlsx"), path)
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, export.FormatCSV, f)

	f, err = export.ParseFormat("excel")
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, f)

	_, err = export.ParseFormat("pdf")
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	body := export.Summary([]invoice.Record{
		record("001", "2024-01-01", "Budi", 125000),
		record("002", "2024-01-02", "", 5000),
	})

	assert.Contains(t, body, "* 001 | 2024-01-01 | Budi | Rp 125.000\n")
	assert.Contains(t, body, "* 002 | 2024-01-02 | Tanpa Nama | Rp 5.000\n")
}
