package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/faktur/internal/currency"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

// Header is the column order of every export.
var Header = [4]string{"Nomor Invoice", "Tanggal", "Customer", "Total"}

const sheetName = "Invoices"

// Row is the exported projection of one saved invoice.
type Row struct {
	Number   string
	Date     string
	Customer string
	Total    string
}

func (r Row) fields() [4]string {
	return [4]string{r.Number, r.Date, r.Customer, r.Total}
}

// Rows projects records in history order. Total is display text, e.g. "Rp 125.000".
func Rows(records []invoice.Record) []Row {
	rows := make([]Row, 0, len(records))

	for _, rec := range records {
		rows = append(rows, Row{
			Number:   rec.Number,
			Date:     rec.Date.String(),
			Customer: rec.Customer,
			Total:    currency.Format(rec.Total),
		})
	}

	return rows
}

// WriteCSV writes the header and one line per record. The Total column is
// always quoted so spreadsheet apps keep it as text; other fields are quoted
// only when they contain a delimiter, quote, line break or edge whitespace.
func WriteCSV(w io.Writer, records []invoice.Record) error {
	bw := bufio.NewWriter(w)

	if err := writeCSVLine(bw, Header, -1); err != nil {
		return err
	}

	for _, row := range Rows(records) {
		if err := writeCSVLine(bw, row.fields(), 3); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func writeCSVLine(w *bufio.Writer, fields [4]string, forceQuote int) error {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}

		if i == forceQuote || needsQuotes(f) {
			w.WriteByte('"')
			w.WriteString(strings.ReplaceAll(f, `"`, `""`))
			w.WriteByte('"')

			continue
		}

		w.WriteString(f)
	}

	if _, err := w.WriteString("\r\n"); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	return nil
}

func needsQuotes(s string) bool {
	if s == "" {
		return false
	}

	return strings.ContainsAny(s, ",\"\r\n") || s != strings.TrimSpace(s)
}

// WriteXLSX writes the same rows as WriteCSV into a single-sheet workbook.
func WriteXLSX(w io.Writer, records []invoice.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	lines := [][4]string{Header}
	for _, row := range Rows(records) {
		lines = append(lines, row.fields())
	}

	for r, line := range lines {
		for c, value := range line {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("addressing cell: %w", err)
			}

			if err := f.SetCellStr(sheetName, cell, value); err != nil {
				return fmt.Errorf("setting cell %s: %w", cell, err)
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetCellStyle(sheetName, "A1", "D1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	if err := f.SetColWidth(sheetName, "A", "D", 22); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}

	return nil
}
