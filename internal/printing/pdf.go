package printing

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/MrJamesThe3rd/faktur/internal/currency"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
	fontFamily = "Helvetica"
)

// column widths of the item table, summing to the A4 printable width
var itemCols = []struct {
	title string
	width float64
	align string
}{
	{"Deskripsi", 95, "L"},
	{"Qty", 20, "C"},
	{"Harga", 32.5, "R"},
	{"Total", 32.5, "R"},
}

// Renderer prints invoices as A4 PDFs.
type Renderer struct {
	profile  Profile
	compress bool
}

func NewRenderer(profile Profile) *Renderer {
	return &Renderer{profile: profile, compress: true}
}

func (r *Renderer) Profile() Profile {
	return r.profile
}

func (r *Renderer) WritePDF(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle(fmt.Sprintf("Invoice %s", doc.Header.Number), true)
	pdf.SetCreator(r.profile.Name, true)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 input.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.writeLetterhead(pdf, tr)
	writeParties(pdf, tr, doc.Header)
	writeItems(pdf, tr, doc.Items)
	writeTotals(pdf, doc)
	writeNotes(pdf, tr, doc.Header.Notes)
	r.writeFooter(pdf, tr)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}

	return nil
}

func (r *Renderer) writeLetterhead(pdf *gofpdf.Fpdf, tr func(string) string) {
	top := pdf.GetY()

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(120, 10, tr(r.profile.Name), "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(80, 80, 80)

	for _, line := range r.profile.Address {
		pdf.CellFormat(120, 5, tr(line), "", 1, "L", false, 0, "")
	}

	if r.profile.Phone != "" {
		pdf.CellFormat(120, 5, tr("Telp: "+r.profile.Phone), "", 1, "L", false, 0, "")
	}

	bottom := pdf.GetY()

	pdf.SetXY(pageMargin+120, top)
	pdf.SetFont(fontFamily, "B", 18)
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(60, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(bottom + 4)

	width, _ := pdf.GetPageSize()
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pageMargin, pdf.GetY(), width-pageMargin, pdf.GetY())
	pdf.Ln(6)
}

func writeParties(pdf *gofpdf.Fpdf, tr func(string) string, h invoice.Header) {
	top := pdf.GetY()

	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(100, lineHeight, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(100, lineHeight, tr(h.Customer), "", 1, "L", false, 0, "")

	if h.CustomerAddress != "" {
		pdf.MultiCell(100, 5, tr(h.CustomerAddress), "", "L", false)
	}

	left := pdf.GetY()

	pdf.SetXY(pageMargin+110, top)
	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(30, lineHeight, "Nomor Invoice", "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(40, lineHeight, tr(h.Number), "", 1, "R", false, 0, "")

	pdf.SetX(pageMargin + 110)
	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(30, lineHeight, "Tanggal", "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(40, lineHeight, currency.FormatDate(h.Date.Time), "", 1, "R", false, 0, "")

	pdf.SetY(max(left, pdf.GetY()) + 6)
}

func writeItems(pdf *gofpdf.Fpdf, tr func(string) string, items []invoice.LineItem) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(243, 244, 246)

	for _, col := range itemCols {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, col.align, true, 0, "")
	}

	pdf.Ln(-1)
	pdf.SetFont(fontFamily, "", 10)

	for _, it := range items {
		cells := []string{
			tr(it.Description),
			strconv.FormatInt(it.Quantity, 10),
			currency.Format(it.UnitPrice),
			currency.Format(invoice.LineTotal(it)),
		}

		for i, col := range itemCols {
			pdf.CellFormat(col.width, 7, cells[i], "1", 0, col.align, false, 0, "")
		}

		pdf.Ln(-1)
	}

	pdf.Ln(4)
}

func writeTotals(pdf *gofpdf.Fpdf, doc Document) {
	labelX := pageMargin + 115

	pdf.SetX(labelX)
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(32.5, lineHeight, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.CellFormat(32.5, lineHeight, currency.Format(doc.Subtotal), "", 1, "R", false, 0, "")

	pdf.SetX(labelX)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(32.5, lineHeight+2, "Total:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(32.5, lineHeight+2, currency.Format(doc.Total), "T", 1, "R", false, 0, "")

	pdf.Ln(6)
}

func writeNotes(pdf *gofpdf.Fpdf, tr func(string) string, notes string) {
	if notes == "" {
		return
	}

	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(0, lineHeight, "Catatan:", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(0, 5, tr(notes), "", "L", false)
	pdf.Ln(4)
}

func (r *Renderer) writeFooter(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont(fontFamily, "", 9)
	pdf.SetTextColor(80, 80, 80)

	lines := append([]string{r.profile.ThankYou, r.profile.PaymentNote}, r.profile.Bank...)
	for _, line := range lines {
		if line == "" {
			continue
		}

		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
}
