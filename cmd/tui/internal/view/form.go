package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/faktur/internal/currency"
	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
	"github.com/MrJamesThe3rd/faktur/internal/printing"
)

type formState int

const (
	formStateBrowse formState = iota
	formStateHeader
	formStateItem
)

// formFields backs the huh inputs. It lives on the heap so the bindings
// survive the model being copied between updates.
type formFields struct {
	number, date, customer, address, notes string
	description, quantity, price           string
}

// FormModel is the invoice being authored: a header and a ledger of items.
type FormModel struct {
	CommonModel
	history  *history.Service
	renderer *printing.Renderer
	outDir   string
	now      func() time.Time

	state  formState
	header invoice.Header
	ledger invoice.Ledger
	table  table.Model
	form   *huh.Form
	fields *formFields
	itemAt int

	status string
	err    error
}

func NewFormModel(hist *history.Service, renderer *printing.Renderer, outDir string) FormModel {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Deskripsi", Width: 32},
		{Title: "Qty", Width: 5},
		{Title: "Harga", Width: 16},
		{Title: "Total", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	m := FormModel{
		history:  hist,
		renderer: renderer,
		outDir:   outDir,
		now:      time.Now,
		table:    t,
		fields:   &formFields{},
	}
	m.reset()

	return m
}

func (m FormModel) Title() string { return "Buat Invoice" }

func (m FormModel) ShortHelp() string {
	if m.state != formStateBrowse {
		return "Enter: lanjut | Esc: batal"
	}

	return "a: tambah | d: hapus | e: ubah item | h: header | s: simpan | p: cetak PDF | n: baru | Esc: kembali"
}

func (m FormModel) Init() tea.Cmd {
	return nil
}

func (m *FormModel) reset() {
	m.header = invoice.NewHeader(m.now())
	m.ledger = invoice.NewLedger()
	m.state = formStateBrowse
	m.form = nil
	m.err = nil
	m.refreshTable()
	m.table.SetCursor(0)
	m.table.Focus()
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""

			return m, nil
		}

		m.err = nil
		m.status = fmt.Sprintf("Invoice %s berhasil disimpan! Total %s", msg.rec.Number, currency.Format(msg.rec.Total))

		return m, nil

	case formPrintedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""

			return m, nil
		}

		m.err = nil
		m.status = "PDF tersimpan di " + msg.path

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-20, 5))

		return m, nil
	}

	switch m.state {
	case formStateHeader, formStateItem:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m FormModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			m.ledger = m.ledger.AddItem()
			m.refreshTable()
			m.table.SetCursor(m.ledger.Len() - 1)

			return m, nil
		case "d":
			return m.removeSelected(), nil
		case "e":
			return m.enterItemEdit()
		case "h":
			return m.enterHeaderEdit()
		case "s":
			m.status = "Menyimpan..."
			return m, m.saveCmd()
		case "p":
			return m, m.printCmd()
		case "n":
			m.reset()
			m.status = "Form baru"

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m FormModel) removeSelected() FormModel {
	next, err := m.ledger.RemoveItem(m.table.Cursor())
	if err != nil {
		m.err = err
		return m
	}

	m.err = nil
	m.ledger = next
	m.refreshTable()

	if c := m.table.Cursor(); c >= next.Len() && next.Len() > 0 {
		m.table.SetCursor(next.Len() - 1)
	}

	return m
}

func (m FormModel) enterItemEdit() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()

	item, err := m.ledger.Item(idx)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.itemAt = idx
	m.fields.description = item.Description
	m.fields.quantity = strconv.FormatInt(item.Quantity, 10)
	m.fields.price = item.UnitPrice.String()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Deskripsi").
				Value(&m.fields.description),
			huh.NewInput().
				Key("quantity").
				Title("Qty").
				Description("Bukan angka dihitung 0").
				Value(&m.fields.quantity),
			huh.NewInput().
				Key("price").
				Title("Harga").
				Placeholder("0").
				Value(&m.fields.price),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = formStateItem
	m.table.Blur()

	return m, m.form.Init()
}

func (m FormModel) enterHeaderEdit() (tea.Model, tea.Cmd) {
	m.fields.number = m.header.Number
	m.fields.date = m.header.Date.String()
	m.fields.customer = m.header.Customer
	m.fields.address = m.header.CustomerAddress
	m.fields.notes = m.header.Notes

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("number").
				Title("Nomor Invoice").
				Value(&m.fields.number),
			huh.NewInput().
				Key("date").
				Title("Tanggal").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.date).
				Validate(func(s string) error {
					if _, err := invoice.ParseDate(s); err != nil {
						return fmt.Errorf("format tanggal YYYY-MM-DD")
					}

					return nil
				}),
			huh.NewInput().
				Key("customer").
				Title("Nama Customer").
				Value(&m.fields.customer),
			huh.NewText().
				Key("address").
				Title("Alamat Customer").
				Lines(3).
				Value(&m.fields.address),
			huh.NewText().
				Key("notes").
				Title("Catatan").
				Lines(3).
				Value(&m.fields.notes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = formStateHeader
	m.table.Blur()

	return m, m.form.Init()
}

func (m FormModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = formStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	var err error

	switch m.state {
	case formStateHeader:
		err = m.applyHeader()
	case formStateItem:
		err = m.applyItem()
	}

	m.err = err
	m.state = formStateBrowse
	m.form = nil
	m.refreshTable()
	m.table.Focus()

	return m, nil
}

func (m *FormModel) applyHeader() error {
	date, err := invoice.ParseDate(m.fields.date)
	if err != nil {
		return err
	}

	m.header = invoice.Header{
		Number:          strings.TrimSpace(m.fields.number),
		Date:            date,
		Customer:        m.fields.customer,
		CustomerAddress: m.fields.address,
		Notes:           m.fields.notes,
	}

	return nil
}

func (m *FormModel) applyItem() error {
	ledger := m.ledger

	updates := []struct {
		field invoice.Field
		value string
	}{
		{invoice.FieldDescription, m.fields.description},
		{invoice.FieldQuantity, m.fields.quantity},
		{invoice.FieldUnitPrice, m.fields.price},
	}

	for _, u := range updates {
		next, err := ledger.UpdateItem(m.itemAt, u.field, u.value)
		if err != nil {
			return err
		}

		ledger = next
	}

	m.ledger = ledger

	return nil
}

func (m *FormModel) refreshTable() {
	items := m.ledger.Items()

	rows := make([]table.Row, 0, len(items))
	for i, it := range items {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			it.Description,
			strconv.FormatInt(it.Quantity, 10),
			currency.Format(it.UnitPrice),
			currency.Format(invoice.LineTotal(it)),
		})
	}

	m.table.SetRows(rows)
}

func (m FormModel) View() string {
	h := m.header

	customer := h.Customer
	if customer == "" {
		customer = faintStyle.Render("(belum diisi)")
	}

	number := h.Number
	if number == "" {
		number = faintStyle.Render("(belum diisi)")
	}

	headerView := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("INVOICE"),
		fmt.Sprintf("Nomor:    %s", number),
		fmt.Sprintf("Tanggal:  %s", h.Date),
		fmt.Sprintf("Customer: %s", customer),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	totals := lipgloss.NewStyle().Align(lipgloss.Right).Render(fmt.Sprintf(
		"Subtotal: %s\nTotal:    %s",
		currency.Format(m.ledger.Subtotal()),
		activeStyle.Render(currency.Format(m.ledger.Total())),
	))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(headerView),
		tableView,
		totals,
	)

	if m.form != nil {
		title := "Ubah Item"
		if m.state == formStateHeader {
			title = "Ubah Header"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.err != nil {
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	} else if m.status != "" {
		content = okStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(
		content + "\n\n" + faintStyle.Render(m.ShortHelp()),
	)
}

// Messages

type formSavedMsg struct {
	rec invoice.Record
	err error
}

func (m FormModel) saveCmd() tea.Cmd {
	header, ledger := m.header, m.ledger

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		rec, err := m.history.Save(ctx, header, ledger)

		return formSavedMsg{rec: rec, err: err}
	}
}

type formPrintedMsg struct {
	path string
	err  error
}

func (m FormModel) printCmd() tea.Cmd {
	doc := printing.FromForm(m.header, m.ledger)

	return func() tea.Msg {
		path, err := writePDF(m.renderer, m.outDir, doc)

		return formPrintedMsg{path: path, err: err}
	}
}
