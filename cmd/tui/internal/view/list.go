package view

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/faktur/internal/currency"
	"github.com/MrJamesThe3rd/faktur/internal/export"
	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
	"github.com/MrJamesThe3rd/faktur/internal/printing"
)

type listState int

const (
	listStateBrowse listState = iota
	listStatePeriod
	listStateExport
)

// ListModel shows the saved invoices, newest last, as the history stores them.
type ListModel struct {
	CommonModel
	history       *history.Service
	exportService *export.Service
	renderer      *printing.Renderer
	outDir        string

	state   listState
	table   table.Model
	all     []invoice.Record
	shown   []invoice.Record
	period  Period
	picker  PeriodPicker
	export  ExportModel
	loading bool
	status  string
	err     error
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return s
}

func NewListModel(hist *history.Service, exp *export.Service, renderer *printing.Renderer, outDir string) ListModel {
	columns := []table.Column{
		{Title: "Nomor", Width: 14},
		{Title: "Tanggal", Width: 12},
		{Title: "Customer", Width: 30},
		{Title: "Total", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return ListModel{
		history:       hist,
		exportService: exp,
		renderer:      renderer,
		outDir:        outDir,
		table:         t,
		picker:        NewPeriodPicker(TimeframeThisWeek),
		loading:       true,
	}
}

func (m ListModel) Title() string { return "Daftar Invoice" }

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStatePeriod:
		return "Enter: pilih | Esc: kembali"
	case listStateExport:
		return m.export.ShortHelp()
	}

	return "Esc: kembali | p: cetak PDF | x: CSV | X: Excel | f: periode | r: segarkan"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		m.all = msg.records
		m.applyPeriod()

		return m, nil

	case TimeframeSelectedMsg:
		m.period = msg.Period
		m.state = listStateBrowse
		m.picker.Reset()
		m.applyPeriod()
		m.table.Focus()

		return m, nil

	case exportClosedMsg:
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil

	case listPrintedMsg:
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
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case listStatePeriod:
		return m.updatePeriod(msg)
	case listStateExport:
		var cmd tea.Cmd
		m.export, cmd = m.export.Update(msg)

		return m, cmd
	}

	return m.updateBrowse(msg)
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "f":
			m.state = listStatePeriod
			m.table.Blur()

			return m, m.picker.Init()
		case "x":
			return m.startExport(export.FormatCSV)
		case "X":
			return m.startExport(export.FormatXLSX)
		case "p":
			return m, m.printCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.Choosing() {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ListModel) startExport(format export.Format) (tea.Model, tea.Cmd) {
	m.export = NewExportModel(m.exportService, format, m.outDir, m.all)
	m.state = listStateExport
	m.table.Blur()

	return m, m.export.Init()
}

func (m *ListModel) applyPeriod() {
	m.shown = filterByPeriod(m.all, m.period)
	m.refreshTable()

	if c := m.table.Cursor(); c >= len(m.shown) {
		m.table.SetCursor(max(len(m.shown)-1, 0))
	}
}

func filterByPeriod(records []invoice.Record, p Period) []invoice.Record {
	return slices.DeleteFunc(slices.Clone(records), func(r invoice.Record) bool {
		return !p.Contains(r.Date)
	})
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.shown))
	for _, r := range m.shown {
		rows = append(rows, table.Row{
			r.Number,
			currency.FormatDate(r.Date.Time),
			r.Customer,
			currency.Format(r.Total),
		})
	}

	m.table.SetRows(rows)
}

func (m ListModel) selected() (invoice.Record, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.shown) {
		return invoice.Record{}, false
	}

	return m.shown[idx], true
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Memuat invoice...")
	}

	label := m.period.Label
	if m.period.IsAll() {
		label = TimeframeAll.String()
	}

	header := fmt.Sprintf("%s  [f] Periode: %s  (%d dari %d)",
		titleStyle.Render(m.Title()), activeStyle.Render(label), len(m.shown), len(m.all))

	var body string

	switch {
	case m.state == listStatePeriod:
		body = m.picker.View()
	case len(m.all) == 0:
		body = faintStyle.Render("Belum ada invoice tersimpan.")
	default:
		body = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		body,
	)

	if m.state == listStateExport {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(60).
			Render(m.export.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.err != nil {
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	} else if m.status != "" {
		content = okStyle.Render(m.status) + "\n" + content
	}

	if m.state == listStateBrowse {
		content += "\n\n" + faintStyle.Render(m.ShortHelp())
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadListMsg struct {
	records []invoice.Record
}

// loadCmd shows the history held by the service. The store itself is read
// once at startup; saves from the form are already in the service.
func (m ListModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadListMsg{records: m.history.List()}
	}
}

type listPrintedMsg struct {
	path string
	err  error
}

func (m ListModel) printCmd() tea.Cmd {
	rec, ok := m.selected()
	if !ok {
		return nil
	}

	doc := printing.FromRecord(rec)

	return func() tea.Msg {
		path, err := writePDF(m.renderer, m.outDir, doc)

		return listPrintedMsg{path: path, err: err}
	}
}
