package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/faktur/internal/export"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

type exportState int

const (
	exportStatePath exportState = iota
	exportStateExporting
	exportStateResult
)

// exportClosedMsg tells the list the export panel was dismissed.
type exportClosedMsg struct{}

func closeExport() tea.Msg {
	return exportClosedMsg{}
}

// ExportModel asks for an output directory and writes the invoice history
// there as CSV or XLSX.
type ExportModel struct {
	exportService *export.Service
	format        export.Format
	records       []invoice.Record

	state   exportState
	err     error
	form    *huh.Form
	path    *string
	spinner spinner.Model
	file    string
}

func NewExportModel(svc *export.Service, format export.Format, dir string, records []invoice.Record) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = activeStyle

	m := ExportModel{
		exportService: svc,
		format:        format,
		records:       records,
		state:         exportStatePath,
		path:          new(dir),
		spinner:       s,
	}
	m.form = m.buildPathForm()

	return m
}

func (m ExportModel) Title() string {
	if m.format == export.FormatXLSX {
		return "Export ke Excel"
	}

	return "Export ke CSV"
}

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: tutup"
	case exportStateExporting:
		return "Mengekspor..."
	}

	return "Esc: batal | Enter: konfirmasi"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (ExportModel, tea.Cmd) {
	switch m.state {
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updatePath(msg tea.Msg) (ExportModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, closeExport
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(*m.path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (ExportModel, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.file = result.file

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (ExportModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, closeExport
	}

	return m, nil
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Folder Tujuan").
				Description("Folder dibuat jika belum ada").
				Placeholder("./exports").
				Value(m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStatePath:
		return m.Title() + "\n\n" + m.form.View()

	case exportStateExporting:
		return fmt.Sprintf("%s Mengekspor %d invoice...", m.spinner.View(), len(m.records))

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export selesai: " + m.file)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		export.Summary(m.records),
	)
}

type exportResultMsg struct {
	file string
	err  error
}

const exportTimeout = 30 * time.Second

func (m ExportModel) runExportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		file, err := m.exportService.ToFile(ctx, m.format, dir)

		return exportResultMsg{file: file, err: err}
	}
}
