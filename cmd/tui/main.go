package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/faktur/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/faktur/internal/config"
	"github.com/MrJamesThe3rd/faktur/internal/export"
	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/printing"
	"github.com/MrJamesThe3rd/faktur/internal/storage"
)

type model struct {
	historyService *history.Service
	exportService  *export.Service
	renderer       *printing.Renderer
	outDir         string

	currentView View

	formView view.FormModel
	listView view.ListModel
}

type View int

const (
	ViewMenu View = 0
	ViewForm View = 1
	ViewList View = 2
)

func initialModel(hist *history.Service, renderer *printing.Renderer, outDir string) model {
	expSvc := export.NewService(hist)

	return model{
		historyService: hist,
		exportService:  expSvc,
		renderer:       renderer,
		outDir:         outDir,
		currentView:    ViewMenu,
		formView:       view.NewFormModel(hist, renderer, outDir),
		listView:       view.NewListModel(hist, expSvc, renderer, outDir),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				// The form survives leaving the menu, like an open browser tab.
				m.currentView = ViewForm
				return m, m.formView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.historyService, m.exportService, m.renderer, m.outDir)

				return m, m.listView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewForm:
		var newModel tea.Model
		newModel, cmd = m.formView.Update(msg)
		m.formView = newModel.(view.FormModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Faktur\n\n" +
				"1. Buat Invoice\n" +
				"2. Daftar Invoice\n\n" +
				"q. Keluar",
		)
	case ViewForm:
		return m.formView.View()
	case ViewList:
		return m.listView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	repo, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	profile, err := printing.LoadProfile(cfg.CompanyProfile)
	if err != nil {
		slog.Error("failed to load company profile", "error", err)
		os.Exit(1)
	}

	hist := history.NewService(repo, nil)
	hist.Load(ctx)

	p := tea.NewProgram(initialModel(hist, printing.NewRenderer(profile), cfg.ExportDir))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
