package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/faktur/internal/printing"
)

const storeTimeout = 5 * time.Second

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// StoreCtx returns a context with a standard timeout for history store operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// pdfFilename turns an invoice number into a file name; an empty number is a draft.
func pdfFilename(number string) string {
	name := unsafeFilename.ReplaceAllString(number, "-")
	if name == "" || name == "-" {
		name = "draft"
	}

	return "invoice-" + name + ".pdf"
}

// writePDF renders doc into dir and returns the file path.
func writePDF(renderer *printing.Renderer, dir string, doc printing.Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, pdfFilename(doc.Header.Number))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := renderer.WritePDF(f, doc); err != nil {
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return path, nil
}
