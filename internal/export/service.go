package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

// Format selects the export file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	}

	return "", fmt.Errorf("unknown export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "text/csv; charset=utf-8"
}

// DefaultFilename is the name the export is saved under.
func DefaultFilename(f Format) string {
	return "invoices." + string(f)
}

// Service exports the saved invoice history.
type Service struct {
	history *history.Service
}

func NewService(hist *history.Service) *Service {
	return &Service{history: hist}
}

// Write encodes the whole history in the given format.
func (s *Service) Write(w io.Writer, format Format) error {
	records := s.history.List()

	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records)
	}

	return fmt.Errorf("unknown export format %q", format)
}

// ToFile writes the export into dir, creating it if needed, and returns the file path.
func (s *Service) ToFile(ctx context.Context, format Format, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, DefaultFilename(format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := s.Write(f, format); err != nil {
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return path, nil
}

// Summary lists the records one per line, for showing after an export.
func Summary(records []invoice.Record) string {
	var sb strings.Builder

	for _, row := range Rows(records) {
		customer := row.Customer
		if customer == "" {
			customer = "Tanpa Nama"
		}

		sb.WriteString(fmt.Sprintf("* %s | %s | %s | %s\n", row.Number, row.Date, customer, row.Total))
	}

	return sb.String()
}
